// Package metrics collects Prometheus metrics for the subscription flow and
// the HTTP surface, and serves them for scraping.
//
// Collector implements verifier.Recorder, so provider timeouts that the
// verifier absorbs into "not found" results stay visible to operators.
package metrics
