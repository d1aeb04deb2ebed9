// Package verifier answers whether an email belongs to a paying customer.
//
// Verify runs two strictly sequential lookups against a billing.Gateway:
// the customer by email, then that customer's active subscription. Each
// lookup gets its own time budget (3s by default). A lookup that exceeds the
// budget is cancelled and counts as an empty result, so a slow provider reads
// as "not a subscriber" to the caller. Timeouts are still reported to the
// Recorder and logged at warn level.
//
// Any other provider failure maps to ErrServiceUnavailable with a generic
// message; the raw error is only logged.
package verifier
