// Package binder decodes HTTP requests into typed values for handler.Wrap.
//
// JSON decodes a strict, size-limited JSON body and trims surrounding
// whitespace from every string field. Path copies chi URL parameters into
// struct fields tagged with `path:"name"`.
package binder
