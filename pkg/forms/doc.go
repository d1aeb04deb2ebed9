// Package forms resolves published forms by tenant and renders their share
// QR codes.
//
// Tenants are isolated by slug: a form is only reachable through the slug of
// the tenant that owns it. Lookups never return drafts.
package forms
