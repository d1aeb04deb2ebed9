// Package redis connects to Redis with go-redis and provides a small
// namespaced byte store used by the application caches.
package redis
