// Package subscription derives a user's subscription state from their
// profile row and keeps it fresh for the application.
//
// Query loads profiles through a ProfileStore, caches them and collapses
// concurrent loads for the same user. Use returns a Hook: a per-user view
// that starts in StatusLoading, resolves with Start and can be refreshed
// with Refetch.
//
//	q := subscription.NewQuery(store, subscription.WithCache(subscription.NewMemoryCache(1024, time.Minute)))
//	h := q.Use(userID)
//	state := h.Start(ctx)
//	if state.IsActive {
//		// serve the protected resource
//	}
//
// An empty user id yields a terminal inactive hook that never touches the
// store. A store failure yields StatusError with the error attached; it is
// not retried.
package subscription
