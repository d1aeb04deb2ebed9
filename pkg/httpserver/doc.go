// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness and readiness handlers.
//
// Run blocks until the context is cancelled, SIGINT or SIGTERM is received,
// or the listener fails. In-flight requests get ShutdownTimeout to finish.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
