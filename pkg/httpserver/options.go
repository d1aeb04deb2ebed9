package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*options)

type options struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
	handleSignals     bool
}

func defaultOptions() *options {
	return &options{
		addr:              ":8080",
		readHeaderTimeout: 5 * time.Second,
		shutdownTimeout:   10 * time.Second,
		handleSignals:     true,
	}
}

// WithAddr sets the address the server listens on. Use "127.0.0.1:0" to pick
// a free port and read it back with Server.Addr.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(o *options) { o.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	return func(o *options) { o.readTimeout = d }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return func(o *options) { o.readHeaderTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) { o.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) { o.idleTimeout = d }
}

// WithShutdownTimeout sets the time allowed for in-flight requests to finish.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithShutdownTimeout: duration must be > 0")
	}
	return func(o *options) { o.shutdownTimeout = d }
}

// WithLogger sets the logger for lifecycle events. Nil keeps the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithoutSignals disables SIGINT/SIGTERM handling; shutdown then only
// follows the Run context.
func WithoutSignals() Option {
	return func(o *options) { o.handleSignals = false }
}
