package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// Server wraps http.Server with graceful shutdown and logging.
type Server struct {
	opts *options
	log  *slog.Logger

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	ready    chan struct{}
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		opts:  o,
		log:   log.With(logger.Component("httpserver")),
		ready: make(chan struct{}),
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound address, or the configured one before Run binds.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.addr
}

// Run binds the listener and serves handler until ctx is done, a termination
// signal arrives, or serving fails.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	ln, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       s.opts.readTimeout,
		ReadHeaderTimeout: s.opts.readHeaderTimeout,
		WriteTimeout:      s.opts.writeTimeout,
		IdleTimeout:       s.opts.idleTimeout,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	s.srv = srv
	s.listener = ln
	s.mu.Unlock()

	s.log.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))
	close(s.ready)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	stop := make(chan os.Signal, 1)
	if s.opts.handleSignals {
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.shutdown(context.WithoutCancel(ctx), errCh)
	case sig := <-stop:
		s.log.InfoContext(ctx, "shutdown signal received", slog.String("signal", sig.String()))
		runErr = s.shutdown(context.WithoutCancel(ctx), errCh)
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		if errors.Is(runErr, ErrShutdown) {
			return runErr
		}
		return errors.Join(ErrStart, runErr)
	}
	s.log.InfoContext(ctx, "http server stopped")
	return nil
}

func (s *Server) shutdown(ctx context.Context, errCh <-chan error) error {
	if err := s.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}

// Shutdown stops the server gracefully. It is safe to call more than once
// and before Run.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
