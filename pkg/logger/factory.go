package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Environment names recognised by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format. Panics for unknown formats so misconfiguration stops startup.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject dynamic attributes from context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue adds an extractor that logs ctx.Value(key) under name when present.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithEnvironment applies per-environment defaults: text and debug level for development,
// JSON and info level otherwise. The service and env names are attached to every record.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		switch env {
		case EnvProduction, "prod":
			c.level, c.format, env = slog.LevelInfo, FormatJSON, EnvProduction
		case EnvStaging, "stage":
			c.level, c.format, env = slog.LevelInfo, FormatJSON, EnvStaging
		default:
			c.level, c.format, env = slog.LevelDebug, FormatText, EnvDevelopment
		}
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
		c.attrs = append(c.attrs, slog.String("env", env))
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// defaultConfig is JSON at info level.
func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger with context injection.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// Nop returns a logger that discards everything. Handy as a default in constructors and tests.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
