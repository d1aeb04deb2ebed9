package verifier

import (
	"log/slog"
	"time"
)

// DefaultBudget is the time allowed for each provider lookup.
const DefaultBudget = 3 * time.Second

// Config is loaded from the environment. Timeout feeds WithBudget.
type Config struct {
	Timeout time.Duration `env:"VERIFIER_TIMEOUT" envDefault:"3s"`
}

// Step names a provider lookup.
const (
	StepCustomer     = "customer"
	StepSubscription = "subscription"
)

// Recorder observes verifications. pkg/metrics provides a Prometheus one.
type Recorder interface {
	RecordOutcome(outcome Outcome)
	RecordTimeout(step string)
	RecordLatency(step string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordOutcome(Outcome)               {}
func (nopRecorder) RecordTimeout(string)                {}
func (nopRecorder) RecordLatency(string, time.Duration) {}

// Option configures a Verifier.
type Option func(*Verifier)

// WithBudget sets the per-lookup time budget. Non-positive values are ignored.
func WithBudget(d time.Duration) Option {
	return func(v *Verifier) {
		if d > 0 {
			v.budget = d
		}
	}
}

// WithLogger sets the logger. Nil keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// WithRecorder sets the Recorder. The default discards everything.
func WithRecorder(r Recorder) Option {
	return func(v *Verifier) {
		if r != nil {
			v.rec = r
		}
	}
}
