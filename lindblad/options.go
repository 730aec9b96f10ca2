// SPDX-License-Identifier: MIT

package lindblad

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Method names a fixed-step integration scheme.
type Method string

const (
	// MethodRK4 is the classical 4th-order Runge–Kutta scheme.
	MethodRK4 Method = "rk4"
	// MethodEuler is the explicit Euler scheme.
	MethodEuler Method = "euler"
)

// ParseMethod accepts "rk4" and "euler" (case-insensitive).
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodRK4, MethodEuler:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// StepFunc observes the state at logged times. rho is the integrator's live
// matrix: read it, do not retain or modify it. A non-nil error stops Evolve.
type StepFunc func(t float64, rho *mat.CDense) error

// Option configures Evolve. An invalid Option is recorded and surfaced as
// ErrOptionViolation when Evolve runs.
type Option func(*Options)

// Options holds the integration parameters.
type Options struct {
	// LogInterval is the simulated time between StepFunc calls. Zero logs every step.
	LogInterval float64

	// Step is invoked at t0, at every log interval and after the final step.
	Step StepFunc

	// Method selects the scheme.
	Method Method

	// Ctx is checked for cancellation between steps.
	Ctx context.Context

	// Logger receives progress messages.
	Logger zerolog.Logger

	err error
}

// DefaultOptions returns RK4, logging at every step, a no-op StepFunc, a
// background context and a disabled logger.
func DefaultOptions() Options {
	return Options{
		LogInterval: 0,
		Step:        func(float64, *mat.CDense) error { return nil },
		Method:      MethodRK4,
		Ctx:         context.Background(),
		Logger:      zerolog.Nop(),
	}
}

// WithLogInterval sets the simulated time between StepFunc calls.
//
//	d > 0:  every d
//	d == 0: every step
//	d < 0 or non-finite: ErrOptionViolation
func WithLogInterval(d float64) Option {
	return func(o *Options) {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			o.err = fmt.Errorf("%w: log interval must be finite and >= 0 (%v)", ErrOptionViolation, d)
			return
		}
		o.LogInterval = d
	}
}

// WithStepFunc registers the sample observer.
func WithStepFunc(fn StepFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Step = fn
		}
	}
}

// WithMethod selects the integration scheme; unknown names are violations.
func WithMethod(m Method) Option {
	return func(o *Options) {
		parsed, err := ParseMethod(string(m))
		if err != nil {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, err)
			return
		}
		o.Method = parsed
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the progress logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
