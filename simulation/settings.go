// SPDX-License-Identifier: MIT

package simulation

import (
	"fmt"
	"math"

	"github.com/ZhengKeli/OpticalInterpretation/lindblad"
	"github.com/ZhengKeli/OpticalInterpretation/report"
)

// Settings controls one evolution.
type Settings struct {
	T0        float64         `yaml:"t0" json:"t0"`
	Span      float64         `yaml:"span" json:"span"`
	Dt        float64         `yaml:"dt" json:"dt"`
	Samples   int             `yaml:"samples" json:"samples"`
	Method    lindblad.Method `yaml:"method" json:"method"`
	Threshold float64         `yaml:"threshold" json:"threshold"`
}

// DefaultSettings returns span 4000, dt 0.1, 1024 samples, RK4, threshold 0.02.
func DefaultSettings() Settings {
	return Settings{
		Span:      4000,
		Dt:        0.1,
		Samples:   1024,
		Method:    lindblad.MethodRK4,
		Threshold: report.DefaultThreshold,
	}
}

// Validate reports the first out-of-range field as ErrInvalidSettings.
func (s Settings) Validate() error {
	switch {
	case !finite(s.T0):
		return fmt.Errorf("%w: t0=%v", ErrInvalidSettings, s.T0)
	case !finite(s.Span) || s.Span <= 0:
		return fmt.Errorf("%w: span=%v", ErrInvalidSettings, s.Span)
	case !finite(s.Dt) || s.Dt <= 0 || s.Dt > s.Span:
		return fmt.Errorf("%w: dt=%v", ErrInvalidSettings, s.Dt)
	case s.Samples <= 0:
		return fmt.Errorf("%w: samples=%d", ErrInvalidSettings, s.Samples)
	case !finite(s.Threshold) || s.Threshold < 0:
		return fmt.Errorf("%w: threshold=%v", ErrInvalidSettings, s.Threshold)
	}
	if _, err := lindblad.ParseMethod(string(s.Method)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	return nil
}

// Interval returns the sampling interval Span/Samples.
func (s Settings) Interval() float64 { return s.Span / float64(s.Samples) }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
