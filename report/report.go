// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Report is the outcome of one run. Probs has one row per state (aligned with
// Labels) and one column per sample (aligned with Times).
type Report struct {
	RunID     string      `json:"run_id" msgpack:"run_id"`
	Model     string      `json:"model" msgpack:"model"`
	CreatedAt time.Time   `json:"created_at" msgpack:"created_at"`
	Threshold float64     `json:"threshold" msgpack:"threshold"`
	Labels    []string    `json:"labels" msgpack:"labels"`
	Times     []float64   `json:"times" msgpack:"times"`
	Probs     [][]float64 `json:"probs" msgpack:"probs"`
	Classes   []Category  `json:"classes" msgpack:"classes"`
	Spectrum  []float64   `json:"spectrum,omitempty" msgpack:"spectrum,omitempty"`
}

// New classifies probs and stamps a fresh run id.
func New(model string, labels []string, times []float64, probs [][]float64, threshold float64) (*Report, error) {
	if len(labels) != len(probs) {
		return nil, reportErrorf("New", fmt.Errorf("%w: %d labels, %d states", ErrShapeMismatch, len(labels), len(probs)))
	}
	for i, row := range probs {
		if len(row) != len(times) {
			return nil, reportErrorf("New", fmt.Errorf("%w: state %d has %d samples, want %d",
				ErrShapeMismatch, i, len(row), len(times)))
		}
	}
	classes, err := Classify(probs, threshold)
	if err != nil {
		return nil, reportErrorf("New", err)
	}

	return &Report{
		RunID:     uuid.NewString(),
		Model:     model,
		CreatedAt: time.Now().UTC(),
		Threshold: threshold,
		Labels:    labels,
		Times:     times,
		Probs:     probs,
		Classes:   classes,
	}, nil
}

// Of returns the indices of states classified as c, in state order.
func (r *Report) Of(c Category) []int {
	var out []int
	for i, got := range r.Classes {
		if got == c {
			out = append(out, i)
		}
	}

	return out
}

// Final returns the indices of final states.
func (r *Report) Final() []int { return r.Of(Final) }

// Initial returns the indices of initial states.
func (r *Report) Initial() []int { return r.Of(Initial) }

// Summarize logs the final and initial states with their labels and last probability.
// States whose label or probability row is missing, as in a truncated decoded
// report, are logged without those fields.
func (r *Report) Summarize(log zerolog.Logger) {
	log.Info().
		Str("run_id", r.RunID).
		Str("model", r.Model).
		Int("states", len(r.Labels)).
		Int("samples", len(r.Times)).
		Msg("run finished")

	for _, c := range []Category{Final, Initial} {
		for _, i := range r.Of(c) {
			ev := log.Info().Str("class", string(c)).Int("state", i)
			if i < len(r.Labels) {
				ev = ev.Str("label", r.Labels[i])
			}
			if i < len(r.Probs) && len(r.Probs[i]) > 0 {
				row := r.Probs[i]
				ev = ev.Float64("first", row[0]).Float64("last", row[len(row)-1])
			}
			ev.Msg("state")
		}
	}
}
