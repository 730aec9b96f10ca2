// SPDX-License-Identifier: MIT

package lindblad

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Recorder accumulates sample times and diagonal probabilities. Use one Recorder
// per run; it is not safe for concurrent use.
type Recorder struct {
	times   []float64
	samples [][]float64
}

// NewRecorder returns a Recorder with room for capacity samples.
func NewRecorder(capacity int) *Recorder {
	if capacity < 0 {
		capacity = 0
	}

	return &Recorder{
		times:   make([]float64, 0, capacity),
		samples: make([][]float64, 0, capacity),
	}
}

// Record stores t and |diag ρ|. It satisfies StepFunc.
func (r *Recorder) Record(t float64, rho *mat.CDense) error {
	r.times = append(r.times, t)
	r.samples = append(r.samples, Probabilities(rho, nil))

	return nil
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int { return len(r.times) }

// Times returns a copy of the sample times.
func (r *Recorder) Times() []float64 {
	out := make([]float64, len(r.times))
	copy(out, r.times)

	return out
}

// Samples returns the probability vectors, one row per sample (shared, read-only).
func (r *Recorder) Samples() [][]float64 { return r.samples }

// Trajectories returns the probabilities transposed: one row per state, one column
// per sample.
func (r *Recorder) Trajectories() [][]float64 {
	if len(r.samples) == 0 {
		return nil
	}
	n := len(r.samples[0])
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, len(r.samples))
		for j, s := range r.samples {
			out[i][j] = s[i]
		}
	}

	return out
}

// TotalProbability returns Σᵢ pᵢ of sample j.
func (r *Recorder) TotalProbability(j int) float64 {
	return floats.Sum(r.samples[j])
}
