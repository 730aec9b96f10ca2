// SPDX-License-Identifier: MIT

package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/lindblad"
	"github.com/ZhengKeli/OpticalInterpretation/model"
	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Subject is a model ready to run: *model.PrunedChemical and *model.PrunedOptical
// satisfy it.
type Subject interface {
	Name() string
	Model() *model.Model
	Labels() ([]string, error)
}

// Job pairs a subject with its initial ket (on the subject's model product).
type Job struct {
	Subject Subject
	Initial *hilbert.Ket
}

// Run evolves ρ = |ψ⟩⟨ψ| of the initial ket and returns the classified report.
func Run(ctx context.Context, job Job, s Settings, log zerolog.Logger) (*report.Report, error) {
	if job.Subject == nil || job.Initial == nil {
		return nil, simulationErrorf("Run", ErrNilSubject)
	}
	if err := s.Validate(); err != nil {
		return nil, simulationErrorf("Run", err)
	}
	m := job.Subject.Model()
	if !job.Initial.Product().Equal(m.Product()) {
		return nil, simulationErrorf("Run", fmt.Errorf("initial ket: %w", hilbert.ErrSpaceMismatch))
	}
	problem, err := m.Problem()
	if err != nil {
		return nil, simulationErrorf("Run", err)
	}
	labels, err := job.Subject.Labels()
	if err != nil {
		return nil, simulationErrorf("Run", err)
	}

	log = log.With().Str("model", job.Subject.Name()).Int("dim", m.Dim()).Logger()
	log.Info().Float64("span", s.Span).Float64("dt", s.Dt).Int("samples", s.Samples).Msg("evolving")

	rec := lindblad.NewRecorder(s.Samples + 2)
	start := time.Now()
	_, _, err = lindblad.Evolve(problem, s.T0, job.Initial.Density(), s.Span, s.Dt,
		lindblad.WithMethod(s.Method),
		lindblad.WithLogInterval(s.Interval()),
		lindblad.WithStepFunc(rec.Record),
		lindblad.WithContext(ctx),
		lindblad.WithLogger(log),
	)
	if err != nil {
		return nil, simulationErrorf("Run", err)
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("recorded", rec.Len()).Msg("evolution done")

	r, err := report.New(job.Subject.Name(), labels, rec.Times(), rec.Trajectories(), s.Threshold)
	if err != nil {
		return nil, simulationErrorf("Run", err)
	}
	spectrum, err := m.Spectrum()
	switch {
	case err == nil:
		r.Spectrum = spectrum
	case errors.Is(err, model.ErrTooLarge):
		log.Warn().Err(err).Msg("spectrum skipped")
	default:
		return nil, simulationErrorf("Run", err)
	}

	return r, nil
}

// RunAll runs the jobs concurrently. Reports are index-aligned with jobs.
func RunAll(ctx context.Context, jobs []Job, s Settings, log zerolog.Logger) ([]*report.Report, error) {
	out := make([]*report.Report, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			r, err := Run(gCtx, job, s, log)
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			out[i] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, simulationErrorf("RunAll", err)
	}

	return out, nil
}
