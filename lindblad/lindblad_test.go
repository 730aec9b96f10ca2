package lindblad_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/lindblad"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// twoLevel returns H = [[0,g],[g,0]] and the lowering operator |0⟩⟨1|.
func twoLevel(g float64) (*mat.CDense, *mat.CDense) {
	h := mat.NewCDense(2, 2, []complex128{0, complex(g, 0), complex(g, 0), 0})
	l := mat.NewCDense(2, 2, []complex128{0, 1, 0, 0})

	return h, l
}

func pure(n, i int) *mat.CDense {
	rho := mat.NewCDense(n, n, nil)
	rho.Set(i, i, 1)

	return rho
}

// TestEvolveRabiTracePreserved checks coherent oscillation and unit trace for a
// closed system (zero decay rate).
func TestEvolveRabiTracePreserved(t *testing.T) {
	h, l := twoLevel(0.5)
	p := lindblad.Problem{H: h, Jumps: []lindblad.Jump{{Rate: 0, L: l}}, Hbar: 1}
	rec := lindblad.NewRecorder(0)

	tEnd, rho, err := lindblad.Evolve(p, 0, pure(2, 0), 2, 0.01,
		lindblad.WithLogInterval(0.1), lindblad.WithStepFunc(rec.Record))
	require.NoError(t, err)
	require.InDelta(t, 2.0, tEnd, 1e-12)

	want := math.Pow(math.Sin(1), 2) // sin²(g·t/ħ)
	require.InDelta(t, want, real(rho.At(1, 1)), 1e-8)
	for j := 0; j < rec.Len(); j++ {
		require.InDelta(t, 1.0, rec.TotalProbability(j), 1e-9, "sample %d", j)
	}
	require.InDelta(t, 1.0, real(lindblad.Trace(rho)), 1e-9)
}

// TestEvolveDecay checks exponential decay of the excited population.
func TestEvolveDecay(t *testing.T) {
	_, l := twoLevel(0)
	p := lindblad.Problem{H: mat.NewCDense(2, 2, nil), Jumps: []lindblad.Jump{{Rate: 0.5, L: l}}, Hbar: 1}

	for _, m := range []lindblad.Method{lindblad.MethodRK4, lindblad.MethodEuler} {
		_, rho, err := lindblad.Evolve(p, 0, pure(2, 1), 2, 0.001, lindblad.WithMethod(m))
		require.NoError(t, err)
		tol := 1e-9
		if m == lindblad.MethodEuler {
			tol = 1e-3
		}
		require.InDelta(t, math.Exp(-1), real(rho.At(1, 1)), tol, "method %s", m)
		require.InDelta(t, 1.0, real(lindblad.Trace(rho)), 1e-9)
	}
}

// TestEvolveSchedule checks when the StepFunc fires.
func TestEvolveSchedule(t *testing.T) {
	h, _ := twoLevel(0.1)
	p := lindblad.Problem{H: h, Hbar: 1}
	rec := lindblad.NewRecorder(8)

	_, _, err := lindblad.Evolve(p, 0, pure(2, 0), 1, 0.1,
		lindblad.WithLogInterval(0.25), lindblad.WithStepFunc(rec.Record))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 0.3, 0.6, 0.9, 1.0}, rec.Times(), 1e-9)

	traj := rec.Trajectories()
	require.Len(t, traj, 2)    // one row per state
	require.Len(t, traj[0], 5) // one column per sample
	require.Equal(t, 1.0, traj[0][0])
}

// TestEvolveErrors verifies input validation.
func TestEvolveErrors(t *testing.T) {
	h, l := twoLevel(0.5)
	rho := pure(2, 0)

	_, _, err := lindblad.Evolve(lindblad.Problem{H: h, Jumps: []lindblad.Jump{{Rate: -1, L: l}}, Hbar: 1}, 0, rho, 1, 0.1)
	require.ErrorIs(t, err, lindblad.ErrNegativeRate)

	_, _, err = lindblad.Evolve(lindblad.Problem{H: h, Hbar: 0}, 0, rho, 1, 0.1)
	require.ErrorIs(t, err, lindblad.ErrInvalidHbar)

	_, _, err = lindblad.Evolve(lindblad.Problem{H: h, Jumps: []lindblad.Jump{{Rate: 1, L: pure(3, 0)}}, Hbar: 1}, 0, rho, 1, 0.1)
	require.ErrorIs(t, err, lindblad.ErrDimensionMismatch)

	skew := mat.NewCDense(2, 2, []complex128{0, 1, 0, 0})
	_, _, err = lindblad.Evolve(lindblad.Problem{H: skew, Hbar: 1}, 0, rho, 1, 0.1)
	require.ErrorIs(t, err, hilbert.ErrNotHermitian)

	p := lindblad.Problem{H: h, Hbar: 1}
	_, _, err = lindblad.Evolve(p, 0, rho, 1, 0)
	require.ErrorIs(t, err, lindblad.ErrInvalidStep)
	_, _, err = lindblad.Evolve(p, 0, rho, -1, 0.1)
	require.ErrorIs(t, err, lindblad.ErrInvalidStep)
	_, _, err = lindblad.Evolve(p, 0, pure(3, 0), 1, 0.1)
	require.ErrorIs(t, err, lindblad.ErrDimensionMismatch)

	_, _, err = lindblad.Evolve(p, 0, rho, 1, 0.1, lindblad.WithLogInterval(-1))
	require.ErrorIs(t, err, lindblad.ErrOptionViolation)
	_, _, err = lindblad.Evolve(p, 0, rho, 1, 0.1, lindblad.WithMethod("leapfrog"))
	require.ErrorIs(t, err, lindblad.ErrOptionViolation)
}

// TestEvolveStops covers cancellation and StepFunc errors.
func TestEvolveStops(t *testing.T) {
	h, _ := twoLevel(0.5)
	p := lindblad.Problem{H: h, Hbar: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := lindblad.Evolve(p, 0, pure(2, 0), 1, 0.1, lindblad.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)

	stop := errors.New("stop")
	calls := 0
	_, _, err = lindblad.Evolve(p, 0, pure(2, 0), 1, 0.1, lindblad.WithStepFunc(func(float64, *mat.CDense) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	require.Equal(t, 2, calls)
}

// TestParseMethod checks accepted scheme names.
func TestParseMethod(t *testing.T) {
	m, err := lindblad.ParseMethod(" RK4 ")
	require.NoError(t, err)
	require.Equal(t, lindblad.MethodRK4, m)

	m, err = lindblad.ParseMethod("euler")
	require.NoError(t, err)
	require.Equal(t, lindblad.MethodEuler, m)

	_, err = lindblad.ParseMethod("midpoint")
	require.ErrorIs(t, err, lindblad.ErrUnknownMethod)
}
