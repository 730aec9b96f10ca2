// SPDX-License-Identifier: MIT

package lindblad

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// rhs holds the precomputed generator and scratch space for one integration.
type rhs struct {
	n     int
	k     cblas128.General
	jumps []Jump
	tmp   cblas128.General
}

// newRHS precomputes K = -i/ħ·H - ½ Σ γ L†L.
func newRHS(p Problem) *rhs {
	n := p.Dim()
	r := &rhs{
		n:     n,
		k:     general(n, make([]complex128, n*n)),
		jumps: make([]Jump, 0, len(p.Jumps)),
		tmp:   general(n, make([]complex128, n*n)),
	}
	h := p.H.RawCMatrix()
	scale := complex(0, -1/p.Hbar)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r.k.Data[i*n+j] = scale * h.Data[i*h.Stride+j]
		}
	}
	for _, jp := range p.Jumps {
		if jp.Rate == 0 {
			continue
		}
		l := jp.L.RawCMatrix()
		cblas128.Gemm(blas.ConjTrans, blas.NoTrans, complex(-0.5*jp.Rate, 0), l, l, 1, r.k)
		r.jumps = append(r.jumps, jp)
	}

	return r
}

// eval writes dρ/dt for rho into out.
func (r *rhs) eval(rho, out []complex128) {
	in := general(r.n, rho)
	dst := general(r.n, out)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, r.k, in, 0, dst)
	cblas128.Gemm(blas.NoTrans, blas.ConjTrans, 1, in, r.k, 1, dst)
	for _, jp := range r.jumps {
		l := jp.L.RawCMatrix()
		cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, l, in, 0, r.tmp)
		cblas128.Gemm(blas.NoTrans, blas.ConjTrans, complex(jp.Rate, 0), r.tmp, l, 1, dst)
	}
}

func general(n int, data []complex128) cblas128.General {
	return cblas128.General{Rows: n, Cols: n, Stride: n, Data: data}
}

// stepper advances rho in place by h.
type stepper struct {
	f              *rhs
	k1, k2, k3, k4 []complex128
	y              []complex128
}

func newStepper(f *rhs) *stepper {
	size := f.n * f.n
	return &stepper{
		f:  f,
		k1: make([]complex128, size),
		k2: make([]complex128, size),
		k3: make([]complex128, size),
		k4: make([]complex128, size),
		y:  make([]complex128, size),
	}
}

func (s *stepper) euler(rho []complex128, h float64) {
	s.f.eval(rho, s.k1)
	cmplxs.AddScaled(rho, complex(h, 0), s.k1)
}

func (s *stepper) rk4(rho []complex128, h float64) {
	s.f.eval(rho, s.k1)
	cmplxs.AddScaledTo(s.y, rho, complex(h/2, 0), s.k1)
	s.f.eval(s.y, s.k2)
	cmplxs.AddScaledTo(s.y, rho, complex(h/2, 0), s.k2)
	s.f.eval(s.y, s.k3)
	cmplxs.AddScaledTo(s.y, rho, complex(h, 0), s.k3)
	s.f.eval(s.y, s.k4)

	cmplxs.AddScaled(rho, complex(h/6, 0), s.k1)
	cmplxs.AddScaled(rho, complex(h/3, 0), s.k2)
	cmplxs.AddScaled(rho, complex(h/3, 0), s.k3)
	cmplxs.AddScaled(rho, complex(h/6, 0), s.k4)
}

// Evolve integrates p from (t0, rho0) over span in steps of dt and returns the final
// time and density matrix. rho0 is not modified.
//
// The last step is shortened so the run ends exactly at t0+span. The StepFunc is
// called at t0, whenever at least LogInterval has elapsed since the previous call,
// and once after the final step.
//
// Returns ErrInvalidStep, ErrDimensionMismatch, ErrOptionViolation, any Problem
// validation error, ctx.Err() on cancellation, or the StepFunc's error.
func Evolve(p Problem, t0 float64, rho0 *mat.CDense, span, dt float64, opts ...Option) (float64, *mat.CDense, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return t0, nil, o.err
	}
	if err := p.Validate(); err != nil {
		return t0, nil, lindbladErrorf("Evolve", err)
	}
	if !finite(t0) || !finite(span) || !finite(dt) || span < 0 || dt <= 0 {
		return t0, nil, lindbladErrorf("Evolve", fmt.Errorf("%w: span=%v dt=%v", ErrInvalidStep, span, dt))
	}
	n := p.Dim()
	if rho0 == nil {
		return t0, nil, lindbladErrorf("Evolve", fmt.Errorf("%w: nil initial state", ErrDimensionMismatch))
	}
	if r, c := rho0.Dims(); r != n || c != n {
		return t0, nil, lindbladErrorf("Evolve", fmt.Errorf("%w: rho0 is %d×%d, want %d×%d", ErrDimensionMismatch, r, c, n, n))
	}

	rho := mat.NewCDense(n, n, nil)
	rho.Copy(rho0)
	data := rho.RawCMatrix().Data // freshly allocated, stride == n

	st := newStepper(newRHS(p))
	step := st.rk4
	if o.Method == MethodEuler {
		step = st.euler
	}

	steps := int(math.Ceil(span/dt - 1e-9))
	tEnd := t0 + span
	log := o.Logger.With().Int("dim", n).Int("jumps", len(p.Jumps)).Str("method", string(o.Method)).Logger()
	log.Debug().Float64("t0", t0).Float64("span", span).Float64("dt", dt).Int("steps", steps).Msg("evolution started")

	t := t0
	if err := o.Step(t, rho); err != nil {
		return t, rho, lindbladErrorf("Evolve", err)
	}
	lastLog := t
	for i := 0; i < steps; i++ {
		select {
		case <-o.Ctx.Done():
			return t, rho, o.Ctx.Err()
		default:
		}

		h := dt
		if i == steps-1 {
			h = tEnd - t
		}
		step(data, h)
		t += h
		if i == steps-1 {
			t = tEnd
		}

		if i == steps-1 || t-lastLog >= o.LogInterval-1e-9*dt {
			if err := o.Step(t, rho); err != nil {
				return t, rho, lindbladErrorf("Evolve", err)
			}
			lastLog = t
			log.Trace().Float64("t", t).Msg("sample")
		}
	}
	log.Debug().Float64("t", t).Msg("evolution finished")

	return t, rho, nil
}

// Probabilities writes |ρᵢᵢ| into dst (allocated when nil or short) and returns it.
func Probabilities(rho *mat.CDense, dst []float64) []float64 {
	n, _ := rho.Dims()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		v := rho.At(i, i)
		dst[i] = math.Hypot(real(v), imag(v))
	}

	return dst
}

// Trace returns Σ ρᵢᵢ.
func Trace(rho *mat.CDense) complex128 {
	n, _ := rho.Dims()
	var s complex128
	for i := 0; i < n; i++ {
		s += rho.At(i, i)
	}

	return s
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
