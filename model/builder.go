// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/lindblad"
)

// DefaultEpsilon is the Hermiticity tolerance used by Build.
const DefaultEpsilon = 1e-9

// MaxDenseDim bounds Model.Problem. Dense export needs O(n²) memory per operator.
const MaxDenseDim = 1 << 12

// Channel is one decay channel: rate γ and jump operator L.
type Channel struct {
	Rate float64
	Op   hilbert.Operator
}

// Builder accumulates the parts of a Model. The first error is recorded and
// returned by Build; later calls are ignored.
type Builder struct {
	hbar       float64
	eps        float64
	potentials []hilbert.Operator
	couplings  []hilbert.Operator
	channels   []Channel
	err        error
}

// NewBuilder starts a model with the given ħ.
func NewBuilder(hbar float64) *Builder {
	return &Builder{hbar: hbar, eps: DefaultEpsilon}
}

// WithEpsilon overrides the Hermiticity tolerance.
func (b *Builder) WithEpsilon(eps float64) *Builder {
	if b.err == nil && (math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0) {
		b.err = fmt.Errorf("%w: eps=%v", hilbert.ErrNaNInf, eps)
	}
	b.eps = eps

	return b
}

// AddPotential adds Hermitian (typically diagonal) terms as they are.
func (b *Builder) AddPotential(ops ...hilbert.Operator) *Builder {
	b.potentials = append(b.potentials, ops...)

	return b
}

// AddCoupling adds each op followed by its adjoint.
func (b *Builder) AddCoupling(ops ...hilbert.Operator) *Builder {
	for _, op := range ops {
		b.couplings = append(b.couplings, op, op.Adjoint())
	}

	return b
}

// AddDecay appends the channel (rate, op). Declaration order is kept.
func (b *Builder) AddDecay(rate float64, op hilbert.Operator) *Builder {
	if b.err == nil && (math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0) {
		b.err = fmt.Errorf("%w: channel %d rate %v", ErrNegativeRate, len(b.channels), rate)
	}
	b.channels = append(b.channels, Channel{Rate: rate, Op: op})

	return b
}

// Build validates and assembles the model on product.
//
// Stage 1: ħ, rates and coverage (hilbert.ErrSpaceMismatch for operators acting
// outside the product).
// Stage 2: H = Σ potentials + Σ (coupling + coupling†), merged term by term.
// Stage 3: Hermiticity within eps, else ErrNonHermitianHamiltonian.
func (b *Builder) Build(product *hilbert.Product) (*Model, error) {
	if b.err != nil {
		return nil, modelErrorf("Build", b.err)
	}
	if product == nil {
		return nil, modelErrorf("Build", ErrNilProduct)
	}
	if math.IsNaN(b.hbar) || math.IsInf(b.hbar, 0) || b.hbar <= 0 {
		return nil, modelErrorf("Build", fmt.Errorf("%w: %v", ErrInvalidHbar, b.hbar))
	}

	h := hilbert.Sum(append(append([]hilbert.Operator{}, b.potentials...), b.couplings...)...).Simplify()
	if err := product.Covers(h); err != nil {
		return nil, modelErrorf("Build", fmt.Errorf("hamiltonian: %w", err))
	}
	channels := make([]Channel, len(b.channels))
	for i, c := range b.channels {
		if err := product.Covers(c.Op); err != nil {
			return nil, modelErrorf("Build", fmt.Errorf("channel %d: %w", i, err))
		}
		channels[i] = Channel{Rate: c.Rate, Op: c.Op.Simplify()}
	}

	if err := hilbert.ValidateHermitian(product, h, b.eps); err != nil {
		if errors.Is(err, hilbert.ErrNotHermitian) {
			return nil, modelErrorf("Build", fmt.Errorf("%w: %v", ErrNonHermitianHamiltonian, err))
		}
		return nil, modelErrorf("Build", err)
	}

	return &Model{product: product, hamiltonian: h, channels: channels, hbar: b.hbar}, nil
}

// Model is an assembled open system. It is immutable.
type Model struct {
	product     *hilbert.Product
	hamiltonian hilbert.Operator
	channels    []Channel
	hbar        float64
}

// Product returns the joint space.
func (m *Model) Product() *hilbert.Product { return m.product }

// Dim returns the joint dimension.
func (m *Model) Dim() int { return m.product.Dim() }

// Hamiltonian returns H.
func (m *Model) Hamiltonian() hilbert.Operator { return m.hamiltonian }

// Hbar returns ħ.
func (m *Model) Hbar() float64 { return m.hbar }

// Channels returns a copy of the decay channels in declaration order.
func (m *Model) Channels() []Channel {
	out := make([]Channel, len(m.channels))
	copy(out, m.channels)

	return out
}

// Gamma returns the decay rates, index-aligned with Deco.
func (m *Model) Gamma() []float64 {
	out := make([]float64, len(m.channels))
	for i, c := range m.channels {
		out[i] = c.Rate
	}

	return out
}

// Deco returns the decay operators, index-aligned with Gamma.
func (m *Model) Deco() []hilbert.Operator {
	out := make([]hilbert.Operator, len(m.channels))
	for i, c := range m.channels {
		out[i] = c.Op
	}

	return out
}

// Generators returns H followed by every decay operator, the set a pruned space
// must be closed under.
func (m *Model) Generators() []hilbert.Operator {
	return append([]hilbert.Operator{m.hamiltonian}, m.Deco()...)
}

// Problem exports the model as dense matrices for lindblad.Evolve.
// Returns ErrTooLarge above MaxDenseDim.
func (m *Model) Problem() (lindblad.Problem, error) {
	if d := m.Dim(); d > MaxDenseDim {
		return lindblad.Problem{}, modelErrorf("Model.Problem", fmt.Errorf("%w: %d > %d", ErrTooLarge, d, MaxDenseDim))
	}
	h, err := m.product.Dense(m.hamiltonian)
	if err != nil {
		return lindblad.Problem{}, modelErrorf("Model.Problem", err)
	}
	jumps := make([]lindblad.Jump, len(m.channels))
	for i, c := range m.channels {
		l, err := m.product.Dense(c.Op)
		if err != nil {
			return lindblad.Problem{}, modelErrorf("Model.Problem", err)
		}
		jumps[i] = lindblad.Jump{Rate: c.Rate, L: l}
	}

	return lindblad.Problem{H: h, Jumps: jumps, Hbar: m.hbar}, nil
}

// Spectrum returns the ascending eigenvalues of H. Returns ErrTooLarge above MaxDenseDim.
func (m *Model) Spectrum() ([]float64, error) {
	if d := m.Dim(); d > MaxDenseDim {
		return nil, modelErrorf("Model.Spectrum", fmt.Errorf("%w: %d > %d", ErrTooLarge, d, MaxDenseDim))
	}
	h, err := m.product.Dense(m.hamiltonian)
	if err != nil {
		return nil, modelErrorf("Model.Spectrum", err)
	}

	return hilbert.Eigenvalues(h)
}
