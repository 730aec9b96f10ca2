// SPDX-License-Identifier: MIT

package subsystem

import (
	"fmt"
	"math"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
)

// Kind distinguishes how the scale of a Ladder is interpreted.
type Kind uint8

const (
	// KindEnergy marks a bosonic mode whose scale is the quantum of energy.
	KindEnergy Kind = iota
	// KindPotential marks a potential ladder (band, orbit) whose scale is the step per level.
	KindPotential
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindEnergy:
		return "energy"
	case KindPotential:
		return "potential"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Ladder is an n-level subsystem with truncated bosonic ladder operators.
type Ladder struct {
	space     *hilbert.Space
	kind      Kind
	scale     float64
	up        hilbert.Operator
	down      hilbert.Operator
	potential hilbert.Operator
}

// NewLadder builds an n-level ladder subsystem.
// Returns ErrInvalidDimension for n <= 0 and ErrInvalidParameter for a non-finite scale.
// Complexity: O(n).
func NewLadder(n int, scale float64, kind Kind, name string) (*Ladder, error) {
	if n <= 0 {
		return nil, subsystemErrorf("NewLadder", fmt.Errorf("%w: %s n=%d", ErrInvalidDimension, name, n))
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, subsystemErrorf("NewLadder", fmt.Errorf("%w: %s %s=%v", ErrInvalidParameter, name, kind, scale))
	}
	space, err := hilbert.NewSpace(n, name)
	if err != nil {
		return nil, subsystemErrorf("NewLadder", err)
	}

	ups := make([]hilbert.Operator, 0, n)
	pots := make([]hilbert.Operator, 0, n)
	for i := 0; i < n-1; i++ {
		ups = append(ups, space.Operator(i+1, i).Scale(complex(math.Sqrt(float64(i+1)), 0)))
	}
	for i := 1; i < n; i++ { // level 0 carries no potential
		pots = append(pots, space.Projector(i).Scale(complex(scale*float64(i), 0)))
	}
	up := hilbert.Sum(ups...)

	return &Ladder{
		space:     space,
		kind:      kind,
		scale:     scale,
		up:        up,
		down:      up.Adjoint(),
		potential: hilbert.Sum(pots...).Simplify(),
	}, nil
}

// NewCavity builds an n-level cavity mode with level spacing energy.
func NewCavity(n int, energy float64, name string) (*Ladder, error) {
	return NewLadder(n, energy, KindEnergy, name)
}

// NewBand builds an n-level band whose i-th level sits at i·potential.
func NewBand(n int, potential float64, name string) (*Ladder, error) {
	return NewLadder(n, potential, KindPotential, name)
}

// NewOrbit builds a 2-level orbit: up = |1⟩⟨0|, potential = potential·|1⟩⟨1|.
func NewOrbit(potential float64, name string) (*Ladder, error) {
	return NewBand(2, potential, name)
}

// Space returns the subsystem's basis space.
func (l *Ladder) Space() *hilbert.Space { return l.space }

// Kind returns the semantic tag given at construction.
func (l *Ladder) Kind() Kind { return l.kind }

// Scale returns the energy or potential step.
func (l *Ladder) Scale() float64 { return l.scale }

// Dim returns the number of levels.
func (l *Ladder) Dim() int { return l.space.Dim() }

// Increase returns the raising operator.
func (l *Ladder) Increase() hilbert.Operator { return l.up }

// Decrease returns the lowering operator, the adjoint of Increase.
func (l *Ladder) Decrease() hilbert.Operator { return l.down }

// Potential returns the diagonal energy operator.
func (l *Ladder) Potential() hilbert.Operator { return l.potential }

// Eigenstate returns |i⟩ on the ladder's space.
func (l *Ladder) Eigenstate(i int) (*hilbert.Ket, error) {
	if i < 0 || i >= l.space.Dim() {
		return nil, subsystemErrorf("Ladder.Eigenstate", fmt.Errorf("%w: %s level %d", ErrInvalidLevel, l.space, i))
	}

	return l.space.Eigenstate(i)
}

// String implements fmt.Stringer.
func (l *Ladder) String() string {
	return fmt.Sprintf("%s(n=%d, %s=%g)", l.space, l.space.Dim(), l.kind, l.scale)
}
