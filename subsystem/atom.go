// SPDX-License-Identifier: MIT

package subsystem

import (
	"fmt"
	"math"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
)

// AtomLevels is the number of levels of an Atom.
const AtomLevels = 4

// electronTable lists the occupations of the two orbits for each atom level.
var electronTable = [AtomLevels][2]int{
	{0, 0},
	{0, 1},
	{1, 0},
	{1, 1},
}

// DefaultAtomLevels returns the level potentials (0, -1, -4, -5).
func DefaultAtomLevels() [AtomLevels]float64 {
	return [AtomLevels]float64{0, -1, -4, -5}
}

// Couplings holds the strengths of the three optical transitions of an Atom.
type Couplings struct {
	G01 float64 `yaml:"g01" json:"g01"`
	G12 float64 `yaml:"g12" json:"g12"`
	G23 float64 `yaml:"g23" json:"g23"`
}

// Atom is a 4-level system with two electron orbits.
type Atom struct {
	space     *hilbert.Space
	levels    [AtomLevels]float64
	potential hilbert.Operator
}

// NewAtom builds an atom with potential Σ levels[k]·|k⟩⟨k|.
// Returns ErrInvalidParameter if any potential is NaN or infinite.
func NewAtom(levels [AtomLevels]float64, name string) (*Atom, error) {
	for k, p := range levels {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, subsystemErrorf("NewAtom", fmt.Errorf("%w: %s potential_%d=%v", ErrInvalidParameter, name, k, p))
		}
	}
	space, err := hilbert.NewSpace(AtomLevels, name)
	if err != nil {
		return nil, subsystemErrorf("NewAtom", err)
	}
	terms := make([]hilbert.Operator, 0, AtomLevels)
	for k, p := range levels {
		terms = append(terms, space.Projector(k).Scale(complex(p, 0)))
	}

	return &Atom{space: space, levels: levels, potential: hilbert.Sum(terms...).Simplify()}, nil
}

// Space returns the atom's basis space.
func (a *Atom) Space() *hilbert.Space { return a.space }

// Levels returns the level potentials.
func (a *Atom) Levels() [AtomLevels]float64 { return a.levels }

// Potential returns the diagonal potential operator.
func (a *Atom) Potential() hilbert.Operator { return a.potential }

// Operator returns |ket⟩⟨bra| on the atom. Panics on levels outside 0..3.
func (a *Atom) Operator(ket, bra int) hilbert.Operator { return a.space.Operator(ket, bra) }

// Eigenstate returns |i⟩ on the atom's space.
func (a *Atom) Eigenstate(i int) (*hilbert.Ket, error) {
	if i < 0 || i >= AtomLevels {
		return nil, subsystemErrorf("Atom.Eigenstate", fmt.Errorf("%w: %s level %d", ErrInvalidLevel, a.space, i))
	}

	return a.space.Eigenstate(i)
}

// Transition returns the raw (non-Hermitian) coupling
//
//	g01 · c01↑ ⊗ |1⟩⟨0| ⊗ band↓
//	g12 · c12↑ ⊗ |2⟩⟨1|
//	g23 · c23↑ ⊗ |3⟩⟨2| ⊗ band↓
//
// Terms are emitted in that order. Add the adjoint before using it in a Hamiltonian.
func (a *Atom) Transition(g Couplings, c01, c12, c23, band *Ladder) hilbert.Operator {
	return hilbert.Sum(
		hilbert.Prod(c01.Increase(), a.Operator(1, 0), band.Decrease()).Scale(complex(g.G01, 0)),
		hilbert.Prod(c12.Increase(), a.Operator(2, 1)).Scale(complex(g.G12, 0)),
		hilbert.Prod(c23.Increase(), a.Operator(3, 2), band.Decrease()).Scale(complex(g.G23, 0)),
	)
}

// Electrons returns the occupations of the two orbits at the given atom level:
// (0,0), (0,1), (1,0), (1,1) for levels 0..3.
func Electrons(level int) ([2]int, error) {
	if level < 0 || level >= AtomLevels {
		return [2]int{}, subsystemErrorf("Electrons", fmt.Errorf("%w: atom level %d", ErrInvalidLevel, level))
	}

	return electronTable[level], nil
}

// ElectronCount returns the number of electrons held at the given atom level.
func ElectronCount(level int) (int, error) {
	e, err := Electrons(level)
	if err != nil {
		return 0, err
	}

	return e[0] + e[1], nil
}
