// SPDX-License-Identifier: MIT

package hilbert

import (
	"fmt"
	"sync/atomic"
)

// spaceSeq hands out creation-ordered identifiers. Factors inside a term are sorted
// by this id, which keeps term keys and matrix layouts deterministic.
var spaceSeq atomic.Uint64

// Space is a finite-dimensional degree of freedom with orthonormal levels 0..n-1.
// The name is used only for labels and debugging; identity is the pointer.
type Space struct {
	id   uint64
	n    int
	name string
}

// NewSpace creates a space with n levels.
// Returns ErrInvalidDimension if n <= 0.
// Complexity: O(1).
func NewSpace(n int, name string) (*Space, error) {
	if n <= 0 {
		return nil, hilbertErrorf("NewSpace", ErrInvalidDimension)
	}

	return &Space{id: spaceSeq.Add(1), n: n, name: name}, nil
}

// Dim returns the number of levels.
func (s *Space) Dim() int { return s.n }

// Name returns the label given at construction (may be empty).
func (s *Space) Name() string { return s.name }

// String implements fmt.Stringer.
func (s *Space) String() string {
	if s.name != "" {
		return s.name
	}

	return fmt.Sprintf("space#%d", s.id)
}

// Operator returns the rank-1 operator |ket⟩⟨bra| on s.
// Levels are compile-time constants in every builder of this module, so an
// out-of-range level is a programmer error and panics.
func (s *Space) Operator(ket, bra int) Operator {
	s.mustLevel(ket)
	s.mustLevel(bra)

	return Operator{terms: []Term{{Coeff: 1, Factors: []Factor{{Space: s, Ket: ket, Bra: bra}}}}}
}

// Projector returns |i⟩⟨i| on s. Panics on an out-of-range level, see Operator.
func (s *Space) Projector(i int) Operator { return s.Operator(i, i) }

// Identity returns Σᵢ |i⟩⟨i| on s, the explicit identity of this space.
func (s *Space) Identity() Operator {
	terms := make([]Term, s.n)
	for i := 0; i < s.n; i++ {
		terms[i] = Term{Coeff: 1, Factors: []Factor{{Space: s, Ket: i, Bra: i}}}
	}

	return Operator{terms: terms}
}

// Eigenstate returns the basis ket |i⟩ over the single-space product of s.
// Returns ErrLevelOutOfRange for i outside 0..n-1.
func (s *Space) Eigenstate(i int) (*Ket, error) {
	if i < 0 || i >= s.n {
		return nil, hilbertErrorf("Space.Eigenstate", fmt.Errorf("%w: %s level %d of %d", ErrLevelOutOfRange, s, i, s.n))
	}
	p, err := NewProduct(s)
	if err != nil {
		return nil, err
	}

	return &Ket{prod: p, amps: map[int]complex128{i: 1}}, nil
}

func (s *Space) mustLevel(i int) {
	if i < 0 || i >= s.n {
		panic(panicLevelOutOfRange)
	}
}
