// SPDX-License-Identifier: MIT

package prune

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
)

// PruneKet maps k into the pruned representation. k's product must contain every
// original space (in any order and interleaved with others); the factor takes the
// position of the first original space and the other spaces keep their order.
// Returns hilbert.ErrSpaceMismatch if an original space is missing and
// ErrUnreachableStateAccessed if k has amplitude on a non-retained state.
func (s *Space) PruneKet(k *hilbert.Ket) (*hilbert.Ket, error) {
	kp := k.Product()
	orgPos := make([]int, s.org.Len())
	first := kp.Len()
	for i, sp := range s.org.Spaces() {
		p, ok := kp.Position(sp)
		if !ok {
			return nil, pruneErrorf("Space.PruneKet", fmt.Errorf("%w: %s missing from ket", hilbert.ErrSpaceMismatch, sp))
		}
		orgPos[i] = p
		if p < first {
			first = p
		}
	}
	isOrg := make(map[int]bool, len(orgPos))
	for _, p := range orgPos {
		isOrg[p] = true
	}

	// Layout of the pruned product: source positions, -1 marks the factor.
	var layout []int
	var spaces []*hilbert.Space
	for p := 0; p < kp.Len(); p++ {
		if p == first {
			layout = append(layout, -1)
			spaces = append(spaces, s.factor)
		}
		if !isOrg[p] {
			layout = append(layout, p)
			spaces = append(spaces, kp.Space(p))
		}
	}
	out, err := hilbert.NewProduct(spaces...)
	if err != nil {
		return nil, pruneErrorf("Space.PruneKet", err)
	}

	amps := make(map[int]complex128, k.Len())
	orgLevels := make([]int, len(orgPos))
	levels := make([]int, len(layout))
	for _, idx := range k.Support() {
		src, _ := kp.Levels(idx)
		for i, p := range orgPos {
			orgLevels[i] = src[p]
		}
		orgIdx, _ := s.org.Index(orgLevels...)
		j, ok := s.index[orgIdx]
		if !ok {
			return nil, pruneErrorf("Space.PruneKet", fmt.Errorf("%w: %v", ErrUnreachableStateAccessed, orgLevels))
		}
		for i, p := range layout {
			if p < 0 {
				levels[i] = j
			} else {
				levels[i] = src[p]
			}
		}
		dst, _ := out.Index(levels...)
		amps[dst] += k.Amplitude(idx)
	}

	return hilbert.NewKet(out, amps)
}

// Restore maps a ket containing the factor back to the original spaces, which are
// inserted in original order at the factor's position.
// Returns hilbert.ErrSpaceMismatch if k's product does not contain the factor.
func (s *Space) Restore(k *hilbert.Ket) (*hilbert.Ket, error) {
	kp := k.Product()
	fp, ok := kp.Position(s.factor)
	if !ok {
		return nil, pruneErrorf("Space.Restore", fmt.Errorf("%w: %s missing from ket", hilbert.ErrSpaceMismatch, s.factor))
	}
	orgSpaces := s.org.Spaces()
	spaces := make([]*hilbert.Space, 0, kp.Len()-1+len(orgSpaces))
	for p := 0; p < kp.Len(); p++ {
		if p == fp {
			spaces = append(spaces, orgSpaces...)
		} else {
			spaces = append(spaces, kp.Space(p))
		}
	}
	out, err := hilbert.NewProduct(spaces...)
	if err != nil {
		return nil, pruneErrorf("Space.Restore", err)
	}

	amps := make(map[int]complex128, k.Len())
	levels := make([]int, 0, len(spaces))
	for _, idx := range k.Support() {
		src, _ := kp.Levels(idx)
		orgLevels, _ := s.org.Levels(s.states[src[fp]])
		levels = levels[:0]
		levels = append(levels, src[:fp]...)
		levels = append(levels, orgLevels...)
		levels = append(levels, src[fp+1:]...)
		dst, _ := out.Index(levels...)
		amps[dst] += k.Amplitude(idx)
	}

	return hilbert.NewKet(out, amps)
}

// Basis returns the pruned basis ket |i⟩ on the factor.
// Returns ErrUnreachableStateAccessed for i outside 0..Dim()-1.
func (s *Space) Basis(i int) (*hilbert.Ket, error) {
	if i < 0 || i >= len(s.states) {
		return nil, pruneErrorf("Space.Basis", fmt.Errorf("%w: level %d of %d", ErrUnreachableStateAccessed, i, len(s.states)))
	}

	return s.product.Basis(i)
}
