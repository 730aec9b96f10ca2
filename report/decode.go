// SPDX-License-Identifier: MIT

package report

import (
	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
)

// Levels maps every space of a product to a level.
type Levels map[*hilbert.Space]int

// Decode returns the dominant level of each space in k.
// The dominant basis index is argmax |amplitude|; ties go to the smallest index.
// Returns ErrEmptyState for a ket with no amplitude.
func Decode(k *hilbert.Ket) (Levels, error) {
	support := k.Support()
	if len(support) == 0 {
		return nil, reportErrorf("Decode", ErrEmptyState)
	}

	best, bestAbs := support[0], abs2(k.Amplitude(support[0]))
	for _, idx := range support[1:] {
		// strict > keeps the smallest index on ties; support is ascending
		if a := abs2(k.Amplitude(idx)); a > bestAbs {
			best, bestAbs = idx, a
		}
	}

	p := k.Product()
	levels, err := p.Levels(best)
	if err != nil {
		return nil, reportErrorf("Decode", err)
	}
	out := make(Levels, len(levels))
	for i, l := range levels {
		out[p.Space(i)] = l
	}

	return out, nil
}

// Ket returns the basis ket of p with these levels. Spaces of p missing from
// the map are taken at level 0.
func (l Levels) Ket(p *hilbert.Product) (*hilbert.Ket, error) {
	levels := make([]int, p.Len())
	for i, s := range p.Spaces() {
		levels[i] = l[s]
	}

	return p.Basis(levels...)
}

func abs2(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}
