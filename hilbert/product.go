// SPDX-License-Identifier: MIT

// Package hilbert - ordered composite spaces.
//
// Purpose:
//   - Fix a flat basis index for composite states: row-major over the listed spaces,
//     first space most significant (offset = Σ levelₖ · strideₖ).
//   - Apply symbolic operators to basis states without building joint matrices.
//   - Export operators to dense gonum matrices when the product is small enough.
//
// Complexity quicksheet (S = spaces, D = product dimension):
//   - NewProduct: O(S); Index/Levels: O(S); Jump: O(F); Dense: O(D² + D·T·F).

package hilbert

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Product is an ordered, duplicate-free list of spaces forming one joint space.
type Product struct {
	spaces  []*Space
	strides []int
	dim     int
	pos     map[*Space]int
}

// NewProduct builds the joint space of the given spaces in the given order.
// Returns ErrInvalidDimension for an empty list, ErrNilSpace, ErrDuplicateSpace,
// or ErrDimensionOverflow when the total dimension exceeds an int.
func NewProduct(spaces ...*Space) (*Product, error) {
	if len(spaces) == 0 {
		return nil, hilbertErrorf("NewProduct", ErrInvalidDimension)
	}
	p := &Product{
		spaces:  make([]*Space, len(spaces)),
		strides: make([]int, len(spaces)),
		pos:     make(map[*Space]int, len(spaces)),
	}
	copy(p.spaces, spaces)
	for i, s := range p.spaces {
		if s == nil {
			return nil, hilbertErrorf("NewProduct", ErrNilSpace)
		}
		if _, dup := p.pos[s]; dup {
			return nil, hilbertErrorf("NewProduct", fmt.Errorf("%w: %s", ErrDuplicateSpace, s))
		}
		p.pos[s] = i
	}

	// Strides from the least significant (last) space backwards.
	dim := 1
	for i := len(p.spaces) - 1; i >= 0; i-- {
		p.strides[i] = dim
		if dim > math.MaxInt/p.spaces[i].n {
			return nil, hilbertErrorf("NewProduct", ErrDimensionOverflow)
		}
		dim *= p.spaces[i].n
	}
	p.dim = dim

	return p, nil
}

// Dim returns the joint dimension Π nₖ.
func (p *Product) Dim() int { return p.dim }

// Len returns the number of spaces.
func (p *Product) Len() int { return len(p.spaces) }

// Spaces returns a copy of the ordered space list.
func (p *Product) Spaces() []*Space {
	out := make([]*Space, len(p.spaces))
	copy(out, p.spaces)

	return out
}

// Space returns the i-th space.
func (p *Product) Space(i int) *Space { return p.spaces[i] }

// Position returns the index of s in the product.
func (p *Product) Position(s *Space) (int, bool) {
	i, ok := p.pos[s]

	return i, ok
}

// Contains reports whether s is part of the product.
func (p *Product) Contains(s *Space) bool {
	_, ok := p.pos[s]

	return ok
}

// Equal reports whether both products list the same spaces in the same order.
func (p *Product) Equal(q *Product) bool {
	if p == q {
		return true
	}
	if p == nil || q == nil || len(p.spaces) != len(q.spaces) {
		return false
	}
	for i := range p.spaces {
		if p.spaces[i] != q.spaces[i] {
			return false
		}
	}

	return true
}

// Index converts per-space levels (in product order) to the flat basis index.
func (p *Product) Index(levels ...int) (int, error) {
	if len(levels) != len(p.spaces) {
		return 0, hilbertErrorf("Product.Index", fmt.Errorf("%w: %d levels for %d spaces", ErrSpaceMismatch, len(levels), len(p.spaces)))
	}
	idx := 0
	for i, l := range levels {
		if l < 0 || l >= p.spaces[i].n {
			return 0, hilbertErrorf("Product.Index", fmt.Errorf("%w: %s level %d", ErrLevelOutOfRange, p.spaces[i], l))
		}
		idx += l * p.strides[i]
	}

	return idx, nil
}

// Levels unravels a flat basis index into per-space levels (in product order).
func (p *Product) Levels(idx int) ([]int, error) {
	if idx < 0 || idx >= p.dim {
		return nil, hilbertErrorf("Product.Levels", fmt.Errorf("%w: index %d of %d", ErrLevelOutOfRange, idx, p.dim))
	}
	out := make([]int, len(p.spaces))
	for i := range p.spaces {
		out[i] = p.levelAt(idx, i)
	}

	return out, nil
}

// levelAt extracts the level of the space at position i from a valid flat index.
func (p *Product) levelAt(idx, i int) int {
	return (idx / p.strides[i]) % p.spaces[i].n
}

// Covers returns ErrSpaceMismatch if op mentions a space outside the product.
func (p *Product) Covers(op Operator) error {
	for _, s := range op.Spaces() {
		if !p.Contains(s) {
			return hilbertErrorf("Product.Covers", fmt.Errorf("%w: %s not in product", ErrSpaceMismatch, s))
		}
	}

	return nil
}

// Partition splits a factor list into the factors acting on spaces of p (inner)
// and the rest (outer). Relative order is preserved in both.
func (p *Product) Partition(fs []Factor) (inner, outer []Factor) {
	for _, f := range fs {
		if p.Contains(f.Space) {
			inner = append(inner, f)
		} else {
			outer = append(outer, f)
		}
	}

	return inner, outer
}

// Jump applies rank-1 factors to the basis state src.
// ok is false when some factor's bra differs from the current level (the term annihilates src).
// Returns ErrSpaceMismatch if a factor acts outside the product.
// Complexity: O(F).
func (p *Product) Jump(fs []Factor, src int) (dst int, ok bool, err error) {
	dst = src
	for _, f := range fs {
		i, in := p.pos[f.Space]
		if !in {
			return 0, false, hilbertErrorf("Product.Jump", fmt.Errorf("%w: %s not in product", ErrSpaceMismatch, f.Space))
		}
		if p.levelAt(src, i) != f.Bra {
			return 0, false, nil
		}
		dst += (f.Ket - f.Bra) * p.strides[i]
	}

	return dst, true, nil
}

// Column returns the non-zero entries of column src of op's matrix, keyed by row.
// Returns ErrSpaceMismatch if op is not covered by p, ErrLevelOutOfRange for bad src.
func (p *Product) Column(op Operator, src int) (map[int]complex128, error) {
	if src < 0 || src >= p.dim {
		return nil, hilbertErrorf("Product.Column", ErrLevelOutOfRange)
	}
	col := make(map[int]complex128)
	for _, t := range op.terms {
		dst, ok, err := p.Jump(t.Factors, src)
		if err != nil {
			return nil, err
		}
		if ok {
			col[dst] += t.Coeff
		}
	}
	for k, v := range col {
		if v == 0 {
			delete(col, k)
		}
	}

	return col, nil
}

// Dense exports op as a Dim×Dim gonum complex matrix in product basis order.
// Memory is O(Dim²); intended for pruned products.
func (p *Product) Dense(op Operator) (*mat.CDense, error) {
	if err := p.Covers(op); err != nil {
		return nil, hilbertErrorf("Product.Dense", err)
	}
	n := p.dim
	data := make([]complex128, n*n)
	for col := 0; col < n; col++ {
		for _, t := range op.terms {
			dst, ok, _ := p.Jump(t.Factors, col) // covered above
			if ok {
				data[dst*n+col] += t.Coeff
			}
		}
	}

	return mat.NewCDense(n, n, data), nil
}
