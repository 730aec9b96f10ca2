// SPDX-License-Identifier: MIT

package hilbert

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Ket is a sparse state vector over a Product. Zero amplitudes are never stored.
type Ket struct {
	prod *Product
	amps map[int]complex128
}

// NewKet builds a ket from flat-index amplitudes. The map is copied; zeros are dropped.
// Returns ErrLevelOutOfRange for indices outside the product and ErrNaNInf for
// non-finite amplitudes.
func NewKet(p *Product, amps map[int]complex128) (*Ket, error) {
	k := &Ket{prod: p, amps: make(map[int]complex128, len(amps))}
	for idx, a := range amps {
		if idx < 0 || idx >= p.dim {
			return nil, hilbertErrorf("NewKet", fmt.Errorf("%w: index %d of %d", ErrLevelOutOfRange, idx, p.dim))
		}
		if cmplx.IsNaN(a) || cmplx.IsInf(a) {
			return nil, hilbertErrorf("NewKet", ErrNaNInf)
		}
		if a != 0 {
			k.amps[idx] = a
		}
	}

	return k, nil
}

// Basis returns the basis ket with the given per-space levels (product order).
func (p *Product) Basis(levels ...int) (*Ket, error) {
	idx, err := p.Index(levels...)
	if err != nil {
		return nil, err
	}

	return &Ket{prod: p, amps: map[int]complex128{idx: 1}}, nil
}

// Product returns the product the ket lives in.
func (k *Ket) Product() *Product { return k.prod }

// Amplitude returns the amplitude at flat index idx (zero if absent).
func (k *Ket) Amplitude(idx int) complex128 { return k.amps[idx] }

// Len returns the number of non-zero amplitudes.
func (k *Ket) Len() int { return len(k.amps) }

// Support returns the flat indices with non-zero amplitude in ascending order.
func (k *Ket) Support() []int {
	out := make([]int, 0, len(k.amps))
	for idx := range k.amps {
		out = append(out, idx)
	}
	sort.Ints(out)

	return out
}

// Norm returns the Euclidean norm.
func (k *Ket) Norm() float64 {
	var s float64
	for _, a := range k.amps {
		s += real(a)*real(a) + imag(a)*imag(a)
	}

	return math.Sqrt(s)
}

// Scale returns c·k.
func (k *Ket) Scale(c complex128) *Ket {
	out := &Ket{prod: k.prod, amps: make(map[int]complex128, len(k.amps))}
	if c == 0 {
		return out
	}
	for idx, a := range k.amps {
		out.amps[idx] = c * a
	}

	return out
}

// Add returns k + o. Both kets must share an equal product.
func (k *Ket) Add(o *Ket) (*Ket, error) {
	if !k.prod.Equal(o.prod) {
		return nil, hilbertErrorf("Ket.Add", ErrSpaceMismatch)
	}
	out := &Ket{prod: k.prod, amps: make(map[int]complex128, len(k.amps)+len(o.amps))}
	for idx, a := range k.amps {
		out.amps[idx] = a
	}
	for idx, a := range o.amps {
		if s := out.amps[idx] + a; s != 0 {
			out.amps[idx] = s
		} else {
			delete(out.amps, idx)
		}
	}

	return out, nil
}

// Tensor returns k ⊗ o over the concatenated product (k's spaces first).
// Returns ErrDuplicateSpace if the products share a space.
func (k *Ket) Tensor(o *Ket) (*Ket, error) {
	p, err := NewProduct(append(k.prod.Spaces(), o.prod.spaces...)...)
	if err != nil {
		return nil, hilbertErrorf("Ket.Tensor", err)
	}
	out := &Ket{prod: p, amps: make(map[int]complex128, len(k.amps)*len(o.amps))}
	for i, a := range k.amps {
		for j, b := range o.amps {
			out.amps[i*o.prod.dim+j] = a * b
		}
	}

	return out, nil
}

// ProdKets returns kets[0] ⊗ kets[1] ⊗ … in argument order.
func ProdKets(kets ...*Ket) (*Ket, error) {
	if len(kets) == 0 {
		return nil, hilbertErrorf("ProdKets", ErrEmptyState)
	}
	out := kets[0]
	for _, k := range kets[1:] {
		var err error
		if out, err = out.Tensor(k); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Apply returns op|k⟩. op must be covered by the ket's product.
func (k *Ket) Apply(op Operator) (*Ket, error) {
	if err := k.prod.Covers(op); err != nil {
		return nil, hilbertErrorf("Ket.Apply", err)
	}
	out := make(map[int]complex128)
	for _, idx := range k.Support() {
		a := k.amps[idx]
		for _, t := range op.terms {
			dst, ok, _ := k.prod.Jump(t.Factors, idx)
			if ok {
				out[dst] += t.Coeff * a
			}
		}
	}

	return NewKet(k.prod, out)
}

// Vector returns the dense amplitude vector of length Product().Dim().
func (k *Ket) Vector() []complex128 {
	v := make([]complex128, k.prod.dim)
	for idx, a := range k.amps {
		v[idx] = a
	}

	return v
}

// Density returns the dense density matrix |k⟩⟨k|.
func (k *Ket) Density() *mat.CDense {
	n := k.prod.dim
	data := make([]complex128, n*n)
	for i, a := range k.amps {
		for j, b := range k.amps {
			data[i*n+j] = a * cmplx.Conj(b)
		}
	}

	return mat.NewCDense(n, n, data)
}

// String renders the ket as "a|levels⟩ + …" in support order.
func (k *Ket) String() string {
	if len(k.amps) == 0 {
		return "0"
	}
	var s string
	for i, idx := range k.Support() {
		if i > 0 {
			s += " + "
		}
		levels, _ := k.prod.Levels(idx)
		s += fmt.Sprintf("%v|%v⟩", k.amps[idx], levels)
	}

	return s
}
