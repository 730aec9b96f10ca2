// SPDX-License-Identifier: MIT

// Package hilbert - symbolic sparse operators.
//
// Purpose:
//   - Represent operators on composite spaces without materializing the joint space.
//   - Provide the explicit algebra used by builders: Add, Scale, Adjoint, Mul.
//
// Representation:
//   - An Operator is an ordered list of Terms.
//   - A Term is Coeff · ⊗ₖ |Ketₖ⟩⟨Braₖ| over distinct spaces sorted by creation id;
//     spaces not mentioned act as identity.
//
// Complexity quicksheet (T = terms, F = factors per term):
//   - Add: O(Ta+Tb); Scale/Adjoint: O(T·F); Mul: O(Ta·Tb·F); Simplify: O(T·F).

package hilbert

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"
)

// Factor is the rank-1 action |Ket⟩⟨Bra| on a single space.
type Factor struct {
	Space *Space
	Ket   int
	Bra   int
}

// Term is Coeff times the tensor product of its factors.
// Factors are sorted by space creation order and mention each space at most once.
type Term struct {
	Coeff   complex128
	Factors []Factor
}

// NewTerm validates and normalizes factors into a Term.
// Returns ErrNilSpace, ErrLevelOutOfRange or ErrDuplicateSpace on invalid input.
// Complexity: O(F log F).
func NewTerm(coeff complex128, factors ...Factor) (Term, error) {
	fs := make([]Factor, len(factors))
	copy(fs, factors)
	for _, f := range fs {
		if f.Space == nil {
			return Term{}, hilbertErrorf("NewTerm", ErrNilSpace)
		}
		if f.Ket < 0 || f.Ket >= f.Space.n || f.Bra < 0 || f.Bra >= f.Space.n {
			return Term{}, hilbertErrorf("NewTerm", fmt.Errorf("%w: %s |%d⟩⟨%d|", ErrLevelOutOfRange, f.Space, f.Ket, f.Bra))
		}
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Space.id < fs[j].Space.id })
	for i := 1; i < len(fs); i++ {
		if fs[i].Space == fs[i-1].Space {
			return Term{}, hilbertErrorf("NewTerm", fmt.Errorf("%w: %s", ErrDuplicateSpace, fs[i].Space))
		}
	}

	return Term{Coeff: coeff, Factors: fs}, nil
}

// Key returns a canonical string for a sorted factor list. Two terms with the same
// key differ only by coefficient.
func Key(fs []Factor) string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(strconv.FormatUint(f.Space.id, 10))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Ket))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Bra))
		b.WriteByte(';')
	}

	return b.String()
}

// Operator is a linear combination of Terms. The zero value is the zero operator.
type Operator struct {
	terms []Term
}

// NewOperator builds an operator from already normalized terms (see NewTerm).
func NewOperator(terms ...Term) Operator {
	out := make([]Term, len(terms))
	copy(out, terms)

	return Operator{terms: out}
}

// Zero returns the zero operator.
func Zero() Operator { return Operator{} }

// Identity returns the global identity (a single factor-free term).
func Identity() Operator { return Scalar(1) }

// Scalar returns c times the global identity.
func Scalar(c complex128) Operator {
	return Operator{terms: []Term{{Coeff: c}}}
}

// Terms returns a copy of the term list. Factor slices are shared and must not be mutated.
func (o Operator) Terms() []Term {
	out := make([]Term, len(o.terms))
	copy(out, o.terms)

	return out
}

// Len returns the number of stored terms (before or after Simplify).
func (o Operator) Len() int { return len(o.terms) }

// IsZero reports whether the operator has no terms after simplification.
func (o Operator) IsZero() bool { return len(o.Simplify().terms) == 0 }

// Add returns o + b.
func (o Operator) Add(b Operator) Operator {
	out := make([]Term, 0, len(o.terms)+len(b.terms))
	out = append(out, o.terms...)
	out = append(out, b.terms...)

	return Operator{terms: out}
}

// Sub returns o - b.
func (o Operator) Sub(b Operator) Operator { return o.Add(b.Scale(-1)) }

// Scale returns c · o.
func (o Operator) Scale(c complex128) Operator {
	out := make([]Term, len(o.terms))
	for i, t := range o.terms {
		out[i] = Term{Coeff: c * t.Coeff, Factors: t.Factors}
	}

	return Operator{terms: out}
}

// Adjoint returns o† (conjugate transpose).
func (o Operator) Adjoint() Operator {
	out := make([]Term, len(o.terms))
	for i, t := range o.terms {
		fs := make([]Factor, len(t.Factors))
		for j, f := range t.Factors {
			fs[j] = Factor{Space: f.Space, Ket: f.Bra, Bra: f.Ket}
		}
		out[i] = Term{Coeff: cmplx.Conj(t.Coeff), Factors: fs}
	}

	return Operator{terms: out}
}

// Mul returns the product o·b. Factors on a shared space compose
// (|a⟩⟨b|·|c⟩⟨d| = δ_bc |a⟩⟨d|); factors on disjoint spaces form a tensor product.
// Vanishing products are dropped.
func (o Operator) Mul(b Operator) Operator {
	out := make([]Term, 0, len(o.terms)*len(b.terms))
	for _, ta := range o.terms {
		for _, tb := range b.terms {
			if t, ok := mulTerm(ta, tb); ok {
				out = append(out, t)
			}
		}
	}

	return Operator{terms: out}
}

// Tensor is Mul under the name used when the operands act on disjoint spaces.
func (o Operator) Tensor(b Operator) Operator { return o.Mul(b) }

// Simplify merges terms with identical factor lists and drops zero coefficients.
// Term order follows first appearance.
func (o Operator) Simplify() Operator {
	idx := make(map[string]int, len(o.terms))
	merged := make([]Term, 0, len(o.terms))
	for _, t := range o.terms {
		k := Key(t.Factors)
		if p, ok := idx[k]; ok {
			merged[p].Coeff += t.Coeff
			continue
		}
		idx[k] = len(merged)
		merged = append(merged, t)
	}

	out := merged[:0]
	for _, t := range merged {
		if t.Coeff != 0 {
			out = append(out, t)
		}
	}

	return Operator{terms: out}
}

// Spaces returns the distinct spaces mentioned by any term, in creation order.
func (o Operator) Spaces() []*Space {
	seen := make(map[*Space]bool)
	var out []*Space
	for _, t := range o.terms {
		for _, f := range t.Factors {
			if !seen[f.Space] {
				seen[f.Space] = true
				out = append(out, f.Space)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })

	return out
}

// String renders the operator for debugging, e.g. "(1+0i)|1⟩⟨0|_c01 + ...".
func (o Operator) String() string {
	if len(o.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(o.terms))
	for i, t := range o.terms {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%v", t.Coeff))
		for _, f := range t.Factors {
			b.WriteString(fmt.Sprintf("|%d⟩⟨%d|_%s", f.Ket, f.Bra, f.Space))
		}
		parts[i] = b.String()
	}

	return strings.Join(parts, " + ")
}

// Sum returns the sum of ops (the zero operator for no arguments).
func Sum(ops ...Operator) Operator {
	var out Operator
	for _, op := range ops {
		out = out.Add(op)
	}

	return out
}

// SumCt returns Σ ops + (Σ ops)†, which is Hermitian by construction.
func SumCt(ops ...Operator) Operator {
	s := Sum(ops...)

	return s.Add(s.Adjoint())
}

// Prod returns ops[0]·ops[1]·…; the identity for no arguments.
func Prod(ops ...Operator) Operator {
	out := Identity()
	for _, op := range ops {
		out = out.Mul(op)
	}

	return out
}

// mulTerm multiplies two terms by merging their sorted factor lists.
func mulTerm(a, b Term) (Term, bool) {
	out := make([]Factor, 0, len(a.Factors)+len(b.Factors))
	i, j := 0, 0
	for i < len(a.Factors) && j < len(b.Factors) {
		fa, fb := a.Factors[i], b.Factors[j]
		switch {
		case fa.Space.id < fb.Space.id:
			out = append(out, fa)
			i++
		case fa.Space.id > fb.Space.id:
			out = append(out, fb)
			j++
		default:
			if fa.Bra != fb.Ket {
				return Term{}, false
			}
			out = append(out, Factor{Space: fa.Space, Ket: fa.Ket, Bra: fb.Bra})
			i++
			j++
		}
	}
	out = append(out, a.Factors[i:]...)
	out = append(out, b.Factors[j:]...)

	return Term{Coeff: a.Coeff * b.Coeff, Factors: out}, true
}
