// SPDX-License-Identifier: MIT

package prune

import (
	"fmt"
	"math/cmplx"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
)

// element is one accumulated matrix entry of a pruned operator.
type element struct {
	src   int // factor level
	dst   int // original flat index
	outer string
}

// restriction is the result of scanning an operator over the retained set.
type restriction struct {
	passthrough []hilbert.Term // terms acting as identity on the original product
	order       []element
	amps        map[element]complex128
	outers      map[string][]hilbert.Factor
}

// Prune restricts op to the retained set. Factors acting outside the original
// product are preserved, so the result lives on (factor ⊗ other spaces).
// Returns ErrOperatorLeak (naming the first offending transition) if op maps a
// retained state outside the set.
// Complexity: O(m · T · F).
func (s *Space) Prune(op hilbert.Operator) (hilbert.Operator, error) {
	r, err := s.restrict(op)
	if err != nil {
		return hilbert.Operator{}, pruneErrorf("Space.Prune", err)
	}

	terms := make([]hilbert.Term, 0, len(r.passthrough)+len(r.order))
	terms = append(terms, r.passthrough...)
	for _, e := range r.order {
		a := r.amps[e]
		j, kept := s.index[e.dst]
		if !kept || a == 0 { // dropped entries are below eps, see restrict
			continue
		}
		fs := append([]hilbert.Factor{{Space: s.factor, Ket: j, Bra: e.src}}, r.outers[e.outer]...)
		t, err := hilbert.NewTerm(a, fs...)
		if err != nil {
			return hilbert.Operator{}, pruneErrorf("Space.Prune", err)
		}
		terms = append(terms, t)
	}

	return hilbert.NewOperator(terms...).Simplify(), nil
}

// PruneAll prunes every operator in order.
func (s *Space) PruneAll(ops ...hilbert.Operator) ([]hilbert.Operator, error) {
	out := make([]hilbert.Operator, len(ops))
	for i, op := range ops {
		p, err := s.Prune(op)
		if err != nil {
			return nil, fmt.Errorf("operator %d: %w", i, err)
		}
		out[i] = p
	}

	return out, nil
}

// CheckClosed verifies that no operator maps a retained state outside the set.
// Every generator passed to FromInitial passes by construction.
func (s *Space) CheckClosed(ops ...hilbert.Operator) error {
	for i, op := range ops {
		if _, err := s.restrict(op); err != nil {
			return pruneErrorf("Space.CheckClosed", fmt.Errorf("operator %d: %w", i, err))
		}
	}

	return nil
}

// restrict scans op from every retained state and accumulates entries by
// (source, destination, outer factors) so cancelling contributions are summed
// before the leak check.
func (s *Space) restrict(op hilbert.Operator) (*restriction, error) {
	r := &restriction{
		amps:   make(map[element]complex128),
		outers: make(map[string][]hilbert.Factor),
	}
	var active []splitTerm
	for _, t := range split(s.org, op) {
		if len(t.inner) == 0 {
			pt, err := hilbert.NewTerm(t.coeff, t.outer...)
			if err != nil {
				return nil, err
			}
			r.passthrough = append(r.passthrough, pt)
			continue
		}
		active = append(active, t)
		r.outers[t.outerKey] = t.outer
	}

	for i, src := range s.states {
		for _, t := range active {
			dst, ok, _ := s.org.Jump(t.inner, src)
			if !ok {
				continue
			}
			e := element{src: i, dst: dst, outer: t.outerKey}
			if _, seen := r.amps[e]; !seen {
				r.order = append(r.order, e)
			}
			r.amps[e] += t.coeff
		}
	}

	for _, e := range r.order {
		if _, kept := s.index[e.dst]; kept {
			continue
		}
		if a := r.amps[e]; cmplx.Abs(a) > s.eps {
			from, _ := s.org.Levels(s.states[e.src])
			to, _ := s.org.Levels(e.dst)
			return nil, fmt.Errorf("%w: %v -> %v (amplitude %v)", ErrOperatorLeak, from, to, a)
		}
	}

	return r, nil
}
