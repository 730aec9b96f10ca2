// SPDX-License-Identifier: MIT

package prune

import (
	"fmt"
	"math/cmplx"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
)

// Space is the reachable subspace of an original product, exposed as a single
// factor space whose level i stands for the i-th retained basis state.
// A Space is immutable after FromInitial returns.
type Space struct {
	org     *hilbert.Product
	factor  *hilbert.Space
	product *hilbert.Product
	states  []int       // original flat indices, discovery order
	index   map[int]int // original flat index → factor level
	eps     float64
}

// splitTerm is a generator term divided into the factors acting on the original
// product (inner) and those acting elsewhere (outer, kept only as a key).
type splitTerm struct {
	coeff    complex128
	inner    []hilbert.Factor
	outer    []hilbert.Factor
	outerKey string
}

// target is a destination state together with the outer factors that carry it.
type target struct {
	dst   int
	outer string
}

// walker encapsulates mutable closure state.
type walker struct {
	org     *hilbert.Product
	gens    [][]splitTerm
	opts    Options
	queue   []int
	visited map[int]int
	order   []int
}

// FromInitial computes the closure of the basis states supporting initial under
// repeated application of generators.
//
// Stage 1: seeds are the supports of every initial ket (ascending flat index, kets
// in argument order). All kets must share the same product.
// Stage 2: breadth-first expansion. For each dequeued state the generators are
// applied in order; within a generator, destinations are visited in the order their
// first contributing term appears. Destinations whose summed amplitude does not
// exceed Epsilon are ignored.
//
// Generator factors on spaces outside the product are ignored for reachability.
// Returns ErrEmptyReachableSet, ErrStateLimit, ErrOptionViolation or
// hilbert.ErrSpaceMismatch for kets over differing products.
func FromInitial(initial []*hilbert.Ket, generators []hilbert.Operator, opts ...Option) (*Space, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(initial) == 0 {
		return nil, pruneErrorf("FromInitial", ErrEmptyReachableSet)
	}
	org := initial[0].Product()
	for _, k := range initial[1:] {
		if !k.Product().Equal(org) {
			return nil, pruneErrorf("FromInitial", hilbert.ErrSpaceMismatch)
		}
	}

	w := &walker{
		org:     org,
		gens:    make([][]splitTerm, len(generators)),
		opts:    o,
		visited: make(map[int]int),
	}
	for i, g := range generators {
		w.gens[i] = split(org, g)
	}
	for _, k := range initial {
		for _, idx := range k.Support() {
			if err := w.enqueue(idx); err != nil {
				return nil, pruneErrorf("FromInitial", err)
			}
		}
	}
	if len(w.order) == 0 {
		return nil, pruneErrorf("FromInitial", ErrEmptyReachableSet)
	}
	if err := w.loop(); err != nil {
		return nil, pruneErrorf("FromInitial", err)
	}

	return newSpace(org, w.order, o)
}

// newSpace creates the factor space for an ordered retained set.
func newSpace(org *hilbert.Product, states []int, o Options) (*Space, error) {
	factor, err := hilbert.NewSpace(len(states), o.Name)
	if err != nil {
		return nil, pruneErrorf("FromInitial", err)
	}
	product, err := hilbert.NewProduct(factor)
	if err != nil {
		return nil, pruneErrorf("FromInitial", err)
	}
	s := &Space{
		org:     org,
		factor:  factor,
		product: product,
		states:  states,
		index:   make(map[int]int, len(states)),
		eps:     o.Epsilon,
	}
	for i, idx := range states {
		s.index[idx] = i
	}

	return s, nil
}

// enqueue marks idx as retained and schedules it for expansion.
func (w *walker) enqueue(idx int) error {
	if _, seen := w.visited[idx]; seen {
		return nil
	}
	if w.opts.MaxStates > 0 && len(w.order) >= w.opts.MaxStates {
		return fmt.Errorf("%w: limit %d", ErrStateLimit, w.opts.MaxStates)
	}
	w.visited[idx] = len(w.order)
	w.order = append(w.order, idx)
	w.queue = append(w.queue, idx)

	return nil
}

// loop expands states until the queue is empty.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		src := w.queue[0]
		w.queue = w.queue[1:]
		for _, terms := range w.gens {
			for _, dst := range reach(w.org, terms, src, w.opts.Epsilon) {
				if err := w.enqueue(dst); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// reach returns the destinations of src under one generator whose summed amplitude
// exceeds eps, in first-contribution order. Repeats are possible when several outer
// keys lead to the same state; enqueue ignores them.
func reach(org *hilbert.Product, terms []splitTerm, src int, eps float64) []int {
	acc := make(map[target]complex128)
	var order []target
	for _, t := range terms {
		dst, ok, _ := org.Jump(t.inner, src) // inner factors are in org by construction
		if !ok {
			continue
		}
		key := target{dst: dst, outer: t.outerKey}
		if _, seen := acc[key]; !seen {
			order = append(order, key)
		}
		acc[key] += t.coeff
	}
	out := make([]int, 0, len(order))
	for _, key := range order {
		if cmplx.Abs(acc[key]) > eps {
			out = append(out, key.dst)
		}
	}

	return out
}

// split partitions every term of op against the product.
func split(org *hilbert.Product, op hilbert.Operator) []splitTerm {
	terms := op.Terms()
	out := make([]splitTerm, 0, len(terms))
	for _, t := range terms {
		inner, outer := org.Partition(t.Factors)
		out = append(out, splitTerm{
			coeff:    t.Coeff,
			inner:    inner,
			outer:    outer,
			outerKey: hilbert.Key(outer),
		})
	}

	return out
}

// Origin returns the original product the space was pruned from.
func (s *Space) Origin() *hilbert.Product { return s.org }

// Factor returns the pruned factor space.
func (s *Space) Factor() *hilbert.Space { return s.factor }

// Product returns the single-space product of the factor.
func (s *Space) Product() *hilbert.Product { return s.product }

// Dim returns the number of retained states.
func (s *Space) Dim() int { return len(s.states) }

// Epsilon returns the tolerance the space was built with.
func (s *Space) Epsilon() float64 { return s.eps }

// States returns a copy of the retained original flat indices in discovery order.
func (s *Space) States() []int {
	out := make([]int, len(s.states))
	copy(out, s.states)

	return out
}

// IndexOf returns the factor level of an original flat index.
// Returns ErrUnreachableStateAccessed if the state was not retained.
func (s *Space) IndexOf(orgIdx int) (int, error) {
	i, ok := s.index[orgIdx]
	if !ok {
		return 0, pruneErrorf("Space.IndexOf", fmt.Errorf("%w: original index %d", ErrUnreachableStateAccessed, orgIdx))
	}

	return i, nil
}

// OrgState returns the i-th retained state as a basis ket of the original product.
// Returns ErrUnreachableStateAccessed for i outside 0..Dim()-1.
func (s *Space) OrgState(i int) (*hilbert.Ket, error) {
	if i < 0 || i >= len(s.states) {
		return nil, pruneErrorf("Space.OrgState", fmt.Errorf("%w: level %d of %d", ErrUnreachableStateAccessed, i, len(s.states)))
	}

	return hilbert.NewKet(s.org, map[int]complex128{s.states[i]: 1})
}

// OrgEigenstates returns every retained state as a basis ket of the original
// product, in discovery order.
func (s *Space) OrgEigenstates() []*hilbert.Ket {
	out := make([]*hilbert.Ket, len(s.states))
	for i := range s.states {
		out[i], _ = s.OrgState(i) // in range
	}

	return out
}
