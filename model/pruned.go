// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/prune"
)

// Pruned is a Model restricted to the states reachable from its initial kets.
type Pruned struct {
	org   *Model
	space *prune.Space
	model *Model
}

// PruneModel computes the reachable subspace of org under its Hamiltonian and decay
// operators and rebuilds the model on it. The initial kets must live on
// org.Product() (hilbert.ErrSpaceMismatch otherwise).
func PruneModel(org *Model, initial []*hilbert.Ket, opts ...prune.Option) (*Pruned, error) {
	for i, k := range initial {
		if !k.Product().Equal(org.Product()) {
			return nil, modelErrorf("PruneModel", fmt.Errorf("initial %d: %w", i, hilbert.ErrSpaceMismatch))
		}
	}
	space, err := prune.FromInitial(initial, org.Generators(), opts...)
	if err != nil {
		return nil, modelErrorf("PruneModel", err)
	}

	h, err := space.Prune(org.Hamiltonian())
	if err != nil {
		return nil, modelErrorf("PruneModel", err)
	}
	b := NewBuilder(org.Hbar()).AddPotential(h)
	for i, c := range org.channels {
		op, err := space.Prune(c.Op)
		if err != nil {
			return nil, modelErrorf("PruneModel", fmt.Errorf("channel %d: %w", i, err))
		}
		b.AddDecay(c.Rate, op)
	}
	model, err := b.Build(space.Product())
	if err != nil {
		return nil, modelErrorf("PruneModel", err)
	}

	return &Pruned{org: org, space: space, model: model}, nil
}

// Org returns the unpruned model.
func (p *Pruned) Org() *Model { return p.org }

// Space returns the reachability mapping.
func (p *Pruned) Space() *prune.Space { return p.space }

// Model returns the model on the pruned factor.
func (p *Pruned) Model() *Model { return p.model }

// PruneKet maps a ket of the original product into the pruned factor.
func (p *Pruned) PruneKet(k *hilbert.Ket) (*hilbert.Ket, error) {
	return p.space.PruneKet(k)
}
