// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/prune"
	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/ZhengKeli/OpticalInterpretation/subsystem"
)

// OpticalParams configures the optical model.
type OpticalParams struct {
	Potentials  [subsystem.AtomLevels]float64 `yaml:"potentials" json:"potentials"`
	PotentialAn float64                       `yaml:"potential_an" json:"potential_an"`
	Couplings   subsystem.Couplings           `yaml:",inline" json:"couplings"`
	GTA         float64                       `yaml:"gta" json:"gta"`
	Gamma01     float64                       `yaml:"gamma01" json:"gamma01"`
	Gamma12     float64                       `yaml:"gamma12" json:"gamma12"`
	Gamma23     float64                       `yaml:"gamma23" json:"gamma23"`
	GammaTA     float64                       `yaml:"gamma_ta" json:"gamma_ta"`
	Hbar        float64                       `yaml:"hbar" json:"hbar"`
}

// DefaultOpticalParams returns the chemical defaults plus pAn = -6, gTA = 0.02, γTA = 0.
func DefaultOpticalParams() OpticalParams {
	return OpticalParams{
		Potentials:  subsystem.DefaultAtomLevels(),
		PotentialAn: -6,
		Couplings:   subsystem.Couplings{G01: 0.02, G12: 0.02, G23: 0.02},
		GTA:         0.02,
		Gamma01:     0.002,
		Gamma12:     0.002,
		Gamma23:     0.002,
		GammaTA:     0,
		Hbar:        1,
	}
}

// OpticalInitial selects a basis state of the optical model. Each part is
// (atom level, transport level); the anode level is derived.
type OpticalInitial struct {
	Part0 [2]int `yaml:"part0" json:"part0"`
	Part1 [2]int `yaml:"part1" json:"part1"`
	C01   int    `yaml:"c01" json:"c01"`
	C12   int    `yaml:"c12" json:"c12"`
	C23   int    `yaml:"c23" json:"c23"`
	CTA   int    `yaml:"cta" json:"cta"`
}

// DefaultOpticalInitial is part 0 with its atom in level 3, part 1 in its ground
// state and one photon in c23.
func DefaultOpticalInitial() OpticalInitial {
	return OpticalInitial{Part0: [2]int{3, 0}, C23: 1}
}

// PrunedATA is an atom/transport/anode bundle restricted to the states reachable
// from (at=0, tp=0, an=2) under its structural jumps.
type PrunedATA struct {
	org       *subsystem.AtomTransportAnode
	space     *prune.Space
	potential hilbert.Operator
}

// NewPrunedATA builds and pre-prunes one bundle; name labels its factor space.
func NewPrunedATA(levels [subsystem.AtomLevels]float64, potentialAn float64, name string) (*PrunedATA, error) {
	org, err := subsystem.NewAtomTransportAnode(levels, potentialAn)
	if err != nil {
		return nil, modelErrorf("NewPrunedATA", err)
	}
	init, err := org.Eigenstate(0, 0, 2)
	if err != nil {
		return nil, modelErrorf("NewPrunedATA", err)
	}
	space, err := prune.FromInitial(
		[]*hilbert.Ket{init},
		[]hilbert.Operator{org.ReachabilityGenerators()},
		prune.WithName(name),
	)
	if err != nil {
		return nil, modelErrorf("NewPrunedATA", err)
	}
	potential, err := space.Prune(org.Potential())
	if err != nil {
		return nil, modelErrorf("NewPrunedATA", err)
	}

	return &PrunedATA{org: org, space: space, potential: potential}, nil
}

// Org returns the unpruned bundle.
func (a *PrunedATA) Org() *subsystem.AtomTransportAnode { return a.org }

// Space returns the bundle's reachability mapping.
func (a *PrunedATA) Space() *prune.Space { return a.space }

// Potential returns the pruned potential.
func (a *PrunedATA) Potential() hilbert.Operator { return a.potential }

// Transition returns the pruned raw coupling of the bundle to the four cavities.
func (a *PrunedATA) Transition(g subsystem.Couplings, gTA float64, c01, c12, c23, cta *subsystem.Ladder) (hilbert.Operator, error) {
	op, err := a.space.Prune(a.org.Transition(g, gTA, c01, c12, c23, cta))
	if err != nil {
		return hilbert.Operator{}, modelErrorf("PrunedATA.Transition", err)
	}

	return op, nil
}

// Eigenstate returns the pruned ket of (at, tp, an); pass subsystem.AutoAnode for an
// to derive it.
func (a *PrunedATA) Eigenstate(at, tp, an int) (*hilbert.Ket, error) {
	k, err := a.org.Eigenstate(at, tp, an)
	if err != nil {
		return nil, modelErrorf("PrunedATA.Eigenstate", err)
	}

	return a.space.PruneKet(k)
}

// Optical couples two pre-pruned bundles to cavities c01, c12, c23 and the anode
// cavity cta. Product order: part0, part1, c01, c12, c23, cta.
type Optical struct {
	*Model

	Part0, Part1       *PrunedATA
	C01, C12, C23, CTA *subsystem.Ladder
}

// NewOptical assembles the optical model.
func NewOptical(p OpticalParams) (*Optical, error) {
	var (
		o   Optical
		err error
	)
	pot := p.Potentials
	if o.Part0, err = NewPrunedATA(pot, p.PotentialAn, "part0"); err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	if o.Part1, err = NewPrunedATA(pot, p.PotentialAn, "part1"); err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	if o.C01, err = subsystem.NewCavity(3, pot[0]-pot[1], "c01"); err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	if o.C12, err = subsystem.NewCavity(3, pot[1]-pot[2], "c12"); err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	if o.C23, err = subsystem.NewCavity(2, pot[2]-pot[3], "c23"); err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	if o.CTA, err = subsystem.NewCavity(3, pot[0]-p.PotentialAn, "cta"); err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	t0, err := o.Part0.Transition(p.Couplings, p.GTA, o.C01, o.C12, o.C23, o.CTA)
	if err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	t1, err := o.Part1.Transition(p.Couplings, p.GTA, o.C01, o.C12, o.C23, o.CTA)
	if err != nil {
		return nil, modelErrorf("NewOptical", err)
	}
	product, err := hilbert.NewProduct(
		o.Part0.Space().Factor(), o.Part1.Space().Factor(),
		o.C01.Space(), o.C12.Space(), o.C23.Space(), o.CTA.Space(),
	)
	if err != nil {
		return nil, modelErrorf("NewOptical", err)
	}

	o.Model, err = NewBuilder(p.Hbar).
		AddPotential(
			o.Part0.Potential(), o.Part1.Potential(),
			o.C01.Potential(), o.C12.Potential(), o.C23.Potential(), o.CTA.Potential(),
		).
		AddCoupling(t0, t1).
		AddDecay(p.Gamma01, o.C01.Decrease()).
		AddDecay(p.Gamma12, o.C12.Decrease()).
		AddDecay(p.Gamma23, o.C23.Decrease()).
		AddDecay(p.GammaTA, o.CTA.Decrease()).
		Build(product)
	if err != nil {
		return nil, modelErrorf("NewOptical", err)
	}

	return &o, nil
}

// Eigenstate returns the basis ket with part0 = (at, tp), part1 = (at, tp) and the
// given cavity occupations. Anode levels are derived.
func (o *Optical) Eigenstate(part0, part1 [2]int, c01, c12, c23, cta int) (*hilbert.Ket, error) {
	k0, err := o.Part0.Eigenstate(part0[0], part0[1], subsystem.AutoAnode)
	if err != nil {
		return nil, modelErrorf("Optical.Eigenstate", fmt.Errorf("part0: %w", err))
	}
	k1, err := o.Part1.Eigenstate(part1[0], part1[1], subsystem.AutoAnode)
	if err != nil {
		return nil, modelErrorf("Optical.Eigenstate", fmt.Errorf("part1: %w", err))
	}
	// Pruned part kets are single basis levels of the part factors.
	psi, err := o.Product().Basis(k0.Support()[0], k1.Support()[0], c01, c12, c23, cta)
	if err != nil {
		return nil, modelErrorf("Optical.Eigenstate", err)
	}

	return psi, nil
}

// Initial returns the basis ket selected by in.
func (o *Optical) Initial(in OpticalInitial) (*hilbert.Ket, error) {
	return o.Eigenstate(in.Part0, in.Part1, in.C01, in.C12, in.C23, in.CTA)
}

// PrunedOptical is the optical model restricted to its reachable states.
type PrunedOptical struct {
	*Pruned
	opt *Optical
}

// NewPrunedOptical prunes opt from the given initial kets.
func NewPrunedOptical(opt *Optical, initial []*hilbert.Ket, opts ...prune.Option) (*PrunedOptical, error) {
	p, err := PruneModel(opt.Model, initial, opts...)
	if err != nil {
		return nil, modelErrorf("NewPrunedOptical", err)
	}

	return &PrunedOptical{Pruned: p, opt: opt}, nil
}

// Optical returns the unpruned optical model.
func (p *PrunedOptical) Optical() *Optical { return p.opt }

// Name identifies the model in reports.
func (p *PrunedOptical) Name() string { return "optical" }

// OrgEigenstates returns the retained states restored through both nesting levels,
// as kets over (tp, at, an) of part 0, (tp, at, an) of part 1 and the cavities.
func (p *PrunedOptical) OrgEigenstates() ([]*hilbert.Ket, error) {
	states := p.space.OrgEigenstates()
	out := make([]*hilbert.Ket, len(states))
	for i, psi := range states {
		k, err := p.opt.Part0.Space().Restore(psi)
		if err != nil {
			return nil, modelErrorf("PrunedOptical.OrgEigenstates", err)
		}
		if k, err = p.opt.Part1.Space().Restore(k); err != nil {
			return nil, modelErrorf("PrunedOptical.OrgEigenstates", err)
		}
		out[i] = k
	}

	return out, nil
}

// Labels renders one label per retained state, e.g.
// "|30,0⟩at0tp0an0 |00,2⟩at1tp1an1 |001,0⟩ω01ω12ω23Ω".
func (p *PrunedOptical) Labels() ([]string, error) {
	states, err := p.OrgEigenstates()
	if err != nil {
		return nil, err
	}
	o := p.opt
	a0, a1 := o.Part0.Org(), o.Part1.Org()
	out := make([]string, len(states))
	for i, psi := range states {
		em, err := report.Decode(psi)
		if err != nil {
			return nil, modelErrorf("PrunedOptical.Labels", err)
		}
		out[i] = fmt.Sprintf("|%d%d,%d⟩at0tp0an0 |%d%d,%d⟩at1tp1an1 |%d%d%d,%d⟩ω01ω12ω23Ω",
			em[a0.At.Space()], em[a0.Tp.Space()], em[a0.An.Space()],
			em[a1.At.Space()], em[a1.Tp.Space()], em[a1.An.Space()],
			em[o.C01.Space()], em[o.C12.Space()], em[o.C23.Space()], em[o.CTA.Space()])
	}

	return out, nil
}
