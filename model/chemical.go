// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/prune"
	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/ZhengKeli/OpticalInterpretation/subsystem"
)

// ChemicalParams configures the chemical model.
type ChemicalParams struct {
	Potentials [subsystem.AtomLevels]float64 `yaml:"potentials" json:"potentials"`
	Couplings  subsystem.Couplings           `yaml:",inline" json:"couplings"`
	Gamma01    float64                       `yaml:"gamma01" json:"gamma01"`
	Gamma12    float64                       `yaml:"gamma12" json:"gamma12"`
	Gamma23    float64                       `yaml:"gamma23" json:"gamma23"`
	Hbar       float64                       `yaml:"hbar" json:"hbar"`
}

// DefaultChemicalParams returns potentials (0,-1,-4,-5), g = 0.02, γ = 0.002, ħ = 1.
func DefaultChemicalParams() ChemicalParams {
	return ChemicalParams{
		Potentials: subsystem.DefaultAtomLevels(),
		Couplings:  subsystem.Couplings{G01: 0.02, G12: 0.02, G23: 0.02},
		Gamma01:    0.002,
		Gamma12:    0.002,
		Gamma23:    0.002,
		Hbar:       1,
	}
}

// ChemicalInitial selects a basis state of the chemical model.
type ChemicalInitial struct {
	At0 int `yaml:"at0" json:"at0"`
	At1 int `yaml:"at1" json:"at1"`
	Tp  int `yaml:"tp" json:"tp"`
	C01 int `yaml:"c01" json:"c01"`
	C12 int `yaml:"c12" json:"c12"`
	C23 int `yaml:"c23" json:"c23"`
}

// DefaultChemicalInitial is atom 0 in level 3 with one photon in c23.
func DefaultChemicalInitial() ChemicalInitial {
	return ChemicalInitial{At0: 3, C23: 1}
}

// Chemical is two atoms sharing a transport band, coupled to three cavities.
// Product order: at0, at1, tp, c01, c12, c23.
type Chemical struct {
	*Model

	At0, At1      *subsystem.Atom
	Tp            *subsystem.Ladder
	C01, C12, C23 *subsystem.Ladder
}

// NewChemical assembles the chemical model.
func NewChemical(p ChemicalParams) (*Chemical, error) {
	var (
		c   Chemical
		err error
	)
	pot := p.Potentials
	if c.At0, err = subsystem.NewAtom(pot, "at0"); err != nil {
		return nil, modelErrorf("NewChemical", err)
	}
	if c.At1, err = subsystem.NewAtom(pot, "at1"); err != nil {
		return nil, modelErrorf("NewChemical", err)
	}
	if c.Tp, err = subsystem.NewBand(subsystem.BandLevels, pot[0], "tp"); err != nil {
		return nil, modelErrorf("NewChemical", err)
	}
	if c.C01, err = subsystem.NewCavity(3, pot[0]-pot[1], "c01"); err != nil {
		return nil, modelErrorf("NewChemical", err)
	}
	if c.C12, err = subsystem.NewCavity(3, pot[1]-pot[2], "c12"); err != nil {
		return nil, modelErrorf("NewChemical", err)
	}
	if c.C23, err = subsystem.NewCavity(2, pot[2]-pot[3], "c23"); err != nil {
		return nil, modelErrorf("NewChemical", err)
	}
	product, err := hilbert.NewProduct(
		c.At0.Space(), c.At1.Space(), c.Tp.Space(),
		c.C01.Space(), c.C12.Space(), c.C23.Space(),
	)
	if err != nil {
		return nil, modelErrorf("NewChemical", err)
	}

	c.Model, err = NewBuilder(p.Hbar).
		AddPotential(
			c.At0.Potential(), c.At1.Potential(), c.Tp.Potential(),
			c.C01.Potential(), c.C12.Potential(), c.C23.Potential(),
		).
		AddCoupling(
			c.At0.Transition(p.Couplings, c.C01, c.C12, c.C23, c.Tp),
			c.At1.Transition(p.Couplings, c.C01, c.C12, c.C23, c.Tp),
		).
		AddDecay(p.Gamma01, c.C01.Decrease()).
		AddDecay(p.Gamma12, c.C12.Decrease()).
		AddDecay(p.Gamma23, c.C23.Decrease()).
		Build(product)
	if err != nil {
		return nil, modelErrorf("NewChemical", err)
	}

	return &c, nil
}

// Eigenstate returns the basis ket |at0, at1, tp, c01, c12, c23⟩.
func (c *Chemical) Eigenstate(at0, at1, tp, c01, c12, c23 int) (*hilbert.Ket, error) {
	return c.Product().Basis(at0, at1, tp, c01, c12, c23)
}

// Initial returns the basis ket selected by in.
func (c *Chemical) Initial(in ChemicalInitial) (*hilbert.Ket, error) {
	return c.Eigenstate(in.At0, in.At1, in.Tp, in.C01, in.C12, in.C23)
}

// PrunedChemical is the chemical model restricted to its reachable states.
type PrunedChemical struct {
	*Pruned
	chem *Chemical
}

// NewPrunedChemical prunes chem from the given initial kets.
func NewPrunedChemical(chem *Chemical, initial []*hilbert.Ket, opts ...prune.Option) (*PrunedChemical, error) {
	p, err := PruneModel(chem.Model, initial, opts...)
	if err != nil {
		return nil, modelErrorf("NewPrunedChemical", err)
	}

	return &PrunedChemical{Pruned: p, chem: chem}, nil
}

// Chemical returns the unpruned chemical model.
func (p *PrunedChemical) Chemical() *Chemical { return p.chem }

// Name identifies the model in reports.
func (p *PrunedChemical) Name() string { return "chemical" }

// OrgEigenstates returns the retained states as kets of the chemical product.
func (p *PrunedChemical) OrgEigenstates() ([]*hilbert.Ket, error) {
	return p.space.OrgEigenstates(), nil
}

// Labels renders one label per retained state, e.g. "|3⟩at0 |0⟩at1 |0⟩tp |001⟩ω01ω12ω23".
func (p *PrunedChemical) Labels() ([]string, error) {
	c := p.chem
	states := p.space.OrgEigenstates()
	out := make([]string, len(states))
	for i, psi := range states {
		em, err := report.Decode(psi)
		if err != nil {
			return nil, modelErrorf("PrunedChemical.Labels", err)
		}
		out[i] = fmt.Sprintf("|%d⟩at0 |%d⟩at1 |%d⟩tp |%d%d%d⟩ω01ω12ω23",
			em[c.At0.Space()], em[c.At1.Space()], em[c.Tp.Space()],
			em[c.C01.Space()], em[c.C12.Space()], em[c.C23.Space()])
	}

	return out, nil
}
