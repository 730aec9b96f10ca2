// SPDX-License-Identifier: MIT

package subsystem

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
)

// BandLevels is the level count of the transport and anode bands.
const BandLevels = 3

// AutoAnode asks Eigenstate to derive the anode level from electron conservation.
const AutoAnode = -1

// AtomTransportAnode bundles an atom with a transport band and an anode band.
// Two electrons are shared between the three: tp + electrons(at) + an = 2 along
// every structural jump.
type AtomTransportAnode struct {
	At *Atom
	Tp *Ladder
	An *Ladder

	product   *hilbert.Product
	potential hilbert.Operator
}

// NewAtomTransportAnode builds the bundle. The transport band uses levels[0] as its
// step and the anode band uses potentialAn.
func NewAtomTransportAnode(levels [AtomLevels]float64, potentialAn float64) (*AtomTransportAnode, error) {
	at, err := NewAtom(levels, "at")
	if err != nil {
		return nil, subsystemErrorf("NewAtomTransportAnode", err)
	}
	tp, err := NewBand(BandLevels, levels[0], "tp")
	if err != nil {
		return nil, subsystemErrorf("NewAtomTransportAnode", err)
	}
	an, err := NewBand(BandLevels, potentialAn, "an")
	if err != nil {
		return nil, subsystemErrorf("NewAtomTransportAnode", err)
	}
	product, err := hilbert.NewProduct(tp.Space(), at.Space(), an.Space())
	if err != nil {
		return nil, subsystemErrorf("NewAtomTransportAnode", err)
	}

	return &AtomTransportAnode{
		At:        at,
		Tp:        tp,
		An:        an,
		product:   product,
		potential: hilbert.Sum(at.Potential(), tp.Potential(), an.Potential()),
	}, nil
}

// Product returns the joint space in the order (tp, at, an).
func (s *AtomTransportAnode) Product() *hilbert.Product { return s.product }

// Potential returns the summed potentials of atom, transport and anode.
func (s *AtomTransportAnode) Potential() hilbert.Operator { return s.potential }

// Transition returns the raw coupling: the atom transition against the transport
// band plus gTA · cta↑ ⊗ tp↓ ⊗ an↑.
func (s *AtomTransportAnode) Transition(g Couplings, gTA float64, c01, c12, c23, cta *Ladder) hilbert.Operator {
	return s.At.Transition(g, c01, c12, c23, s.Tp).Add(
		hilbert.Prod(cta.Increase(), s.Tp.Decrease(), s.An.Increase()).Scale(complex(gTA, 0)),
	)
}

// ReachabilityGenerators returns the Hermitian sum of the four structural jumps
// (|1⟩⟨0|·tp↓, |2⟩⟨1|, |3⟩⟨2|·tp↓, tp↓·an↑). It ignores couplings and cavities
// and is only meant for pre-pruning the bundle.
func (s *AtomTransportAnode) ReachabilityGenerators() hilbert.Operator {
	return hilbert.SumCt(
		s.At.Operator(1, 0).Mul(s.Tp.Decrease()),
		s.At.Operator(2, 1),
		s.At.Operator(3, 2).Mul(s.Tp.Decrease()),
		s.Tp.Decrease().Mul(s.An.Increase()),
	)
}

// Eigenstate returns |tp⟩|at⟩|an⟩ over Product(). Passing AutoAnode for an derives
// it as 2 - tp - electrons(at).
// Returns ErrInvalidLevel for levels (given or derived) outside their range.
func (s *AtomTransportAnode) Eigenstate(at, tp, an int) (*hilbert.Ket, error) {
	if an == AutoAnode {
		e, err := ElectronCount(at)
		if err != nil {
			return nil, subsystemErrorf("AtomTransportAnode.Eigenstate", err)
		}
		an = 2 - tp - e
	}
	if at < 0 || at >= AtomLevels || tp < 0 || tp >= BandLevels || an < 0 || an >= BandLevels {
		return nil, subsystemErrorf("AtomTransportAnode.Eigenstate",
			fmt.Errorf("%w: at=%d tp=%d an=%d", ErrInvalidLevel, at, tp, an))
	}

	return s.product.Basis(tp, at, an)
}
