package model_test

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/model"
)

// ExampleNewPrunedChemical builds the chemical model, prunes it from the default
// initial state and prints the first discovered states.
func ExampleNewPrunedChemical() {
	c, err := model.NewChemical(model.DefaultChemicalParams())
	if err != nil {
		fmt.Println(err)
		return
	}
	init, _ := c.Initial(model.DefaultChemicalInitial())
	p, err := model.NewPrunedChemical(c, []*hilbert.Ket{init})
	if err != nil {
		fmt.Println(err)
		return
	}
	labels, _ := p.Labels()

	fmt.Println("full dimension:", c.Dim())
	fmt.Println("pruned dimension:", p.Space().Dim())
	for _, l := range labels[:3] {
		fmt.Println(l)
	}
	// Output:
	// full dimension: 864
	// pruned dimension: 14
	// |3⟩at0 |0⟩at1 |0⟩tp |001⟩ω01ω12ω23
	// |2⟩at0 |0⟩at1 |1⟩tp |000⟩ω01ω12ω23
	// |3⟩at0 |0⟩at1 |0⟩tp |000⟩ω01ω12ω23
}
