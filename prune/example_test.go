package prune_test

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/prune"
)

// ExampleFromInitial prunes two coupled 3-level modes that exchange one quantum at a
// time. Starting from (0,2) only the three states with a+b = 2 are reachable out of 9.
func ExampleFromInitial() {
	a, _ := hilbert.NewSpace(3, "a")
	b, _ := hilbert.NewSpace(3, "b")
	p, _ := hilbert.NewProduct(a, b)

	exchange := hilbert.SumCt(
		a.Operator(1, 0).Mul(b.Operator(1, 2)),
		a.Operator(2, 1).Mul(b.Operator(0, 1)),
	)
	init, _ := p.Basis(0, 2)

	sp, err := prune.FromInitial([]*hilbert.Ket{init}, []hilbert.Operator{exchange})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for i, k := range sp.OrgEigenstates() {
		levels, _ := p.Levels(k.Support()[0])
		fmt.Println(i, levels)
	}
	// Output:
	// 0 [0 2]
	// 1 [1 1]
	// 2 [2 0]
}
