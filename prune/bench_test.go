package prune_test

import (
	"testing"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/prune"
)

// BenchmarkFromInitial_Exchange measures the closure of a long exchange chain
// between two N-level modes (N reachable states out of N²).
func BenchmarkFromInitial_Exchange(b *testing.B) {
	const N = 400
	x, _ := hilbert.NewSpace(N, "x")
	y, _ := hilbert.NewSpace(N, "y")
	p, _ := hilbert.NewProduct(x, y)
	ops := make([]hilbert.Operator, 0, N-1)
	for i := 0; i < N-1; i++ {
		ops = append(ops, x.Operator(i+1, i).Mul(y.Operator(N-2-i, N-1-i)))
	}
	gen := hilbert.SumCt(ops...)
	init, _ := p.Basis(0, N-1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := prune.FromInitial([]*hilbert.Ket{init}, []hilbert.Operator{gen}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPrune measures restricting the generator onto the retained set.
func BenchmarkPrune(b *testing.B) {
	const N = 200
	x, _ := hilbert.NewSpace(N, "x")
	y, _ := hilbert.NewSpace(N, "y")
	p, _ := hilbert.NewProduct(x, y)
	ops := make([]hilbert.Operator, 0, N-1)
	for i := 0; i < N-1; i++ {
		ops = append(ops, x.Operator(i+1, i).Mul(y.Operator(N-2-i, N-1-i)))
	}
	gen := hilbert.SumCt(ops...)
	init, _ := p.Basis(0, N-1)
	sp, err := prune.FromInitial([]*hilbert.Ket{init}, []hilbert.Operator{gen})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sp.Prune(gen); err != nil {
			b.Fatal(err)
		}
	}
}
