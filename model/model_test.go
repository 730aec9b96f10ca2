package model_test

import (
	"math/cmplx"
	"sort"
	"testing"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/model"
	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/ZhengKeli/OpticalInterpretation/subsystem"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func chemical(t *testing.T) (*model.Chemical, *model.PrunedChemical) {
	t.Helper()
	c, err := model.NewChemical(model.DefaultChemicalParams())
	require.NoError(t, err)
	init, err := c.Initial(model.DefaultChemicalInitial())
	require.NoError(t, err)
	p, err := model.NewPrunedChemical(c, []*hilbert.Ket{init})
	require.NoError(t, err)

	return c, p
}

// TestBuilderErrors covers each validation stage of Build.
func TestBuilderErrors(t *testing.T) {
	s, err := hilbert.NewSpace(2, "s")
	require.NoError(t, err)
	other, err := hilbert.NewSpace(2, "other")
	require.NoError(t, err)
	p, err := hilbert.NewProduct(s)
	require.NoError(t, err)
	lower := s.Operator(0, 1)

	_, err = model.NewBuilder(1).AddPotential(lower).Build(p)
	require.ErrorIs(t, err, model.ErrNonHermitianHamiltonian) // coupling without its conjugate

	_, err = model.NewBuilder(1).AddDecay(-0.1, lower).Build(p)
	require.ErrorIs(t, err, model.ErrNegativeRate)

	_, err = model.NewBuilder(0).Build(p)
	require.ErrorIs(t, err, model.ErrInvalidHbar)

	_, err = model.NewBuilder(1).Build(nil)
	require.ErrorIs(t, err, model.ErrNilProduct)

	_, err = model.NewBuilder(1).AddCoupling(other.Operator(0, 1)).Build(p)
	require.ErrorIs(t, err, hilbert.ErrSpaceMismatch)

	_, err = model.NewBuilder(1).WithEpsilon(-1).Build(p)
	require.ErrorIs(t, err, hilbert.ErrNaNInf)
}

// TestBuilderCoupling checks that AddCoupling adds the conjugate and channels keep order.
func TestBuilderCoupling(t *testing.T) {
	s, _ := hilbert.NewSpace(2, "s")
	p, _ := hilbert.NewProduct(s)

	m, err := model.NewBuilder(1).
		AddPotential(s.Projector(1).Scale(2)).
		AddCoupling(s.Operator(1, 0).Scale(0.5i)).
		AddDecay(0.1, s.Operator(0, 1)).
		AddDecay(0, s.Projector(1)).
		Build(p)
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 0}, m.Gamma())
	require.Len(t, m.Deco(), 2)
	require.Len(t, m.Generators(), 3) // H, then each decay operator

	h, err := p.Dense(m.Hamiltonian())
	require.NoError(t, err)
	require.Equal(t, complex(2, 0), h.At(1, 1))
	require.Equal(t, complex(0, 0.5), h.At(1, 0))
	require.Equal(t, complex(0, -0.5), h.At(0, 1))

	eig, err := m.Spectrum()
	require.NoError(t, err)
	require.Len(t, eig, 2)
	require.InDelta(t, 2.0, eig[0]+eig[1], 1e-12) // trace
}

// TestChemicalModel checks Hermiticity and the channel layout of the full model.
func TestChemicalModel(t *testing.T) {
	c, p := chemical(t)
	require.Equal(t, 4*4*3*3*3*2, c.Dim())
	require.NoError(t, hilbert.ValidateHermitian(c.Product(), c.Hamiltonian(), 1e-9))
	require.Len(t, c.Gamma(), 3)
	require.Equal(t, len(c.Gamma()), len(c.Deco()))
	for _, g := range c.Gamma() {
		require.GreaterOrEqual(t, g, 0.0)
	}

	m := p.Model()
	require.NoError(t, hilbert.ValidateHermitian(m.Product(), m.Hamiltonian(), 1e-9))
	require.Equal(t, len(m.Gamma()), len(m.Deco()))
	require.Equal(t, c.Gamma(), m.Gamma())
	require.Equal(t, p.Space().Dim(), m.Dim())
}

// TestChemicalPruneOrder checks the first discovered states and the conservation
// laws every reachable state obeys.
func TestChemicalPruneOrder(t *testing.T) {
	c, p := chemical(t)
	space := p.Space()

	want := [][]int{
		{3, 0, 0, 0, 0, 1},
		{2, 0, 1, 0, 0, 0},
		{3, 0, 0, 0, 0, 0},
		{2, 1, 0, 1, 0, 0},
		{2, 2, 0, 1, 1, 0},
		{2, 1, 0, 0, 0, 0},
	}
	require.Equal(t, 14, space.Dim())
	for i, w := range want {
		got, err := c.Product().Levels(space.States()[i])
		require.NoError(t, err)
		require.Equal(t, w, got, "state %d", i)
	}

	electrons := []int{0, 1, 1, 2}
	for _, idx := range space.States() {
		l, err := c.Product().Levels(idx)
		require.NoError(t, err)
		at0, at1, tp := l[0], l[1], l[2]
		photons := l[3] + l[4] + l[5]
		require.Equal(t, 2, tp+electrons[at0]+electrons[at1], "levels %v", l)
		require.GreaterOrEqual(t, at0+at1-photons, 2, "levels %v", l)
	}
}

// TestChemicalPruneClosure compares the reachable set with a brute-force walk over
// the dense generators and checks that the pruned Hamiltonian is the restriction.
func TestChemicalPruneClosure(t *testing.T) {
	c, p := chemical(t)
	space := p.Space()

	var dense []*mat.CDense
	for _, g := range c.Generators() {
		d, err := c.Product().Dense(g)
		require.NoError(t, err)
		dense = append(dense, d)
	}
	init, _ := c.Initial(model.DefaultChemicalInitial())
	seen := map[int]bool{init.Support()[0]: true}
	queue := []int{init.Support()[0]}
	for len(queue) > 0 {
		src := queue[0]
		queue = queue[1:]
		for _, d := range dense {
			for dst := 0; dst < c.Dim(); dst++ {
				if d.At(dst, src) != 0 && !seen[dst] {
					seen[dst] = true
					queue = append(queue, dst)
				}
			}
		}
	}
	var brute []int
	for idx := range seen {
		brute = append(brute, idx)
	}
	sort.Ints(brute)
	got := space.States()
	sort.Ints(got)
	require.Equal(t, brute, got)

	require.NoError(t, space.CheckClosed(c.Generators()...))

	full, err := c.Product().Dense(c.Hamiltonian())
	require.NoError(t, err)
	small, err := p.Model().Product().Dense(p.Model().Hamiltonian())
	require.NoError(t, err)
	states := space.States()
	for i, si := range states {
		for j, sj := range states {
			require.InDelta(t, 0, cmplx.Abs(full.At(si, sj)-small.At(i, j)), 1e-12)
		}
	}
}

// TestChemicalLabels checks the rendering of the initial state.
func TestChemicalLabels(t *testing.T) {
	_, p := chemical(t)
	labels, err := p.Labels()
	require.NoError(t, err)
	require.Len(t, labels, p.Space().Dim())
	require.Equal(t, "|3⟩at0 |0⟩at1 |0⟩tp |001⟩ω01ω12ω23", labels[0])
	require.Equal(t, "|2⟩at0 |0⟩at1 |1⟩tp |000⟩ω01ω12ω23", labels[1])
}

// TestPruneModelMismatch rejects initial kets from another product.
func TestPruneModelMismatch(t *testing.T) {
	c, _ := chemical(t)
	s, _ := hilbert.NewSpace(2, "stray")
	k, _ := s.Eigenstate(0)

	_, err := model.PruneModel(c.Model, []*hilbert.Ket{k})
	require.ErrorIs(t, err, hilbert.ErrSpaceMismatch)
}

// TestPrunedATA checks the eight charge-conserving states of one bundle.
func TestPrunedATA(t *testing.T) {
	a, err := model.NewPrunedATA(subsystem.DefaultAtomLevels(), -6, "part")
	require.NoError(t, err)
	require.Equal(t, 8, a.Space().Dim())
	require.Equal(t, "part", a.Space().Factor().Name())

	electrons := []int{0, 1, 1, 2}
	org := a.Org().Product() // tp, at, an
	for _, idx := range a.Space().States() {
		l, err := org.Levels(idx)
		require.NoError(t, err)
		require.Equal(t, 2, l[0]+electrons[l[1]]+l[2], "levels %v", l)
	}

	k, err := a.Eigenstate(3, 0, subsystem.AutoAnode)
	require.NoError(t, err)
	require.Equal(t, 1, k.Len())

	back, err := a.Space().Restore(k)
	require.NoError(t, err)
	em, err := report.Decode(back)
	require.NoError(t, err)
	require.Equal(t, 3, em[a.Org().At.Space()])
	require.Equal(t, 0, em[a.Org().An.Space()])
}

// TestOptical checks the nested model: Hermiticity, the pruned initial state and the
// chained restore through both bundles.
func TestOptical(t *testing.T) {
	o, err := model.NewOptical(model.DefaultOpticalParams())
	require.NoError(t, err)
	require.Equal(t, 8*8*3*3*2*3, o.Dim())
	require.Len(t, o.Gamma(), 4)
	require.NoError(t, hilbert.ValidateHermitian(o.Product(), o.Hamiltonian(), 1e-9))

	init, err := o.Initial(model.DefaultOpticalInitial())
	require.NoError(t, err)
	p, err := model.NewPrunedOptical(o, []*hilbert.Ket{init})
	require.NoError(t, err)
	require.Less(t, p.Space().Dim(), o.Dim())
	require.NoError(t, hilbert.ValidateHermitian(p.Model().Product(), p.Model().Hamiltonian(), 1e-9))

	k, err := p.PruneKet(init)
	require.NoError(t, err)
	require.Equal(t, []int{0}, k.Support()) // seed is discovered first

	states, err := p.OrgEigenstates()
	require.NoError(t, err)
	require.Len(t, states, p.Space().Dim())
	require.Equal(t, 2*3+4, states[0].Product().Len()) // two bundles of three plus four cavities

	labels, err := p.Labels()
	require.NoError(t, err)
	require.Equal(t, "|30,0⟩at0tp0an0 |00,2⟩at1tp1an1 |001,0⟩ω01ω12ω23Ω", labels[0])
}
