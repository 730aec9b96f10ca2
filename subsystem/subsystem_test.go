package subsystem_test

import (
	"math"
	"testing"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/subsystem"
	"github.com/stretchr/testify/require"
)

// TestNewLadderInvalid checks construction-time failures.
func TestNewLadderInvalid(t *testing.T) {
	_, err := subsystem.NewCavity(0, 1, "c")
	require.ErrorIs(t, err, subsystem.ErrInvalidDimension) // n == 0

	_, err = subsystem.NewBand(-1, 1, "b")
	require.ErrorIs(t, err, subsystem.ErrInvalidDimension) // n < 0

	_, err = subsystem.NewCavity(3, math.NaN(), "c")
	require.ErrorIs(t, err, subsystem.ErrInvalidParameter) // NaN energy

	_, err = subsystem.NewAtom([4]float64{0, math.Inf(1), 0, 0}, "at")
	require.ErrorIs(t, err, subsystem.ErrInvalidParameter) // infinite potential
}

// TestCavitySpectrum verifies a 3-level cavity with energy 1 has levels {0,1,2}.
func TestCavitySpectrum(t *testing.T) {
	c, err := subsystem.NewCavity(3, 1.0, "c")
	require.NoError(t, err)
	require.Equal(t, subsystem.KindEnergy, c.Kind())

	p, err := hilbert.NewProduct(c.Space())
	require.NoError(t, err)
	m, err := p.Dense(c.Potential())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.Equal(t, complex(float64(i), 0), m.At(i, i)) // diagonal i·energy
	}
	vals, err := hilbert.Eigenvalues(m)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 1, 2}, vals, 1e-9)
}

// TestCavityLadderAction verifies |0⟩→|1⟩, |1⟩→√2|2⟩ and |2⟩→0.
func TestCavityLadderAction(t *testing.T) {
	c, err := subsystem.NewCavity(3, 1.0, "c")
	require.NoError(t, err)

	k0, _ := c.Eigenstate(0)
	k1, _ := c.Eigenstate(1)
	k2, _ := c.Eigenstate(2)

	out, err := k0.Apply(c.Increase())
	require.NoError(t, err)
	require.Equal(t, []int{1}, out.Support())
	require.InDelta(t, 1.0, real(out.Amplitude(1)), 1e-12)

	out, err = k1.Apply(c.Increase())
	require.NoError(t, err)
	require.Equal(t, []int{2}, out.Support())
	require.InDelta(t, math.Sqrt2, real(out.Amplitude(2)), 1e-12)

	out, err = k2.Apply(c.Increase())
	require.NoError(t, err)
	require.Zero(t, out.Len()) // truncated at the top level

	// down is the adjoint of up
	out, err = k2.Apply(c.Decrease())
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt2, real(out.Amplitude(1)), 1e-12)

	_, err = c.Eigenstate(3)
	require.ErrorIs(t, err, subsystem.ErrInvalidLevel)
}

// TestOrbit checks the 2-level special case.
func TestOrbit(t *testing.T) {
	o, err := subsystem.NewOrbit(-2.5, "o")
	require.NoError(t, err)
	require.Equal(t, 2, o.Dim())
	require.Equal(t, subsystem.KindPotential, o.Kind())

	p, _ := hilbert.NewProduct(o.Space())
	up, err := p.Dense(o.Increase())
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), up.At(1, 0))
	require.Equal(t, complex(0, 0), up.At(0, 1))

	pot, err := p.Dense(o.Potential())
	require.NoError(t, err)
	require.Equal(t, complex(-2.5, 0), pot.At(1, 1))
	require.Equal(t, complex(0, 0), pot.At(0, 0))
}

// TestAtomTransitionShape checks the three raw transition branches and that the
// 1↔2 branch leaves the band alone.
func TestAtomTransitionShape(t *testing.T) {
	at, err := subsystem.NewAtom(subsystem.DefaultAtomLevels(), "at")
	require.NoError(t, err)
	c01, _ := subsystem.NewCavity(3, 1, "c01")
	c12, _ := subsystem.NewCavity(3, 3, "c12")
	c23, _ := subsystem.NewCavity(2, 1, "c23")
	tp, _ := subsystem.NewBand(3, 0, "tp")
	p, err := hilbert.NewProduct(at.Space(), tp.Space(), c01.Space(), c12.Space(), c23.Space())
	require.NoError(t, err)

	tr := at.Transition(subsystem.Couplings{G01: 0.1, G12: 0.2, G23: 0.3}, c01, c12, c23, tp)

	// |1⟩ tp=0 c=000 --g12--> |2⟩ c12=1, band untouched
	src, _ := p.Basis(1, 0, 0, 0, 0)
	out, err := src.Apply(tr)
	require.NoError(t, err)
	dst, _ := p.Index(2, 0, 0, 1, 0)
	require.Equal(t, []int{dst}, out.Support())
	require.InDelta(t, 0.2, real(out.Amplitude(dst)), 1e-12)

	// |0⟩ needs a band quantum to climb
	src, _ = p.Basis(0, 0, 0, 0, 0)
	out, err = src.Apply(tr)
	require.NoError(t, err)
	require.Zero(t, out.Len())

	src, _ = p.Basis(2, 1, 0, 0, 0)
	out, err = src.Apply(tr)
	require.NoError(t, err)
	dst, _ = p.Index(3, 0, 0, 0, 1)
	require.Equal(t, []int{dst}, out.Support())
	require.InDelta(t, 0.3, real(out.Amplitude(dst)), 1e-12)

	// raw transition is not Hermitian, its Hermitian sum is
	require.ErrorIs(t, hilbert.ValidateHermitian(p, tr, 1e-9), hilbert.ErrNotHermitian)
	require.NoError(t, hilbert.ValidateHermitian(p, hilbert.SumCt(tr), 1e-9))
}

// TestElectrons checks the orbit occupation table.
func TestElectrons(t *testing.T) {
	cases := []struct {
		level int
		want  [2]int
		count int
	}{
		{0, [2]int{0, 0}, 0},
		{1, [2]int{0, 1}, 1},
		{2, [2]int{1, 0}, 1},
		{3, [2]int{1, 1}, 2},
	}
	for _, tc := range cases {
		got, err := subsystem.Electrons(tc.level)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
		n, err := subsystem.ElectronCount(tc.level)
		require.NoError(t, err)
		require.Equal(t, tc.count, n)
	}
	_, err := subsystem.Electrons(4)
	require.ErrorIs(t, err, subsystem.ErrInvalidLevel)
}

// TestAtomTransportAnodeEigenstate covers anode derivation and its range check.
func TestAtomTransportAnodeEigenstate(t *testing.T) {
	ata, err := subsystem.NewAtomTransportAnode(subsystem.DefaultAtomLevels(), -6)
	require.NoError(t, err)
	require.Equal(t, 4*3*3, ata.Product().Dim())

	k, err := ata.Eigenstate(3, 0, subsystem.AutoAnode) // an = 2-0-2 = 0
	require.NoError(t, err)
	want, _ := ata.Product().Index(0, 3, 0) // order (tp, at, an)
	require.Equal(t, []int{want}, k.Support())

	k, err = ata.Eigenstate(0, 0, subsystem.AutoAnode) // an = 2
	require.NoError(t, err)
	want, _ = ata.Product().Index(0, 0, 2)
	require.Equal(t, []int{want}, k.Support())

	_, err = ata.Eigenstate(3, 2, subsystem.AutoAnode) // an = -2
	require.ErrorIs(t, err, subsystem.ErrInvalidLevel)
}

// TestAtomTransportAnodeJumpsConserveElectrons walks every structural jump from every
// conserving state and checks the count stays at 2.
func TestAtomTransportAnodeJumpsConserveElectrons(t *testing.T) {
	ata, err := subsystem.NewAtomTransportAnode(subsystem.DefaultAtomLevels(), -6)
	require.NoError(t, err)
	p := ata.Product()
	gen := ata.ReachabilityGenerators()
	require.NoError(t, hilbert.ValidateHermitian(p, gen, 1e-12))

	for src := 0; src < p.Dim(); src++ {
		levels, _ := p.Levels(src)
		e, _ := subsystem.ElectronCount(levels[1])
		if levels[0]+e+levels[2] != 2 {
			continue
		}
		col, err := p.Column(gen, src)
		require.NoError(t, err)
		for dst := range col {
			l, _ := p.Levels(dst)
			e, _ := subsystem.ElectronCount(l[1])
			require.Equal(t, 2, l[0]+e+l[2], "jump %v -> %v", levels, l)
		}
	}
}
