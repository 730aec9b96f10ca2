// SPDX-License-Identifier: MIT

package lindblad

import (
	"fmt"
	"math"

	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"gonum.org/v1/gonum/mat"
)

// hermitianEps is the tolerance Validate applies to H.
const hermitianEps = 1e-9

// Jump is one dissipation channel: rate γ and jump operator L.
type Jump struct {
	Rate float64
	L    *mat.CDense
}

// Problem is a Lindblad problem on an n-dimensional space.
type Problem struct {
	H     *mat.CDense
	Jumps []Jump
	Hbar  float64
}

// Dim returns the dimension of H (0 for a nil H).
func (p Problem) Dim() int {
	if p.H == nil {
		return 0
	}
	n, _ := p.H.Dims()

	return n
}

// Validate checks shapes, rates, ħ and Hermiticity of H.
func (p Problem) Validate() error {
	if p.H == nil {
		return lindbladErrorf("Problem.Validate", fmt.Errorf("%w: nil Hamiltonian", ErrDimensionMismatch))
	}
	n, c := p.H.Dims()
	if n != c {
		return lindbladErrorf("Problem.Validate", fmt.Errorf("%w: H is %d×%d", ErrDimensionMismatch, n, c))
	}
	if math.IsNaN(p.Hbar) || math.IsInf(p.Hbar, 0) || p.Hbar <= 0 {
		return lindbladErrorf("Problem.Validate", fmt.Errorf("%w: %v", ErrInvalidHbar, p.Hbar))
	}
	for k, j := range p.Jumps {
		if math.IsNaN(j.Rate) || math.IsInf(j.Rate, 0) || j.Rate < 0 {
			return lindbladErrorf("Problem.Validate", fmt.Errorf("%w: jump %d rate %v", ErrNegativeRate, k, j.Rate))
		}
		if j.L == nil {
			return lindbladErrorf("Problem.Validate", fmt.Errorf("%w: jump %d is nil", ErrDimensionMismatch, k))
		}
		if r, c := j.L.Dims(); r != n || c != n {
			return lindbladErrorf("Problem.Validate", fmt.Errorf("%w: jump %d is %d×%d, want %d×%d", ErrDimensionMismatch, k, r, c, n, n))
		}
	}
	if err := hilbert.ValidateHermitianDense(p.H, hermitianEps); err != nil {
		return lindbladErrorf("Problem.Validate", err)
	}

	return nil
}
