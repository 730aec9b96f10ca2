// SPDX-License-Identifier: MIT

// Package hilbert - Hermiticity validation and spectra.
//
// Purpose:
//   - Surface missing adjoint terms: a Hamiltonian must equal its adjoint within eps.
//   - Provide the energy spectrum of small (pruned) Hamiltonians through gonum's
//     real symmetric eigensolver.
//
// Both validators scan every (i,j) pair once in fixed column order and fail fast on
// the first violation.

package hilbert

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ValidateHermitian checks |A[i,j] - conj(A[j,i])| <= eps for the matrix of op in
// product p, without materializing a dense matrix.
// Returns ErrSpaceMismatch if p does not cover op, ErrNaNInf on a bad eps,
// ErrNotHermitian (with the offending entry) on violation.
// Complexity: O(D·T·F) time, O(nnz) memory.
func ValidateHermitian(p *Product, op Operator, eps float64) error {
	if err := checkEps(eps); err != nil {
		return hilbertErrorf("ValidateHermitian", err)
	}
	if err := p.Covers(op); err != nil {
		return hilbertErrorf("ValidateHermitian", err)
	}
	op = op.Simplify()
	cols := make([]map[int]complex128, p.dim)
	for j := 0; j < p.dim; j++ {
		col, err := p.Column(op, j)
		if err != nil {
			return hilbertErrorf("ValidateHermitian", err)
		}
		cols[j] = col
	}
	for j := 0; j < p.dim; j++ {
		rows := make([]int, 0, len(cols[j]))
		for i := range cols[j] {
			rows = append(rows, i)
		}
		sort.Ints(rows)
		for _, i := range rows {
			if d := cmplx.Abs(cols[j][i] - cmplx.Conj(cols[i][j])); d > eps {
				return hilbertErrorf("ValidateHermitian", fmt.Errorf("%w: |H[%d,%d]-conj(H[%d,%d])| = %g", ErrNotHermitian, i, j, j, i, d))
			}
		}
	}

	return nil
}

// ValidateHermitianDense is ValidateHermitian for an already dense square matrix.
func ValidateHermitianDense(m *mat.CDense, eps float64) error {
	if err := checkEps(eps); err != nil {
		return hilbertErrorf("ValidateHermitianDense", err)
	}
	r, c := m.Dims()
	if r != c {
		return hilbertErrorf("ValidateHermitianDense", ErrSpaceMismatch)
	}
	h := m.H()
	for j := 0; j < c; j++ {
		for i := 0; i <= j; i++ {
			if d := cmplx.Abs(m.At(i, j) - h.At(i, j)); d > eps {
				return hilbertErrorf("ValidateHermitianDense", fmt.Errorf("%w: entry (%d,%d) off by %g", ErrNotHermitian, i, j, d))
			}
		}
	}

	return nil
}

// Eigenvalues returns the ascending eigenvalues of a Hermitian matrix H = A + iB.
// It factorizes the real symmetric embedding [[A, -B], [B, A]], whose spectrum is the
// spectrum of H with every value doubled, and keeps one value of each pair.
// Complexity: O((2n)³).
func Eigenvalues(h *mat.CDense) ([]float64, error) {
	n, c := h.Dims()
	if n != c {
		return nil, hilbertErrorf("Eigenvalues", ErrSpaceMismatch)
	}
	s := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := h.At(i, j)
			s.SetSym(i, j, real(v))
			s.SetSym(n+i, n+j, real(v))
			s.SetSym(i, n+j, -imag(v))
			s.SetSym(j, n+i, imag(v))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(s, false); !ok {
		return nil, hilbertErrorf("Eigenvalues", ErrNoConvergence)
	}
	vals := es.Values(nil)
	out := make([]float64, n)
	for i := range out {
		out[i] = vals[2*i]
	}

	return out, nil
}

func checkEps(eps float64) error {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return fmt.Errorf("%w: eps=%v", ErrNaNInf, eps)
	}

	return nil
}
