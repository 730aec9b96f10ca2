// SPDX-License-Identifier: MIT

// Package hilbert is the small operator algebra the rest of the module is built on:
// finite basis spaces, symbolic sparse operators over any set of those spaces,
// ordered composite products with flat-index addressing, sparse kets, and export
// of operators to dense gonum matrices for numerical integration.
//
// What
//
//   - Space: one quantum degree of freedom with levels 0..n-1 and a name used only for labels.
//   - Operator: Σ cₖ · ⊗ |ket⟩⟨bra| over distinct spaces, identity on every space a term
//     does not mention. Operators are values; every method returns a new Operator.
//   - Product: an ordered list of spaces (first space most significant) that fixes the
//     flat basis index of composite states and the row/column order of exported matrices.
//   - Ket: sparse amplitudes over a Product. Density() forms |ψ⟩⟨ψ|.
//
// Algebra
//
//	a.Add(b)      a + b
//	a.Scale(c)    c · a
//	a.Adjoint()   a† (conjugated coefficients, ket/bra swapped)
//	a.Mul(b)      a·b: composes factors on shared spaces, tensors disjoint ones
//	Sum(...)      Σ
//	SumCt(...)    Σ + (Σ)†
//	Prod(...)     left-to-right Mul
//
// Determinism
//
//	Terms keep their first-appearance order through Add, Mul and Simplify; factors
//	inside a term are sorted by space creation order. Exported matrices and every
//	iteration over support indices are therefore reproducible.
//
// Errors
//
//   - ErrInvalidDimension    if a space is created with n <= 0.
//   - ErrLevelOutOfRange     for level or flat indices outside their space/product.
//   - ErrSpaceMismatch       if an operator or ket mentions a space the product lacks.
//   - ErrDuplicateSpace      if a product lists the same space twice.
//   - ErrNotHermitian        from ValidateHermitian.
//   - ErrEmptyState          for kets without a non-zero amplitude where one is required.
//
// Immutability
//
//	Spaces, operators, products and kets are never mutated after construction and
//	may be shared across goroutines without locking.
package hilbert
