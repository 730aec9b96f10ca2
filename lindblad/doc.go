// SPDX-License-Identifier: MIT

// Package lindblad integrates the Lindblad master equation
//
//	dρ/dt = -i/ħ [H, ρ] + Σₖ γₖ (Lₖ ρ Lₖ† - ½ {Lₖ†Lₖ, ρ})
//
// with a fixed-step explicit scheme (RK4 or Euler) on dense gonum matrices.
//
// The right-hand side is evaluated as
//
//	K  = -i/ħ · H - ½ Σ γₖ Lₖ†Lₖ      (precomputed once)
//	dρ = K ρ + ρ K† + Σ γₖ Lₖ ρ Lₖ†
//
// using cblas128.Gemm, so each evaluation costs O((2 + 2J) · n³) for J jumps.
//
// Evolve is a single blocking call. A StepFunc receives (t, ρ) at t0, whenever the
// log interval elapses and after the final step. A Recorder collects the diagonal
// probabilities of those samples without any shared state between runs.
//
// Errors
//
//   - ErrDimensionMismatch  H, a jump or ρ₀ have incompatible shapes.
//   - ErrNegativeRate       a jump rate is negative, NaN or infinite.
//   - ErrInvalidHbar        ħ is not finite and positive.
//   - ErrInvalidStep        dt <= 0 or span < 0 (or non-finite).
//   - ErrOptionViolation    an invalid Option was supplied.
package lindblad
