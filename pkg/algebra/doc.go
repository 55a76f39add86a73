// Package algebra provides a small deterministic symbolic math kernel and an
// exact equation-system solver for the equilibrium pipeline.
//
// The kernel represents expressions as immutable trees of five node kinds:
//
//   - Num: exact rational constant (math/big.Rat)
//   - Sym: named symbolic variable
//   - Add: sum of terms
//   - Mul: product of factors
//   - Pow: base raised to a rational exponent
//
// Constructors always return canonical (simplified) expressions, so two
// expressions that are algebraically equal within the supported class compare
// equal structurally. Canonicalization combines like terms, merges same-base
// powers, evaluates rational arithmetic exactly, and normalizes numeric square
// roots to the form c*sqrt(f) with f a square-free integer.
//
// Example usage:
//
//	k := algebra.NewSym("k")
//	py := algebra.Product(algebra.NewRat(2, 3), algebra.Sqrt(algebra.NewInt(3)), algebra.Sqrt(k))
//	fmt.Println(py) // 2/3*sqrt(3)*sqrt(k)
//
//	branches, err := algebra.SolveSystem(ctx, residuals, []string{"px", "py"})
//
// Scope: the kernel targets the expression class produced by fixed-shape
// production economies: rational powers of positive symbols, numeric square
// roots, and their sums and products. It operates in the positive-reals regime:
// rules such as (a*b)^e = a^e * b^e and (b^p)^q = b^(p*q) are applied without
// branch tracking, which is sound when symbols denote positive quantities
// (prices, input uses, endowments). Forms outside the class are preserved
// unevaluated or rejected with an error, never silently mangled.
//
// The solver eliminates unknowns one equation at a time when a residual is
// affine in an unknown, and handles residuals quadratic in sqrt(u) by
// substituting t = sqrt(u) and solving the quadratic exactly. Every signed
// root produces its own solution branch, so systems that are quadratic-like in
// sign return all formal branches for the caller to filter.
package algebra
