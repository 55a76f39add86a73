// Package model builds the symbolic equation system of the two-firm,
// two-good, two-consumer production economy.
//
// The economy is fixed in shape:
//
//   - Firm Alpha produces good X with linear technology x = 2z under perfect
//     competition, so its zero-profit condition pins the price of X.
//   - Firm Beta produces good Y with decreasing returns y = sqrt(z); its
//     first-order condition equates marginal revenue product and input price,
//     and its profit is consumer B's income.
//   - Consumer A owns the input endowment k; consumer B owns firm Beta.
//   - Both consumers have Cobb-Douglas preferences with equal expenditure
//     shares, so each spends half of income on each good.
//   - The input price pz is the numeraire, substituted as the constant 1 at
//     construction time.
//
// Build is a pure function: it returns structurally identical equations and
// the same unknown ordering on every call, with no side effects. The income,
// demand, and supply identities are exported separately so the verification
// stage can re-substitute a solved allocation into exactly the definitions
// the equations were built from.
package model
