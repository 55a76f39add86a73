// Package verifier confirms consistency of the selected solution and
// computes distributional outcomes.
//
// The market-clearing check substitutes the selected expressions into the
// supply-of-Y and aggregate-demand-for-Y identities and simplifies their
// difference. The success condition is an identically zero excess-demand
// expression in the endowment symbol; zero at a sample point is not enough.
// A non-zero residual signals a modeling error or an incomplete
// simplification; it is surfaced verbatim as a MarketNotClearing warning and
// welfare evaluation proceeds regardless.
//
// Welfare re-substitutes the solution into the income definitions, then into
// the demand functions, yielding closed-form allocations, Cobb-Douglas
// utilities, and the welfare ratio U_A / U_B, all as functions of the
// endowment alone.
package verifier
