// Package pipeline orchestrates the equilibrium computation.
//
// The pipeline follows a strict forward dataflow:
//
//	Model Builder → Equilibrium Solver → Solution Selector → Verifier
//	   (model)          (solver)            (selector)       (verifier)
//
// Each stage returns a new immutable value consumed by the next; no stage
// mutates shared state, so there is nothing to lock and every stage is
// testable on its own. The pipeline is fully sequential: the system is
// small and solved in one engine call, so there are no independent sub-tasks
// to run concurrently.
//
// Fatal errors (no solution branch, solver timeout, malformed input) abort
// the run with no partial result. Warnings (ambiguous positivity, market not
// clearing) are aggregated onto the complete result so the caller decides
// how to present them; they are never swallowed. There is no retry:
// symbolic solving is deterministic, so retrying an unchanged model would be
// futile.
package pipeline
