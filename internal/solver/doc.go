// Package solver submits the equilibrium system to the algebra engine and
// normalizes its answer for the rest of the pipeline.
//
// The engine is an external collaborator behind the Engine interface, so the
// pipeline stages are testable against a stub returning canned branches. The
// stage enforces the well-determinedness invariant (equation and unknown
// cardinality must match), applies the configured solve timeout, and turns an
// empty branch set into ErrNoSolutionFound: an economy with no closed-form
// equilibrium is a hard failure, and selection must not proceed.
//
// Example usage:
//
//	s, err := solver.New(algebra.NewEngine(), solver.Config{Timeout: time.Minute})
//	if err != nil {
//	    return err
//	}
//	branches, err := s.Solve(ctx, system)
//	if errors.Is(err, solver.ErrNoSolutionFound) {
//	    // the economy as specified has no closed-form equilibrium
//	}
package solver
