package algebra

import (
	"context"
	"fmt"
)

// SolveOptions controls what the engine returns alongside solution branches.
type SolveOptions struct {
	// WithConditions requests the side conditions under which each branch
	// is valid. Without it branches carry values only.
	WithConditions bool
}

// Engine exposes the kernel through the solver-facing contract: solve a
// system for all branches, and decide positivity of an expression under
// assumptions. It is stateless and safe for sequential reuse.
type Engine struct{}

// NewEngine returns the exact symbolic engine.
func NewEngine() *Engine { return &Engine{} }

// Solve returns every formal solution branch of the equation system, in
// deterministic enumeration order. An empty result means the system has no
// solution within the supported class; it is not an error at this level.
func (e *Engine) Solve(ctx context.Context, eqs []Equation, unknowns []string, opts SolveOptions) ([]Branch, error) {
	if len(eqs) == 0 || len(unknowns) == 0 {
		return nil, fmt.Errorf("algebra: empty system (%d equations, %d unknowns)", len(eqs), len(unknowns))
	}
	residuals := make([]Expr, len(eqs))
	for i, eq := range eqs {
		if eq.LHS == nil || eq.RHS == nil {
			return nil, fmt.Errorf("algebra: equation %d is malformed", i)
		}
		residuals[i] = eq.Residual()
	}
	branches, err := SolveSystem(ctx, residuals, unknowns)
	if err != nil {
		return nil, err
	}
	if !opts.WithConditions {
		for i := range branches {
			branches[i].Conditions = nil
		}
	}
	return branches, nil
}

// IsAlwaysTrue decides whether expr > 0 holds for all values of the
// assumed-positive symbols.
func (e *Engine) IsAlwaysTrue(expr Expr, assumptions Assumptions) Truth {
	return assumptions.ProvePositive(Expand(expr))
}
