package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/econkit/walras/internal/logging"
	"github.com/econkit/walras/pkg/algebra"
	"github.com/econkit/walras/pkg/core"
)

var (
	// ErrNoSolutionFound means the algebra engine returned zero branches.
	// Fatal: the pipeline must not proceed to selection.
	ErrNoSolutionFound = errors.New("no solution branch found")

	// ErrSolverTimeout means symbolic solving exceeded the configured
	// timeout.
	ErrSolverTimeout = errors.New("symbolic solve timed out")
)

// Engine is the contract with the external algebra engine: solve a system
// for all branches with side conditions, and decide positivity of an
// expression under assumptions.
type Engine interface {
	Solve(ctx context.Context, eqs []algebra.Equation, unknowns []string, opts algebra.SolveOptions) ([]algebra.Branch, error)
	IsAlwaysTrue(expr algebra.Expr, assumptions algebra.Assumptions) algebra.Truth
}

// Config holds solver stage settings.
type Config struct {
	// Timeout bounds one symbolic solve; zero means unbounded.
	Timeout time.Duration
}

// Solver runs the equilibrium system through the engine.
type Solver struct {
	engine Engine
	config Config
}

// New creates a Solver around the given engine.
func New(engine Engine, config Config) (*Solver, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if config.Timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative, got %v", config.Timeout)
	}
	return &Solver{engine: engine, config: config}, nil
}

// Solve submits the system and returns every solution branch in engine
// enumeration order. Engine-side failures on malformed input are fatal
// configuration errors and are never swallowed.
func (s *Solver) Solve(ctx context.Context, sys core.EquationSystem) ([]core.SolutionBranch, error) {
	logger := logging.FromContext(ctx)

	if !sys.WellDetermined() {
		return nil, fmt.Errorf("system is not well-determined: %d equations, %d unknowns",
			len(sys.Equations), len(sys.Unknowns))
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	branches, err := s.engine.Solve(ctx, sys.Equations, sys.Unknowns, algebra.SolveOptions{WithConditions: true})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrSolverTimeout, s.config.Timeout)
		}
		return nil, fmt.Errorf("algebra engine: %w", err)
	}
	if len(branches) == 0 {
		return nil, ErrNoSolutionFound
	}

	out := make([]core.SolutionBranch, len(branches))
	for i, b := range branches {
		for _, u := range sys.Unknowns {
			if b.Values[u] == nil {
				return nil, fmt.Errorf("engine branch %d has no expression for %s", i, u)
			}
		}
		out[i] = core.SolutionBranch{Index: i, Values: b.Values, Conditions: b.Conditions}
	}
	logger.Info("symbolic solve complete", "branches", len(out))
	return out, nil
}
