package pipeline

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/econkit/walras/internal/logging"
	"github.com/econkit/walras/internal/model"
	"github.com/econkit/walras/internal/selector"
	"github.com/econkit/walras/internal/solver"
	"github.com/econkit/walras/internal/verifier"
	"github.com/econkit/walras/pkg/algebra"
	"github.com/econkit/walras/pkg/core"
)

// Options configures one pipeline run.
type Options struct {
	// SolverTimeout bounds the symbolic solve; zero means unbounded.
	SolverTimeout time.Duration

	// SampleEndowments and Tolerance parameterize the selector's numeric
	// fallback check; zero values take the selector defaults.
	SampleEndowments []float64
	Tolerance        float64
}

// Result is the pipeline's output contract: the selected solution and the
// welfare figures, plus any warnings raised along the way.
type Result struct {
	System   core.EquationSystem
	Branches []core.SolutionBranch
	Solution core.SelectedSolution
	Welfare  core.WelfareResult
	Warnings []core.Warning
}

// Pipeline wires the four stages around one algebra engine.
type Pipeline struct {
	solver   *solver.Solver
	selector *selector.Selector
	verifier *verifier.Verifier
}

// New assembles a pipeline around the given engine.
func New(engine solver.Engine, opts Options) (*Pipeline, error) {
	sol, err := solver.New(engine, solver.Config{Timeout: opts.SolverTimeout})
	if err != nil {
		return nil, fmt.Errorf("solver stage: %w", err)
	}
	sel, err := selector.New(engine, selector.Config{
		SampleEndowments: opts.SampleEndowments,
		Tolerance:        opts.Tolerance,
	})
	if err != nil {
		return nil, fmt.Errorf("selector stage: %w", err)
	}
	return &Pipeline{solver: sol, selector: sel, verifier: verifier.New()}, nil
}

// Run executes the full pipeline with the endowment left symbolic.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)

	sys := model.Build()
	logger.Info("model built", "equations", len(sys.Equations), "unknowns", sys.Unknowns)

	branches, err := p.solver.Solve(ctx, sys)
	if err != nil {
		return nil, err
	}

	sel, selWarnings, err := p.selector.Select(ctx, branches)
	if err != nil {
		return nil, err
	}

	welfare, verWarnings, err := p.verifier.Verify(ctx, sel)
	if err != nil {
		return nil, err
	}

	return &Result{
		System:   sys,
		Branches: branches,
		Solution: sel,
		Welfare:  welfare,
		Warnings: append(selWarnings, verWarnings...),
	}, nil
}

// BindEndowment returns a copy of the result with the endowment bound to the
// given rational value in every output expression. The symbolic result is
// left untouched; binding is a presentation-layer decision.
func (r *Result) BindEndowment(k *big.Rat) *Result {
	val := algebra.NewRatBig(k)
	bind := func(e algebra.Expr) algebra.Expr {
		if e == nil {
			return nil
		}
		return algebra.Expand(e.Substitute(core.SymEndowment, val))
	}
	out := *r
	out.Solution = core.SelectedSolution{
		BranchIndex: r.Solution.BranchIndex,
		Px:          bind(r.Solution.Px),
		Py:          bind(r.Solution.Py),
		ZAlpha:      bind(r.Solution.ZAlpha),
		ZBeta:       bind(r.Solution.ZBeta),
	}
	out.Welfare = core.WelfareResult{
		ExcessDemandY: bind(r.Welfare.ExcessDemandY),
		IncomeA:       bind(r.Welfare.IncomeA),
		IncomeB:       bind(r.Welfare.IncomeB),
		XA:            bind(r.Welfare.XA),
		YA:            bind(r.Welfare.YA),
		XB:            bind(r.Welfare.XB),
		YB:            bind(r.Welfare.YB),
		UtilityA:      bind(r.Welfare.UtilityA),
		UtilityB:      bind(r.Welfare.UtilityB),
		WelfareRatio:  bind(r.Welfare.WelfareRatio),
	}
	return &out
}
