package selector

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/econkit/walras/internal/logging"
	"github.com/econkit/walras/internal/solver"
	"github.com/econkit/walras/pkg/algebra"
	"github.com/econkit/walras/pkg/core"
)

// ErrInadmissibleFallback means the ambiguous-positivity fallback branch
// evaluated to non-positive prices or quantities at a sample endowment.
var ErrInadmissibleFallback = errors.New("fallback branch is numerically inadmissible")

// DefaultSampleEndowments are the endowment values at which a fallback
// branch is numerically sanity-checked.
var DefaultSampleEndowments = []float64{1, 4, 9}

// Config holds selector settings.
type Config struct {
	// SampleEndowments are positive k values for the fallback check.
	// Empty means DefaultSampleEndowments.
	SampleEndowments []float64

	// Tolerance is the positivity margin for the numeric check.
	Tolerance float64
}

// Selector filters solution branches down to the admissible one.
type Selector struct {
	engine solver.Engine
	config Config
}

// New creates a Selector using the engine's truth predicate.
func New(engine solver.Engine, config Config) (*Selector, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if len(config.SampleEndowments) == 0 {
		config.SampleEndowments = DefaultSampleEndowments
	}
	for _, k := range config.SampleEndowments {
		if k <= 0 {
			return nil, fmt.Errorf("sample endowments must be positive, got %v", k)
		}
	}
	if config.Tolerance < 0 {
		return nil, fmt.Errorf("tolerance cannot be negative, got %v", config.Tolerance)
	}
	if config.Tolerance == 0 {
		config.Tolerance = 1e-9
	}
	return &Selector{engine: engine, config: config}, nil
}

// Select picks the first branch whose price of Y is provably positive given
// a positive endowment, breaking ties on the remaining unknowns. With no
// provably positive branch it falls back to the first branch, warning, and
// sanity-checks it numerically.
func (s *Selector) Select(ctx context.Context, branches []core.SolutionBranch) (core.SelectedSolution, []core.Warning, error) {
	logger := logging.FromContext(ctx)
	if len(branches) == 0 {
		return core.SelectedSolution{}, nil, fmt.Errorf("no branches to select from")
	}

	assume := algebra.PositiveSymbols(core.SymEndowment)

	var admissible []core.SolutionBranch
	for _, b := range branches {
		if s.engine.IsAlwaysTrue(b.Value(core.SymPy), assume) == algebra.TruthTrue {
			admissible = append(admissible, b)
		}
	}

	switch len(admissible) {
	case 0:
		// Deliberate fallback: inconclusive positivity must not halt the
		// pipeline, but it must never pass silently either.
		chosen := branches[0]
		warning := core.Warning{
			Kind:   core.WarnAmbiguousPositivity,
			Detail: fmt.Sprintf("no branch provably positive in %s; falling back to branch %d", core.SymPy, chosen.Index),
		}
		logger.Info("positivity undecidable for every branch, using fallback",
			"branch", chosen.Index, "samples", s.config.SampleEndowments)
		if err := s.sanityCheck(chosen); err != nil {
			return core.SelectedSolution{}, nil, err
		}
		sel, err := asSelected(chosen)
		if err != nil {
			return core.SelectedSolution{}, nil, err
		}
		return sel, []core.Warning{warning}, nil
	case 1:
		sel, err := asSelected(admissible[0])
		if err != nil {
			return core.SelectedSolution{}, nil, err
		}
		logger.Info("selected admissible branch", "branch", admissible[0].Index,
			"py", sel.Py.String())
		return sel, nil, nil
	}

	// Several branches pass the py check; require the remaining unknowns
	// positive as well, keeping enumeration order.
	for _, b := range admissible {
		allPositive := true
		for _, name := range []string{core.SymPx, core.SymZAlpha, core.SymZBeta} {
			if s.engine.IsAlwaysTrue(b.Value(name), assume) != algebra.TruthTrue {
				allPositive = false
				break
			}
		}
		if allPositive {
			sel, err := asSelected(b)
			if err != nil {
				return core.SelectedSolution{}, nil, err
			}
			logger.Info("selected fully positive branch", "branch", b.Index)
			return sel, nil, nil
		}
	}
	sel, err := asSelected(admissible[0])
	if err != nil {
		return core.SelectedSolution{}, nil, err
	}
	logger.Info("selected first py-positive branch", "branch", admissible[0].Index)
	return sel, nil, nil
}

// sanityCheck evaluates the branch at the sample endowments and rejects it
// if any price or quantity is not strictly positive.
func (s *Selector) sanityCheck(b core.SolutionBranch) error {
	vals := make([]float64, 0, 4)
	for _, k := range s.config.SampleEndowments {
		env := map[string]float64{core.SymEndowment: k}
		vals = vals[:0]
		for _, name := range core.Unknowns() {
			v, err := algebra.EvalAt(b.Value(name), env)
			if err != nil {
				return fmt.Errorf("%w: %s at k=%v: %v", ErrInadmissibleFallback, name, k, err)
			}
			vals = append(vals, v)
		}
		if floats.Min(vals) <= s.config.Tolerance {
			return fmt.Errorf("%w: min value %v at k=%v", ErrInadmissibleFallback, floats.Min(vals), k)
		}
	}
	return nil
}

func asSelected(b core.SolutionBranch) (core.SelectedSolution, error) {
	for _, name := range core.Unknowns() {
		if b.Value(name) == nil {
			return core.SelectedSolution{}, fmt.Errorf("branch %d has no expression for %s", b.Index, name)
		}
	}
	return core.SelectedSolution{
		BranchIndex: b.Index,
		Px:          b.Value(core.SymPx),
		Py:          b.Value(core.SymPy),
		ZAlpha:      b.Value(core.SymZAlpha),
		ZBeta:       b.Value(core.SymZBeta),
	}, nil
}
