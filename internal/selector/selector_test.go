package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econkit/walras/pkg/algebra"
	"github.com/econkit/walras/pkg/core"
)

// truthEngine answers positivity queries by evaluating with a fixed table and
// never solves.
type truthEngine struct {
	answer func(algebra.Expr) algebra.Truth
}

func (e *truthEngine) Solve(context.Context, []algebra.Equation, []string, algebra.SolveOptions) ([]algebra.Branch, error) {
	return nil, nil
}

func (e *truthEngine) IsAlwaysTrue(expr algebra.Expr, _ algebra.Assumptions) algebra.Truth {
	return e.answer(expr)
}

func alwaysUnknown() *truthEngine {
	return &truthEngine{answer: func(algebra.Expr) algebra.Truth { return algebra.TruthUnknown }}
}

func branchAt(index int, values map[string]algebra.Expr) core.SolutionBranch {
	return core.SolutionBranch{Index: index, Values: values}
}

func equilibriumBranches() []core.SolutionBranch {
	k := algebra.NewSym(core.SymEndowment)
	py := algebra.Product(algebra.NewRat(2, 3), algebra.Sqrt(algebra.NewInt(3)), algebra.Sqrt(k))
	base := func(py algebra.Expr) map[string]algebra.Expr {
		return map[string]algebra.Expr{
			core.SymPx:     algebra.NewRat(1, 2),
			core.SymPy:     py,
			core.SymZAlpha: algebra.Product(algebra.NewRat(2, 3), k),
			core.SymZBeta:  algebra.Product(algebra.NewRat(1, 3), k),
		}
	}
	return []core.SolutionBranch{
		branchAt(0, base(py)),
		branchAt(1, base(algebra.Neg(py))),
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil, Config{})
	assert.Error(t, err)

	_, err = New(alwaysUnknown(), Config{SampleEndowments: []float64{1, -4}})
	assert.Error(t, err)

	_, err = New(alwaysUnknown(), Config{Tolerance: -1})
	assert.Error(t, err)

	s, err := New(alwaysUnknown(), Config{})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestSelectAdmissibleBranch(t *testing.T) {
	s, err := New(algebra.NewEngine(), Config{})
	require.NoError(t, err)

	sel, warnings, err := s.Select(context.Background(), equilibriumBranches())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 0, sel.BranchIndex)
	assert.Equal(t, "2/3*sqrt(3)*sqrt(k)", sel.Py.String())
}

func TestSelectNoBranches(t *testing.T) {
	s, err := New(alwaysUnknown(), Config{})
	require.NoError(t, err)

	_, _, err = s.Select(context.Background(), nil)
	assert.Error(t, err)
}

func TestSelectAmbiguousFallback(t *testing.T) {
	s, err := New(alwaysUnknown(), Config{})
	require.NoError(t, err)

	sel, warnings, err := s.Select(context.Background(), equilibriumBranches())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, core.WarnAmbiguousPositivity, warnings[0].Kind)
	assert.Contains(t, warnings[0].Detail, "branch 0")
	assert.Equal(t, 0, sel.BranchIndex)
}

func TestSelectFallbackRejectsNegativeBranch(t *testing.T) {
	s, err := New(alwaysUnknown(), Config{})
	require.NoError(t, err)

	// Put the negative root first so the fallback lands on it.
	branches := equilibriumBranches()
	branches[0], branches[1] = branches[1], branches[0]
	branches[0].Index, branches[1].Index = 0, 1

	_, _, err = s.Select(context.Background(), branches)
	assert.ErrorIs(t, err, ErrInadmissibleFallback)
}

func TestSelectTieBreakOnRemainingUnknowns(t *testing.T) {
	// Both branches pass the py test; only the second is positive throughout.
	branches := equilibriumBranches()
	branches[0].Values[core.SymZAlpha] = algebra.Neg(algebra.NewSym(core.SymEndowment))
	branches[1].Values[core.SymPy] = branches[0].Values[core.SymPy]

	s, err := New(algebra.NewEngine(), Config{})
	require.NoError(t, err)

	sel, warnings, err := s.Select(context.Background(), branches)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, sel.BranchIndex)
}

func TestSelectIncompleteBranch(t *testing.T) {
	branches := equilibriumBranches()[:1]
	delete(branches[0].Values, core.SymZBeta)

	s, err := New(algebra.NewEngine(), Config{})
	require.NoError(t, err)

	_, _, err = s.Select(context.Background(), branches)
	assert.Error(t, err)
}
