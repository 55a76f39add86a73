package algebra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineSolve(t *testing.T) {
	x := NewSym("x")
	eqs := []Equation{Eq(Sum(x, NewInt(1)), NewInt(3))}

	t.Run("solves and strips conditions by default", func(t *testing.T) {
		branches, err := NewEngine().Solve(context.Background(), eqs, []string{"x"}, SolveOptions{})
		require.NoError(t, err)
		require.Len(t, branches, 1)
		assert.Equal(t, "2", branches[0].Values["x"].String())
		assert.Nil(t, branches[0].Conditions)
	})

	t.Run("keeps conditions on request", func(t *testing.T) {
		k := NewSym("k")
		z := NewSym("z")
		eqs := []Equation{
			Eq(x, Product(NewInt(2), Sqrt(z))),
			Eq(Product(NewRat(3, 4), Sqrt(z)), Product(NewRat(1, 4), k, PowRat(z, -1, 2))),
		}
		branches, err := NewEngine().Solve(context.Background(), eqs, []string{"x", "z"}, SolveOptions{WithConditions: true})
		require.NoError(t, err)
		require.Len(t, branches, 2)
		for _, b := range branches {
			require.Len(t, b.Conditions, 1)
			assert.True(t, Equal(b.Conditions[0].Expr, k))
		}
	})

	t.Run("rejects empty systems", func(t *testing.T) {
		_, err := NewEngine().Solve(context.Background(), nil, []string{"x"}, SolveOptions{})
		assert.Error(t, err)
	})

	t.Run("rejects malformed equations", func(t *testing.T) {
		_, err := NewEngine().Solve(context.Background(), []Equation{{LHS: x}}, []string{"x"}, SolveOptions{})
		assert.Error(t, err)
	})
}

func TestEngineIsAlwaysTrue(t *testing.T) {
	k := NewSym("k")
	e := NewEngine()
	pos := PositiveSymbols("k")

	assert.Equal(t, TruthTrue, e.IsAlwaysTrue(Product(NewInt(2), Sqrt(k)), pos))
	assert.Equal(t, TruthFalse, e.IsAlwaysTrue(Neg(Sqrt(k)), pos))
	assert.Equal(t, TruthUnknown, e.IsAlwaysTrue(Subtract(k, NewInt(1)), pos))
}

func TestEquation(t *testing.T) {
	x := NewSym("x")
	eq := Eq(Sum(x, NewInt(1)), NewInt(3))

	assert.Equal(t, "x + 1 = 3", eq.String())
	assert.Equal(t, "x - 2", Expand(eq.Residual()).String())

	bound := eq.Substitute("x", NewInt(2))
	assert.True(t, IsZero(bound.Residual()))
}
