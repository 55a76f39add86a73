package algebra

import (
	"fmt"
	"math"
)

// EvalAt numerically evaluates e with the given symbol bindings. It returns
// an error for unbound symbols and for forms with no real value, such as a
// fractional power of a negative base.
func EvalAt(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		f, _ := v.val.Float64()
		return f, nil
	case *Sym:
		val, ok := env[v.name]
		if !ok {
			return 0, fmt.Errorf("algebra: unbound symbol %q", v.name)
		}
		return val, nil
	case *Add:
		sum := 0.0
		for _, t := range v.terms {
			f, err := EvalAt(t, env)
			if err != nil {
				return 0, err
			}
			sum += f
		}
		return sum, nil
	case *Mul:
		prod := 1.0
		for _, f := range v.factors {
			x, err := EvalAt(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		base, err := EvalAt(v.base, env)
		if err != nil {
			return 0, err
		}
		exp, _ := v.exp.Float64()
		if base < 0 && !v.exp.IsInt() {
			return 0, fmt.Errorf("algebra: fractional power of negative base %v", base)
		}
		if base == 0 && exp < 0 {
			return 0, fmt.Errorf("algebra: zero to a negative power")
		}
		return math.Pow(base, exp), nil
	}
	return 0, fmt.Errorf("algebra: cannot evaluate %T", e)
}
