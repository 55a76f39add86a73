package algebra

// Equation is a symbolic equality between two expressions.
type Equation struct {
	LHS, RHS Expr
}

// Eq returns the equation lhs = rhs.
func Eq(lhs, rhs Expr) Equation { return Equation{LHS: lhs, RHS: rhs} }

// Residual returns LHS - RHS.
func (e Equation) Residual() Expr { return Subtract(e.LHS, e.RHS) }

// Substitute applies a symbol substitution to both sides.
func (e Equation) Substitute(name string, v Expr) Equation {
	return Equation{LHS: e.LHS.Substitute(name, v), RHS: e.RHS.Substitute(name, v)}
}

func (e Equation) String() string { return e.LHS.String() + " = " + e.RHS.String() }
