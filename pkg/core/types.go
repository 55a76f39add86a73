package core

import (
	"fmt"

	"github.com/econkit/walras/pkg/algebra"
)

// Symbol names fixed by the economy's shape. The input price pz is the
// numeraire and is substituted as the constant 1 at construction time, so it
// never appears as an unknown.
const (
	SymPx        = "px"      // price of good X, positive real
	SymPy        = "py"      // price of good Y, positive real
	SymZAlpha    = "z_alpha" // input used by firm Alpha, positive real
	SymZBeta     = "z_beta"  // input used by firm Beta, positive real
	SymEndowment = "k"       // input endowment, positive real, exogenous
)

// Unknowns is the ordered unknown list of the equilibrium system.
func Unknowns() []string {
	return []string{SymPx, SymPy, SymZAlpha, SymZBeta}
}

// EquationSystem is the simultaneous system handed to the algebra engine:
// the fixed equation list and the ordered unknowns. A well-determined system
// has matching cardinality on both.
type EquationSystem struct {
	Equations []algebra.Equation
	Unknowns  []string
}

// WellDetermined reports whether the system has as many equations as
// unknowns.
func (s EquationSystem) WellDetermined() bool {
	return len(s.Equations) > 0 && len(s.Equations) == len(s.Unknowns)
}

// SolutionBranch is one formal solution of the system: an expression in the
// endowment symbol for every unknown, plus the side conditions under which
// the branch is valid.
type SolutionBranch struct {
	Index      int
	Values     map[string]algebra.Expr
	Conditions []algebra.Condition
}

// Value returns the branch expression for the named unknown, or nil.
func (b SolutionBranch) Value(name string) algebra.Expr { return b.Values[name] }

// SelectedSolution is the branch chosen as economically canonical. It
// carries the same four expressions under their domain names.
type SelectedSolution struct {
	BranchIndex int
	Px          algebra.Expr
	Py          algebra.Expr
	ZAlpha      algebra.Expr
	ZBeta       algebra.Expr
}

// Values returns the selected expressions keyed by unknown name.
func (s SelectedSolution) Values() map[string]algebra.Expr {
	return map[string]algebra.Expr{
		SymPx:     s.Px,
		SymPy:     s.Py,
		SymZAlpha: s.ZAlpha,
		SymZBeta:  s.ZBeta,
	}
}

// WelfareResult holds the verification residual and the distributional
// outcome at the selected solution, all as closed forms in the endowment
// symbol (or numeric values if the endowment was bound beforehand).
type WelfareResult struct {
	// ExcessDemandY is supply minus demand for good Y at the selected
	// solution; identically zero at a true equilibrium.
	ExcessDemandY algebra.Expr

	IncomeA algebra.Expr
	IncomeB algebra.Expr

	// Final allocations per consumer and good.
	XA, YA algebra.Expr
	XB, YB algebra.Expr

	UtilityA algebra.Expr
	UtilityB algebra.Expr

	// WelfareRatio is UtilityA / UtilityB in closed form.
	WelfareRatio algebra.Expr
}

// WarningKind names a non-fatal pipeline finding.
type WarningKind string

const (
	// WarnAmbiguousPositivity: no branch was provably positive in py, so
	// the first branch was selected by fallback.
	WarnAmbiguousPositivity WarningKind = "AmbiguousPositivity"

	// WarnMarketNotClearing: the excess-demand expression did not
	// simplify to zero; the residual is kept for inspection.
	WarnMarketNotClearing WarningKind = "MarketNotClearing"
)

// Warning is a non-fatal finding attached to an otherwise complete output.
type Warning struct {
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Kind, w.Detail) }
