package model

import (
	"github.com/econkit/walras/pkg/algebra"
	"github.com/econkit/walras/pkg/core"
)

// numeraire is the input price pz, fixed to 1 at construction time so the
// system is always solved for exactly four unknowns.
func numeraire() algebra.Expr { return algebra.NewInt(1) }

// Build returns the equilibrium system: four equations over the unknowns
// [px, py, z_alpha, z_beta], with the endowment k left free.
func Build() core.EquationSystem {
	px := algebra.NewSym(core.SymPx)
	py := algebra.NewSym(core.SymPy)
	zAlpha := algebra.NewSym(core.SymZAlpha)
	zBeta := algebra.NewSym(core.SymZBeta)
	k := algebra.NewSym(core.SymEndowment)
	pz := numeraire()

	// Firm Alpha: x = 2z under perfect competition, zero profit.
	alphaZeroProfit := algebra.Eq(
		algebra.Product(algebra.NewInt(2), px),
		pz,
	)

	// Firm Beta: y = sqrt(z), stationarity of py*sqrt(z) - pz*z.
	betaFOC := algebra.Eq(
		algebra.Product(algebra.NewRat(1, 2), py, algebra.PowRat(zBeta, -1, 2)),
		pz,
	)

	// Input market: the endowment is fully used by the two firms.
	inputClearing := algebra.Eq(k, algebra.Sum(zAlpha, zBeta))

	// Goods market for Y: supply equals the consumers' aggregate demand.
	goodsYClearing := algebra.Eq(
		SupplyY(zBeta),
		algebra.Sum(
			DemandY(IncomeA(k), py),
			DemandY(BetaProfit(py, zBeta), py),
		),
	)

	return core.EquationSystem{
		Equations: []algebra.Equation{alphaZeroProfit, betaFOC, inputClearing, goodsYClearing},
		Unknowns:  core.Unknowns(),
	}
}

// BetaProfit is firm Beta's profit py*sqrt(z) - pz*z, retained symbolically
// as consumer B's income source.
func BetaProfit(py, z algebra.Expr) algebra.Expr {
	return algebra.Subtract(
		algebra.Product(py, algebra.Sqrt(z)),
		algebra.Product(numeraire(), z),
	)
}

// IncomeA is consumer A's income: the value of her input endowment.
func IncomeA(k algebra.Expr) algebra.Expr {
	return algebra.Product(k, numeraire())
}

// DemandX is Cobb-Douglas demand for good X at equal expenditure shares:
// half of income at the price of X.
func DemandX(income, px algebra.Expr) algebra.Expr {
	return algebra.Divide(algebra.Product(algebra.NewRat(1, 2), income), px)
}

// DemandY is Cobb-Douglas demand for good Y at equal expenditure shares.
func DemandY(income, py algebra.Expr) algebra.Expr {
	return algebra.Divide(algebra.Product(algebra.NewRat(1, 2), income), py)
}

// SupplyY is firm Beta's output sqrt(z).
func SupplyY(z algebra.Expr) algebra.Expr { return algebra.Sqrt(z) }

// SupplyX is firm Alpha's output 2z.
func SupplyX(z algebra.Expr) algebra.Expr {
	return algebra.Product(algebra.NewInt(2), z)
}

// Utility is the Cobb-Douglas utility x*y of one consumer's allocation.
func Utility(x, y algebra.Expr) algebra.Expr { return algebra.Product(x, y) }
