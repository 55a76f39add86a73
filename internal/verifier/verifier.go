package verifier

import (
	"context"
	"fmt"

	"github.com/econkit/walras/internal/logging"
	"github.com/econkit/walras/internal/model"
	"github.com/econkit/walras/pkg/algebra"
	"github.com/econkit/walras/pkg/core"
)

// Verifier derives the WelfareResult from a selected solution.
type Verifier struct{}

// New creates a Verifier.
func New() *Verifier { return &Verifier{} }

// Verify runs the market-clearing check and the welfare computation. The
// returned result is complete even when the clearing check fails; the
// failure rides along as a warning carrying the residual.
func (v *Verifier) Verify(ctx context.Context, sel core.SelectedSolution) (core.WelfareResult, []core.Warning, error) {
	logger := logging.FromContext(ctx)
	for name, e := range sel.Values() {
		if e == nil {
			return core.WelfareResult{}, nil, fmt.Errorf("selected solution has no expression for %s", name)
		}
	}

	k := algebra.NewSym(core.SymEndowment)

	// Incomes at the selected solution. Consumer B's income is firm
	// Beta's profit evaluated at the selected z_beta and py.
	incomeA := algebra.Expand(model.IncomeA(k))
	incomeB := algebra.Expand(model.BetaProfit(sel.Py, sel.ZBeta))

	// Walras' Law check on the Y market.
	supplyY := algebra.Expand(model.SupplyY(sel.ZBeta))
	demandY := algebra.Expand(algebra.Sum(
		model.DemandY(incomeA, sel.Py),
		model.DemandY(incomeB, sel.Py),
	))
	excess := algebra.Expand(algebra.Subtract(supplyY, demandY))

	var warnings []core.Warning
	if algebra.IsZero(excess) {
		logger.Info("market clearing verified", "market", "Y", "excessDemand", "0")
	} else {
		warnings = append(warnings, core.Warning{
			Kind:   core.WarnMarketNotClearing,
			Detail: fmt.Sprintf("excess demand for Y is %s, expected 0", excess),
		})
		logger.Info("market clearing check failed", "market", "Y", "residual", excess.String())
	}

	// Final allocations and utilities.
	xA := algebra.Expand(model.DemandX(incomeA, sel.Px))
	yA := algebra.Expand(model.DemandY(incomeA, sel.Py))
	xB := algebra.Expand(model.DemandX(incomeB, sel.Px))
	yB := algebra.Expand(model.DemandY(incomeB, sel.Py))

	utilityA := algebra.Expand(model.Utility(xA, yA))
	utilityB := algebra.Expand(model.Utility(xB, yB))
	ratio := algebra.Expand(algebra.Divide(utilityA, utilityB))

	logger.Info("welfare computed",
		"utilityA", utilityA.String(),
		"utilityB", utilityB.String(),
		"ratio", ratio.String())

	return core.WelfareResult{
		ExcessDemandY: excess,
		IncomeA:       incomeA,
		IncomeB:       incomeB,
		XA:            xA,
		YA:            yA,
		XB:            xB,
		YB:            yB,
		UtilityA:      utilityA,
		UtilityB:      utilityB,
		WelfareRatio:  ratio,
	}, warnings, nil
}
