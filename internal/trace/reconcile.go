package trace

import (
	"github.com/shopspring/decimal"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// ReconcileTolerance is the largest balance discrepancy (in KAS)
// attributable to rounding in the proportional input attribution.
var ReconcileTolerance = decimal.RequireFromString("0.000001")

// Reconcile compares the final balance of the daily aggregate against
// the balance reconstructed from the full participants set. A mismatch
// beyond the tolerance is a data-quality signal, not an error; the
// caller decides how to report it.
func Reconcile(daily []model.DailyFlow, participants []model.Transfer, wallet string) (dailyBalance, reconstructed decimal.Decimal, ok bool) {
	dailyBalance = decimal.Zero
	if len(daily) > 0 {
		dailyBalance = daily[len(daily)-1].Balance
	}

	reconstructed = BalanceTotal(Deltas(participants, wallet))

	diff := dailyBalance.Sub(reconstructed).Abs()
	return dailyBalance, reconstructed, diff.LessThanOrEqual(ReconcileTolerance)
}
