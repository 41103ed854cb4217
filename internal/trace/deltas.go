package trace

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// Deltas computes the wallet's net balance change per transaction from
// attribution rows. Transactions that leave the balance unchanged are
// dropped. The result is sorted by timestamp, then tx id for stability.
func Deltas(records []model.Transfer, wallet string) []model.TxDelta {
	byTx := make(map[string]*model.TxDelta)
	var order []string
	for _, r := range records {
		d, ok := byTx[r.TxID]
		if !ok {
			d = &model.TxDelta{TxID: r.TxID, Timestamp: r.Timestamp, Delta: decimal.Zero}
			byTx[r.TxID] = d
			order = append(order, r.TxID)
		}
		if r.Recipient == wallet {
			d.Delta = d.Delta.Add(r.Amount)
		}
		if r.Sender == wallet {
			d.Delta = d.Delta.Sub(r.Amount)
		}
	}

	var out []model.TxDelta
	for _, id := range order {
		d := byTx[id]
		if d.Delta.IsZero() {
			continue
		}
		out = append(out, *d)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].TxID < out[j].TxID
	})

	return out
}

// BalanceTotal sums all deltas; by convention the wallet starts from a
// zero balance, so this is the reconstructed final balance.
func BalanceTotal(deltas []model.TxDelta) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deltas {
		total = total.Add(d.Delta)
	}
	return total
}
