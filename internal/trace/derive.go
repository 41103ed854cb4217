package trace

import (
	"github.com/shopspring/decimal"

	"github.com/kasflow-dev/kasflow/internal/explorer"
	"github.com/kasflow-dev/kasflow/internal/model"
)

// Participants derives sender→recipient attribution rows from raw
// transactions. Each output amount is split across the transaction's
// input senders in proportion to their input contribution, so the rows
// for one transaction sum to its total output. Transactions with no
// inputs (coinbase) are skipped.
func Participants(txs []explorer.Transaction) []model.Transfer {
	var records []model.Transfer

	for _, tx := range txs {
		// Sum contribution per input sender.
		contributions := make(map[string]int64)
		var order []string
		totalInput := int64(0)
		for _, in := range tx.Inputs {
			if _, seen := contributions[in.PreviousOutpointAddress]; !seen {
				order = append(order, in.PreviousOutpointAddress)
			}
			contributions[in.PreviousOutpointAddress] += in.PreviousOutpointAmount
			totalInput += in.PreviousOutpointAmount
		}
		if totalInput == 0 {
			continue
		}

		total := decimal.NewFromInt(totalInput)
		ts := tx.Time()

		for _, out := range tx.Outputs {
			amount := model.KASFromSompi(out.Amount)
			for _, sender := range order {
				weight := decimal.NewFromInt(contributions[sender]).Div(total)
				records = append(records, model.Transfer{
					TxID:      tx.TransactionID,
					Timestamp: ts,
					Sender:    sender,
					Recipient: out.ScriptPublicKeyAddress,
					Amount:    amount.Mul(weight),
				})
			}
		}
	}

	return records
}

// Involving filters attribution rows to those where wallet is the sender
// or the recipient.
func Involving(records []model.Transfer, wallet string) []model.Transfer {
	var out []model.Transfer
	for _, r := range records {
		if r.Sender == wallet || r.Recipient == wallet {
			out = append(out, r)
		}
	}
	return out
}
