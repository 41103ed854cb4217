package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SompiPerKAS is the number of sompi in one KAS.
const SompiPerKAS = 100_000_000

// Role classifies an address's side of a transfer.
type Role string

const (
	RoleSender    Role = "sender"
	RoleRecipient Role = "recipient"
)

// Transfer is a single sender→recipient attribution row derived from an
// on-chain transaction. A transaction with multiple inputs and outputs
// produces several transfers; their amounts sum to the transaction's
// output total.
type Transfer struct {
	TxID      string
	Timestamp time.Time // UTC
	Sender    string
	Recipient string
	Amount    decimal.Decimal // KAS
}

// SelfTransfer reports whether the row moves funds from wallet back to
// itself (change).
func (t Transfer) SelfTransfer(wallet string) bool {
	return t.Sender == wallet && t.Recipient == wallet
}

// KASFromSompi converts an integer sompi amount to an exact KAS decimal.
func KASFromSompi(sompi int64) decimal.Decimal {
	return decimal.NewFromInt(sompi).Shift(-8)
}
