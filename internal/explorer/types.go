package explorer

import "time"

// Transaction is one accepted transaction as returned by the
// full-transactions-page endpoint with resolved previous outpoints.
type Transaction struct {
	TransactionID string   `json:"transaction_id"`
	BlockTime     int64    `json:"block_time"` // unix millis
	Inputs        []Input  `json:"inputs"`
	Outputs       []Output `json:"outputs"`
}

// Input is a transaction input with its previous outpoint resolved, so
// the spending address and amount are available directly.
type Input struct {
	PreviousOutpointAddress string `json:"previous_outpoint_address"`
	PreviousOutpointAmount  int64  `json:"previous_outpoint_amount"`
}

// Output is a transaction output.
type Output struct {
	ScriptPublicKeyAddress string `json:"script_public_key_address"`
	Amount                 int64  `json:"amount"` // sompi
}

// Time returns the block time as a UTC timestamp.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.BlockTime).UTC()
}
