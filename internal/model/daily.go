package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyFlow is one row of the per-day aggregate for the tracked wallet.
// Net is always Inflow minus Outflow; Balance is the running sum of Net
// starting from zero on the first day.
type DailyFlow struct {
	Date    time.Time // UTC midnight
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Net     decimal.Decimal
	Balance decimal.Decimal
}

// SourceSummary aggregates transfers for one counterparty address (an
// inflow source or outflow destination, depending on direction).
type SourceSummary struct {
	Address   string
	Label     string // empty when no label is known
	TxCount   int    // distinct transactions
	Total     decimal.Decimal
	FirstSeen time.Time
	LastSeen  time.Time
}

// TxDelta is the net balance change of the tracked wallet in one
// transaction.
type TxDelta struct {
	TxID      string
	Timestamp time.Time
	Delta     decimal.Decimal // positive = net inflow
}
