package trace

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// Day floors a timestamp to UTC midnight.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyFlows groups the wallet's transfers by UTC calendar day. Inflow
// sums rows received from other addresses, outflow sums rows sent to
// other addresses; self-transfers (change) count on neither side. Net is
// inflow minus outflow and balance is the running sum of net starting
// from zero.
func DailyFlows(records []model.Transfer, wallet string) []model.DailyFlow {
	type flows struct {
		inflow  decimal.Decimal
		outflow decimal.Decimal
	}

	byDay := make(map[time.Time]*flows)
	for _, r := range records {
		if r.SelfTransfer(wallet) || (r.Sender != wallet && r.Recipient != wallet) {
			continue
		}
		day := Day(r.Timestamp)
		f, ok := byDay[day]
		if !ok {
			f = &flows{inflow: decimal.Zero, outflow: decimal.Zero}
			byDay[day] = f
		}
		switch {
		case r.Recipient == wallet && r.Sender != wallet:
			f.inflow = f.inflow.Add(r.Amount)
		case r.Sender == wallet && r.Recipient != wallet:
			f.outflow = f.outflow.Add(r.Amount)
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]model.DailyFlow, 0, len(days))
	balance := decimal.Zero
	for _, day := range days {
		f := byDay[day]
		net := f.inflow.Sub(f.outflow)
		balance = balance.Add(net)
		out = append(out, model.DailyFlow{
			Date:    day,
			Inflow:  f.inflow,
			Outflow: f.outflow,
			Net:     net,
			Balance: balance,
		})
	}

	return out
}
