package trace

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// BySource aggregates inflows to wallet per counterparty sender,
// excluding self-transfers, sorted by total descending.
func BySource(records []model.Transfer, wallet string) []model.SourceSummary {
	return summarize(records, wallet, func(r model.Transfer) (string, bool) {
		if r.Recipient == wallet && r.Sender != wallet {
			return r.Sender, true
		}
		return "", false
	})
}

// ByDestination aggregates outflows from wallet per counterparty
// recipient, excluding self-transfers, sorted by total descending.
func ByDestination(records []model.Transfer, wallet string) []model.SourceSummary {
	return summarize(records, wallet, func(r model.Transfer) (string, bool) {
		if r.Sender == wallet && r.Recipient != wallet {
			return r.Recipient, true
		}
		return "", false
	})
}

func summarize(records []model.Transfer, wallet string, key func(model.Transfer) (string, bool)) []model.SourceSummary {
	type agg struct {
		summary model.SourceSummary
		txIDs   map[string]bool
	}

	byAddr := make(map[string]*agg)
	for _, r := range records {
		addr, ok := key(r)
		if !ok {
			continue
		}
		a, seen := byAddr[addr]
		if !seen {
			a = &agg{
				summary: model.SourceSummary{
					Address:   addr,
					Total:     decimal.Zero,
					FirstSeen: r.Timestamp,
					LastSeen:  r.Timestamp,
				},
				txIDs: make(map[string]bool),
			}
			byAddr[addr] = a
		}
		a.summary.Total = a.summary.Total.Add(r.Amount)
		a.txIDs[r.TxID] = true
		if r.Timestamp.Before(a.summary.FirstSeen) {
			a.summary.FirstSeen = r.Timestamp
		}
		if r.Timestamp.After(a.summary.LastSeen) {
			a.summary.LastSeen = r.Timestamp
		}
	}

	out := make([]model.SourceSummary, 0, len(byAddr))
	for _, a := range byAddr {
		a.summary.TxCount = len(a.txIDs)
		out = append(out, a.summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Address < out[j].Address
	})

	return out
}

// GroupByLabel collapses summaries into named buckets. The bucket
// function maps an address to its bucket name; summaries sharing a
// bucket merge (totals add, tx counts add, seen ranges widen). Results
// are sorted by total descending. Applying the same bucket function
// twice yields identical totals.
func GroupByLabel(summaries []model.SourceSummary, bucket func(addr string) string) []model.SourceSummary {
	byBucket := make(map[string]*model.SourceSummary)
	for _, s := range summaries {
		name := bucket(s.Address)
		g, ok := byBucket[name]
		if !ok {
			byBucket[name] = &model.SourceSummary{
				Address:   name,
				Label:     name,
				TxCount:   s.TxCount,
				Total:     s.Total,
				FirstSeen: s.FirstSeen,
				LastSeen:  s.LastSeen,
			}
			continue
		}
		g.Total = g.Total.Add(s.Total)
		g.TxCount += s.TxCount
		if s.FirstSeen.Before(g.FirstSeen) {
			g.FirstSeen = s.FirstSeen
		}
		if s.LastSeen.After(g.LastSeen) {
			g.LastSeen = s.LastSeen
		}
	}

	out := make([]model.SourceSummary, 0, len(byBucket))
	for _, g := range byBucket {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Address < out[j].Address
	})

	return out
}
