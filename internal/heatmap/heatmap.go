// Package heatmap builds weekday×hour grids of incoming transfers for
// timing analysis.
package heatmap

import (
	"sort"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// Weekdays in grid row order (row 0 = Monday).
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Grid is a 7×24 weekday-by-hour matrix. Row 0 is Monday, column 0 is
// 00:00 UTC.
type Grid [7][24]float64

// Cell identifies one grid cell and its value.
type Cell struct {
	Weekday int // 0 = Monday
	Hour    int
	Value   float64
}

// Build computes count and amount grids over transfers received by
// wallet (self-transfers excluded).
func Build(records []model.Transfer, wallet string) (count, amount Grid) {
	for _, r := range records {
		if r.Recipient != wallet || r.Sender == wallet {
			continue
		}
		ts := r.Timestamp.UTC()
		// time.Weekday is Sunday-based; shift so Monday is row 0.
		wd := (int(ts.Weekday()) + 6) % 7
		hr := ts.Hour()
		count[wd][hr]++
		amount[wd][hr] += r.Amount.InexactFloat64()
	}
	return count, amount
}

// TopCells returns the k highest-valued cells in descending order.
func TopCells(g Grid, k int) []Cell {
	cells := make([]Cell, 0, 7*24)
	for wd := range g {
		for hr := range g[wd] {
			cells = append(cells, Cell{Weekday: wd, Hour: hr, Value: g[wd][hr]})
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Value != cells[j].Value {
			return cells[i].Value > cells[j].Value
		}
		if cells[i].Weekday != cells[j].Weekday {
			return cells[i].Weekday < cells[j].Weekday
		}
		return cells[i].Hour < cells[j].Hour
	})
	if k > len(cells) {
		k = len(cells)
	}
	return cells[:k]
}
