package heatmap

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasflow-dev/kasflow/internal/model"
)

const wallet = "kaspa:qwallet"

func transfer(ts time.Time, sender, recipient, amount string) model.Transfer {
	return model.Transfer{
		TxID:      "tx",
		Timestamp: ts,
		Sender:    sender,
		Recipient: recipient,
		Amount:    decimal.RequireFromString(amount),
	}
}

func TestBuild(t *testing.T) {
	// 2024-03-04 is a Monday.
	monday9 := time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)
	sunday23 := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)

	records := []model.Transfer{
		transfer(monday9, "kaspa:qa", wallet, "10"),
		transfer(monday9, "kaspa:qb", wallet, "5"),
		transfer(sunday23, "kaspa:qa", wallet, "2"),
		// outflow and self-transfer rows are ignored
		transfer(monday9, wallet, "kaspa:qa", "100"),
		transfer(monday9, wallet, wallet, "100"),
	}

	count, amount := Build(records, wallet)

	assert.Equal(t, 2.0, count[0][9], "Monday is row 0")
	assert.Equal(t, 15.0, amount[0][9])
	assert.Equal(t, 1.0, count[6][23], "Sunday is row 6")
	assert.Equal(t, 2.0, amount[6][23])

	var total float64
	for wd := range count {
		for hr := range count[wd] {
			total += count[wd][hr]
		}
	}
	assert.Equal(t, 3.0, total)
}

func TestBuildUsesUTCHour(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:30 local on Tuesday is 21:30 UTC on Monday.
	local := time.Date(2024, 3, 5, 2, 30, 0, 0, loc)

	count, _ := Build([]model.Transfer{transfer(local, "kaspa:qa", wallet, "1")}, wallet)
	assert.Equal(t, 1.0, count[0][21])
}

func TestTopCells(t *testing.T) {
	var g Grid
	g[0][9] = 10
	g[3][14] = 25
	g[6][0] = 10

	top := TopCells(g, 3)
	require.Len(t, top, 3)
	assert.Equal(t, Cell{Weekday: 3, Hour: 14, Value: 25}, top[0])
	assert.Equal(t, Cell{Weekday: 0, Hour: 9, Value: 10}, top[1], "ties break on earlier weekday")
	assert.Equal(t, Cell{Weekday: 6, Hour: 0, Value: 10}, top[2])
}

func TestTopCellsClampsK(t *testing.T) {
	var g Grid
	top := TopCells(g, 500)
	assert.Len(t, top, 7*24)
}
