package dataset

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasflow-dev/kasflow/internal/model"
)

func TestWriteReadTransfers(t *testing.T) {
	transfers := []model.Transfer{
		{
			TxID:      "aabbcc",
			Timestamp: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			Sender:    "kaspa:qsender",
			Recipient: "kaspa:qwallet",
			Amount:    decimal.RequireFromString("12.34567891"),
		},
		{
			TxID:      "ddeeff",
			Timestamp: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			Sender:    "kaspa:qwallet",
			Recipient: "kaspa:qother",
			Amount:    decimal.RequireFromString("0.00000001"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransfers(&buf, transfers))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, TransferHeader, lines[0])
	assert.Equal(t, "aabbcc,2024-03-01T12:30:00Z,kaspa:qsender,kaspa:qwallet,12.34567891", lines[1])

	got, err := ReadTransfers(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, transfers[0].TxID, got[0].TxID)
	assert.True(t, got[0].Timestamp.Equal(transfers[0].Timestamp))
	assert.True(t, got[1].Amount.Equal(transfers[1].Amount), "one sompi survives the round trip exactly")
}

func TestReadTransfersEmpty(t *testing.T) {
	got, err := ReadTransfers(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalTransferErrors(t *testing.T) {
	_, err := UnmarshalTransfer([]string{"tx", "not-a-time", "a", "b", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp")

	_, err = UnmarshalTransfer([]string{"tx", "2024-03-01T00:00:00Z", "a", "b", "1.2.3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount_kas")

	_, err = UnmarshalTransfer([]string{"too", "few"})
	require.Error(t, err)
}

func TestWriteReadDailyFlows(t *testing.T) {
	flows := []model.DailyFlow{
		{
			Date:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Inflow:  decimal.RequireFromString("100"),
			Outflow: decimal.RequireFromString("20"),
			Net:     decimal.RequireFromString("80"),
			Balance: decimal.RequireFromString("80"),
		},
		{
			Date:    time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			Inflow:  decimal.Zero,
			Outflow: decimal.RequireFromString("50"),
			Net:     decimal.RequireFromString("-50"),
			Balance: decimal.RequireFromString("30"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDailyFlows(&buf, flows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, DailyHeader, lines[0])
	assert.Equal(t, "2024-03-01,100,20,80,80", lines[1])

	got, err := ReadDailyFlows(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].Net.Equal(flows[1].Net))
	assert.True(t, got[1].Balance.Equal(flows[1].Balance))
}

func TestWriteReadSummaries(t *testing.T) {
	summaries := []model.SourceSummary{
		{
			Address:   "kaspa:qexchange",
			Label:     "Gate.io",
			TxCount:   3,
			Total:     decimal.RequireFromString("1234.5"),
			FirstSeen: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			LastSeen:  time.Date(2024, 3, 2, 18, 45, 30, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaries(&buf, summaries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, SummaryHeader, lines[0])
	assert.Equal(t, "kaspa:qexchange,Gate.io,3,1234.5,2024-01-15 09:00:00 UTC,2024-03-02 18:45:30 UTC", lines[1])

	got, err := ReadSummaries(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, summaries[0].Label, got[0].Label)
	assert.Equal(t, summaries[0].TxCount, got[0].TxCount)
	assert.True(t, got[0].LastSeen.Equal(summaries[0].LastSeen))
}
