package trace

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasflow-dev/kasflow/internal/explorer"
)

func TestParticipantsProportionalAttribution(t *testing.T) {
	// Two senders fund 60/40; one output of 1 KAS should split the
	// same way.
	txs := []explorer.Transaction{
		{
			TransactionID: "tx1",
			BlockTime:     1_700_000_000_000,
			Inputs: []explorer.Input{
				{PreviousOutpointAddress: "kaspa:qa", PreviousOutpointAmount: 60_000_000},
				{PreviousOutpointAddress: "kaspa:qb", PreviousOutpointAmount: 40_000_000},
			},
			Outputs: []explorer.Output{
				{ScriptPublicKeyAddress: wallet, Amount: 100_000_000},
			},
		},
	}

	records := Participants(txs)
	require.Len(t, records, 2)

	total := decimal.Zero
	for _, r := range records {
		assert.Equal(t, "tx1", r.TxID)
		assert.Equal(t, wallet, r.Recipient)
		total = total.Add(r.Amount)
	}
	assert.True(t, records[0].Amount.Equal(dec("0.6")), "got %s", records[0].Amount)
	assert.True(t, records[1].Amount.Equal(dec("0.4")), "got %s", records[1].Amount)
	assert.True(t, total.Equal(dec("1")), "attributions must sum to the output amount")
}

func TestParticipantsSkipsCoinbase(t *testing.T) {
	txs := []explorer.Transaction{
		{
			TransactionID: "coinbase",
			BlockTime:     1_700_000_000_000,
			Outputs: []explorer.Output{
				{ScriptPublicKeyAddress: wallet, Amount: 50_000_000_000},
			},
		},
	}

	assert.Empty(t, Participants(txs))
}

func TestParticipantsMergesRepeatedInputAddresses(t *testing.T) {
	txs := []explorer.Transaction{
		{
			TransactionID: "tx1",
			BlockTime:     1_700_000_000_000,
			Inputs: []explorer.Input{
				{PreviousOutpointAddress: "kaspa:qa", PreviousOutpointAmount: 30_000_000},
				{PreviousOutpointAddress: "kaspa:qa", PreviousOutpointAmount: 70_000_000},
			},
			Outputs: []explorer.Output{
				{ScriptPublicKeyAddress: wallet, Amount: 90_000_000},
			},
		},
	}

	records := Participants(txs)
	require.Len(t, records, 1, "one row per distinct sender per output")
	assert.True(t, records[0].Amount.Equal(dec("0.9")))
}

func TestInvolvingFilters(t *testing.T) {
	records := []explorer.Transaction{
		{
			TransactionID: "tx1",
			BlockTime:     1_700_000_000_000,
			Inputs:        []explorer.Input{{PreviousOutpointAddress: "kaspa:qa", PreviousOutpointAmount: 100}},
			Outputs: []explorer.Output{
				{ScriptPublicKeyAddress: wallet, Amount: 60},
				{ScriptPublicKeyAddress: "kaspa:qb", Amount: 40},
			},
		},
	}

	all := Participants(records)
	require.Len(t, all, 2)

	involving := Involving(all, wallet)
	require.Len(t, involving, 1)
	assert.Equal(t, wallet, involving[0].Recipient)

	// Referential completeness: every involving tx id exists in the
	// participants set.
	participantTxs := make(map[string]bool)
	for _, r := range all {
		participantTxs[r.TxID] = true
	}
	for _, r := range involving {
		assert.True(t, participantTxs[r.TxID])
	}
}
