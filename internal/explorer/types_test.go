package explorer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A trimmed-down response body in the explorer's wire shape.
const wireTransaction = `{
	"transaction_id": "f3a1b2",
	"block_time": 1709294400000,
	"inputs": [
		{"previous_outpoint_address": "kaspa:qsender", "previous_outpoint_amount": 150000000}
	],
	"outputs": [
		{"script_public_key_address": "kaspa:qwallet", "amount": 100000000},
		{"script_public_key_address": "kaspa:qsender", "amount": 49000000}
	]
}`

func TestTransactionDecode(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(wireTransaction), &tx))

	assert.Equal(t, "f3a1b2", tx.TransactionID)
	assert.Equal(t, int64(1709294400000), tx.BlockTime)
	require.Len(t, tx.Inputs, 1)
	assert.Equal(t, "kaspa:qsender", tx.Inputs[0].PreviousOutpointAddress)
	assert.Equal(t, int64(150000000), tx.Inputs[0].PreviousOutpointAmount)
	require.Len(t, tx.Outputs, 2)
	assert.Equal(t, int64(100000000), tx.Outputs[0].Amount)
}

func TestTransactionTime(t *testing.T) {
	tx := Transaction{BlockTime: 1709294400000}
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), tx.Time())
}
