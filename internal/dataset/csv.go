package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// TransferHeader is the CSV header for transfer (attribution) files.
const TransferHeader = "tx_id,timestamp,sender,recipient,amount_kas"

const (
	transferNumFields = 5
	timestampFormat   = time.RFC3339

	colTxID      = 0
	colTimestamp = 1
	colSender    = 2
	colRecipient = 3
	colAmount    = 4
)

// ReadTransfers reads all transfer rows from a CSV reader.
func ReadTransfers(r io.Reader) ([]model.Transfer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = transferNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transfers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var transfers []model.Transfer
	for i, rec := range records[1:] {
		t, err := UnmarshalTransfer(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		transfers = append(transfers, t)
	}
	return transfers, nil
}

// WriteTransfers writes transfer rows to a CSV writer (including header).
func WriteTransfers(w io.Writer, transfers []model.Transfer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransferHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range transfers {
		if err := cw.Write(MarshalTransfer(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransfer converts a Transfer to a CSV row.
func MarshalTransfer(t model.Transfer) []string {
	row := make([]string, transferNumFields)
	row[colTxID] = t.TxID
	row[colTimestamp] = t.Timestamp.UTC().Format(timestampFormat)
	row[colSender] = t.Sender
	row[colRecipient] = t.Recipient
	row[colAmount] = t.Amount.String()
	return row
}

// UnmarshalTransfer converts a CSV row to a Transfer.
func UnmarshalTransfer(record []string) (model.Transfer, error) {
	if len(record) != transferNumFields {
		return model.Transfer{}, fmt.Errorf("expected %d fields, got %d", transferNumFields, len(record))
	}

	ts, err := time.Parse(timestampFormat, record[colTimestamp])
	if err != nil {
		return model.Transfer{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transfer{}, fmt.Errorf("parsing amount_kas %q: %w", record[colAmount], err)
	}

	return model.Transfer{
		TxID:      record[colTxID],
		Timestamp: ts.UTC(),
		Sender:    record[colSender],
		Recipient: record[colRecipient],
		Amount:    amount,
	}, nil
}
