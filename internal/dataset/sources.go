package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// SummaryHeader is the CSV header for by-source / by-destination files.
const SummaryHeader = "address,label,tx_count,total_kas,first_seen,last_seen"

const (
	summaryNumFields = 6
	seenFormat       = "2006-01-02 15:04:05 UTC"

	colAddress   = 0
	colLabel     = 1
	colTxCount   = 2
	colTotal     = 3
	colFirstSeen = 4
	colLastSeen  = 5
)

// ReadSummaries reads all source summary rows from a CSV reader.
func ReadSummaries(r io.Reader) ([]model.SourceSummary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = summaryNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading summaries CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var summaries []model.SourceSummary
	for i, rec := range records[1:] {
		s, err := unmarshalSummary(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// WriteSummaries writes source summary rows to a CSV writer (including
// header).
func WriteSummaries(w io.Writer, summaries []model.SourceSummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(SummaryHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, s := range summaries {
		row := make([]string, summaryNumFields)
		row[colAddress] = s.Address
		row[colLabel] = s.Label
		row[colTxCount] = strconv.Itoa(s.TxCount)
		row[colTotal] = s.Total.String()
		row[colFirstSeen] = s.FirstSeen.UTC().Format(seenFormat)
		row[colLastSeen] = s.LastSeen.UTC().Format(seenFormat)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalSummary(record []string) (model.SourceSummary, error) {
	if len(record) != summaryNumFields {
		return model.SourceSummary{}, fmt.Errorf("expected %d fields, got %d", summaryNumFields, len(record))
	}

	count, err := strconv.Atoi(record[colTxCount])
	if err != nil {
		return model.SourceSummary{}, fmt.Errorf("parsing tx_count %q: %w", record[colTxCount], err)
	}

	total, err := decimal.NewFromString(record[colTotal])
	if err != nil {
		return model.SourceSummary{}, fmt.Errorf("parsing total_kas %q: %w", record[colTotal], err)
	}

	firstSeen, err := time.Parse(seenFormat, record[colFirstSeen])
	if err != nil {
		return model.SourceSummary{}, fmt.Errorf("parsing first_seen %q: %w", record[colFirstSeen], err)
	}

	lastSeen, err := time.Parse(seenFormat, record[colLastSeen])
	if err != nil {
		return model.SourceSummary{}, fmt.Errorf("parsing last_seen %q: %w", record[colLastSeen], err)
	}

	return model.SourceSummary{
		Address:   record[colAddress],
		Label:     record[colLabel],
		TxCount:   count,
		Total:     total,
		FirstSeen: firstSeen.UTC(),
		LastSeen:  lastSeen.UTC(),
	}, nil
}
