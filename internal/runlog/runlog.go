package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the fetch log: the outcome of a single fetch run.
type Entry struct {
	RunID        string // uuid
	StartedAt    time.Time
	Address      string
	Pages        int
	Transactions int
	Records      int // attribution rows written
	Status       string
	Error        string
}

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Header is the CSV header for fetch-log.csv.
const Header = "run_id,started_at,address,pages,transactions,records,status,error"

const (
	numFields = 8
	logFile   = "data/fetch-log.csv"

	colRunID        = 0
	colStartedAt    = 1
	colAddress      = 2
	colPages        = 3
	colTransactions = 4
	colRecords      = 5
	colStatus       = 6
	colError        = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunID] = e.RunID
	row[colStartedAt] = e.StartedAt.UTC().Format(time.RFC3339)
	row[colAddress] = e.Address
	row[colPages] = strconv.Itoa(e.Pages)
	row[colTransactions] = strconv.Itoa(e.Transactions)
	row[colRecords] = strconv.Itoa(e.Records)
	row[colStatus] = e.Status
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colStartedAt])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing started_at %q: %w", record[colStartedAt], err)
	}

	pages, err := strconv.Atoi(record[colPages])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing pages %q: %w", record[colPages], err)
	}

	txs, err := strconv.Atoi(record[colTransactions])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing transactions %q: %w", record[colTransactions], err)
	}

	recs, err := strconv.Atoi(record[colRecords])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing records %q: %w", record[colRecords], err)
	}

	return Entry{
		RunID:        record[colRunID],
		StartedAt:    ts.UTC(),
		Address:      record[colAddress],
		Pages:        pages,
		Transactions: txs,
		Records:      recs,
		Status:       record[colStatus],
		Error:        record[colError],
	}, nil
}

// Append writes entries to <projectDir>/data/fetch-log.csv, creating the
// file and header if needed.
func Append(projectDir string, entries []Entry) error {
	path := filepath.Join(projectDir, logFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening fetch log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <projectDir>/data/fetch-log.csv.
// Returns an empty slice if the file does not exist.
func Read(projectDir string) ([]Entry, error) {
	path := filepath.Join(projectDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening fetch log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading fetch log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
