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

// DailyHeader is the CSV header for daily flow files.
const DailyHeader = "date,inflow_kas,outflow_kas,net_kas,balance_kas"

const (
	dailyNumFields = 5
	dateFormat     = "2006-01-02"

	colDate    = 0
	colInflow  = 1
	colOutflow = 2
	colNet     = 3
	colBalance = 4
)

// ReadDailyFlows reads all daily flow rows from a CSV reader.
func ReadDailyFlows(r io.Reader) ([]model.DailyFlow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = dailyNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading daily flows CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var flows []model.DailyFlow
	for i, rec := range records[1:] {
		f, err := unmarshalDailyFlow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		flows = append(flows, f)
	}
	return flows, nil
}

// WriteDailyFlows writes daily flow rows to a CSV writer (including
// header).
func WriteDailyFlows(w io.Writer, flows []model.DailyFlow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(DailyHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, f := range flows {
		row := []string{
			f.Date.UTC().Format(dateFormat),
			f.Inflow.String(),
			f.Outflow.String(),
			f.Net.String(),
			f.Balance.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalDailyFlow(record []string) (model.DailyFlow, error) {
	if len(record) != dailyNumFields {
		return model.DailyFlow{}, fmt.Errorf("expected %d fields, got %d", dailyNumFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.DailyFlow{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	f := model.DailyFlow{Date: date.UTC()}
	for _, field := range []struct {
		name string
		col  int
		dst  *decimal.Decimal
	}{
		{"inflow_kas", colInflow, &f.Inflow},
		{"outflow_kas", colOutflow, &f.Outflow},
		{"net_kas", colNet, &f.Net},
		{"balance_kas", colBalance, &f.Balance},
	} {
		v, err := decimal.NewFromString(record[field.col])
		if err != nil {
			return model.DailyFlow{}, fmt.Errorf("parsing %s %q: %w", field.name, record[field.col], err)
		}
		*field.dst = v
	}

	return f, nil
}
