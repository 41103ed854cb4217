package dip

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SummaryHeader is the CSV header for the dip summary table.
const SummaryHeader = "category,n,mean_kas,median_kas,ci_low_kas,ci_high_kas,mean_usd,mean_prev_price_usd"

// WriteSummary writes the per-bin statistics as a CSV table.
func WriteSummary(w io.Writer, bins []BinStats) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(SummaryHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, b := range bins {
		row := []string{
			b.Category,
			strconv.Itoa(b.KAS.N),
			formatFloat(b.KAS.Mean),
			formatFloat(b.KAS.Median),
			formatFloat(b.KAS.CILow),
			formatFloat(b.KAS.CIHigh),
			formatFloat(b.MeanUSD),
			formatFloat(b.MeanPrevPrice),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
