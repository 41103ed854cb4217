package model

import "time"

// PricePoint is one day of the USD price series. RetPct is the
// day-over-day change in percent, NaN for the first day.
type PricePoint struct {
	Date     time.Time // UTC midnight
	PriceUSD float64
	RetPct   float64
}
