// Package prices loads the daily USD price series exported by the price
// tracker (columns snapped_at,price; extra columns ignored).
package prices

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// Series is a daily price series, sorted by date with one point per day.
type Series struct {
	points []model.PricePoint
	byDate map[time.Time]int
}

// Load reads the price CSV from path. The file is required input: a
// missing file is an error naming it.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening price CSV %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading price CSV %s: %w", path, err)
	}
	return s, nil
}

// Read parses price CSV content. Timestamps like
// "2022-06-01 00:00:00 UTC" are floored to the UTC day; duplicate days
// keep the last row. Day-over-day returns are computed after sorting.
func Read(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading price CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("price CSV is empty")
	}

	dateCol, priceCol := -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "snapped_at":
			dateCol = i
		case "price":
			priceCol = i
		}
	}
	if dateCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("price CSV header missing snapped_at/price columns: %v", records[0])
	}

	byDay := make(map[time.Time]float64)
	for i, rec := range records[1:] {
		if dateCol >= len(rec) || priceCol >= len(rec) {
			continue
		}
		day, err := parseSnappedAt(rec[dateCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[priceCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing price %q: %w", i+2, rec[priceCol], err)
		}
		byDay[day] = price // duplicate days keep the last row
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	s := &Series{byDate: make(map[time.Time]int, len(days))}
	for i, d := range days {
		ret := math.NaN()
		if i > 0 {
			prev := byDay[days[i-1]]
			if prev != 0 {
				ret = (byDay[d] - prev) / prev * 100.0
			}
		}
		s.points = append(s.points, model.PricePoint{Date: d, PriceUSD: byDay[d], RetPct: ret})
		s.byDate[d] = i
	}

	return s, nil
}

// parseSnappedAt parses "2022-06-01 00:00:00 UTC" (or a bare date) and
// floors it to UTC midnight.
func parseSnappedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), " UTC"))
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing snapped_at %q", s)
}

// Points returns the series in date order.
func (s *Series) Points() []model.PricePoint { return s.points }

// Len returns the number of days in the series.
func (s *Series) Len() int { return len(s.points) }

// At returns the price point for a UTC day.
func (s *Series) At(day time.Time) (model.PricePoint, bool) {
	i, ok := s.byDate[day]
	if !ok {
		return model.PricePoint{}, false
	}
	return s.points[i], true
}

// Prev returns the price point for the day before the given UTC day, if
// present.
func (s *Series) Prev(day time.Time) (model.PricePoint, bool) {
	return s.At(day.AddDate(0, 0, -1))
}
