// Package align normalises the two raw market price series and the battery
// parameter table into one internally consistent ProcessedInput on the
// canonical half-hour grid.
package align

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

// timestampLayouts are the raw input formats accepted, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"02/01/2006 15:04",
}

// Aligner produces ProcessedInput from the three tabular sources.
type Aligner struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Aligner {
	return &Aligner{log: log}
}

// Run reads the battery parameter table and both price series, and returns
// the aligned ProcessedInput. Any validation failure aborts before a solver
// is ever touched.
func (a *Aligner) Run(batteryPath, halfHourlyPath, hourlyPath string) (*model.ProcessedInput, error) {
	kv, err := readParameterTable(batteryPath)
	if err != nil {
		return nil, err
	}
	battery, err := extractBatteryProperties(kv)
	if err != nil {
		return nil, err
	}

	market, err := a.extractMarketSeries(halfHourlyPath, hourlyPath)
	if err != nil {
		return nil, err
	}

	a.log.Debug().
		Int("time_points", len(market.TimePoints)).
		Float64("capacity_mwh", battery.CapacityMWh).
		Msg("input aligned")

	return &model.ProcessedInput{Battery: battery, Market: *market}, nil
}

func (a *Aligner) extractMarketSeries(halfHourlyPath, hourlyPath string) (*model.MarketSeries, error) {
	m1Points, err := readPriceSeries(halfHourlyPath)
	if err != nil {
		return nil, err
	}
	m2Points, err := readPriceSeries(hourlyPath)
	if err != nil {
		return nil, err
	}

	market1, err := canonicalise(m1Points, "half-hourly market data")
	if err != nil {
		return nil, err
	}

	market2Native, err := canonicalise(m2Points, "hourly market data")
	if err != nil {
		return nil, err
	}

	// Expand the hourly series by duplication: hour h's price applies to both
	// h:00 and h:30. This is the settlement rule, not an interpolation.
	market2HH := make(map[string]float64, 2*len(market2Native))
	market2H := make(map[string]float64, len(market2Native))
	for ts, price := range market2Native {
		price = math.Round(price*100) / 100
		t, err := time.Parse(model.TimestampLayout, ts)
		if err != nil {
			return nil, &AlignmentError{Reason: fmt.Sprintf("internal: bad canonical timestamp %q", ts)}
		}
		market2H[ts] = price
		market2HH[ts] = price
		market2HH[t.Add(30*time.Minute).Format(model.TimestampLayout)] = price
	}

	// Canonical horizon: the sorted, deduplicated half-hour grid of market 1.
	timePoints := make([]string, 0, len(market1))
	for ts := range market1 {
		timePoints = append(timePoints, ts)
	}
	sort.Strings(timePoints)

	if err := checkCoverage(timePoints, market1, market2HH); err != nil {
		return nil, err
	}

	return &model.MarketSeries{
		Market1PriceHH: market1,
		Market2PriceH:  market2H,
		Market2PriceHH: market2HH,
		TimePoints:     timePoints,
	}, nil
}

// canonicalise parses and rounds every raw timestamp onto the half-hour grid.
// Duplicate canonical timestamps keep the last row's price.
func canonicalise(points []rawPoint, label string) (map[string]float64, error) {
	out := make(map[string]float64, len(points))
	var bad []string
	for _, p := range points {
		t, err := parseTimestamp(p.Timestamp)
		if err != nil {
			bad = append(bad, fmt.Sprintf("row %d: %q", p.Row, p.Timestamp))
			continue
		}
		out[roundToHalfHour(t).Format(model.TimestampLayout)] = p.Price
	}
	if len(bad) > 0 {
		return nil, &AlignmentError{
			Reason:  fmt.Sprintf("invalid or missing timestamps in %s", label),
			Samples: boundedSample(bad),
		}
	}
	return out, nil
}

// checkCoverage verifies every canonical grid point has a price in the
// expanded hourly series. On mismatch the error samples both sides: grid
// points the hourly market misses, and hourly slots outside the grid.
func checkCoverage(timePoints []string, market1, market2HH map[string]float64) error {
	var missing []string
	for _, ts := range timePoints {
		if _, ok := market2HH[ts]; !ok {
			missing = append(missing, ts)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var extra []string
	for ts := range market2HH {
		if _, ok := market1[ts]; !ok {
			extra = append(extra, ts)
		}
	}
	sort.Strings(extra)

	samples := boundedSample(missing)
	if len(extra) > 0 {
		samples = append(samples, "hourly-only:")
		samples = append(samples, boundedSample(extra)...)
	}
	return &AlignmentError{
		Reason:  "market horizons do not match; half-hourly timestamps missing from hourly series",
		Samples: samples,
	}
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", raw)
}

// roundToHalfHour resolves sub-minute jitter onto the canonical grid:
// minute < 15 rounds to :00, [15,45) to :30, otherwise to the next hour's :00.
func roundToHalfHour(t time.Time) time.Time {
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	switch m := t.Minute(); {
	case m < 15:
		return base
	case m < 45:
		return base.Add(30 * time.Minute)
	default:
		return base.Add(time.Hour)
	}
}
