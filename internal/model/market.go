package model

// TimestampLayout is the canonical half-hour grid key format.
// Every series in a ProcessedInput and an OptimiserSolution is keyed by it.
const TimestampLayout = "2006-01-02 15:04"

// MarketSeries holds the aligned price series for both markets on the
// canonical half-hour grid.
//
// Market 1 settles half-hourly; Market 2 settles hourly. Market 2's hourly
// price is duplicated onto both half-hour slots of its hour, so every
// timestamp in TimePoints has a price in both half-hourly maps.
type MarketSeries struct {
	// Market1PriceHH maps canonical half-hour timestamps to Market 1 prices (GBP/MWh).
	Market1PriceHH map[string]float64
	// Market2PriceH maps hour-start timestamps to native Market 2 prices (GBP/MWh).
	Market2PriceH map[string]float64
	// Market2PriceHH is Market2PriceH expanded to the half-hour grid by duplication.
	Market2PriceHH map[string]float64
	// TimePoints is the sorted, deduplicated canonical half-hour horizon.
	TimePoints []string
}

// ProcessedInput is the sole hand-off artifact from the aligner to the model
// builder. Created once per request, immutable thereafter.
type ProcessedInput struct {
	Battery BatteryProperties
	Market  MarketSeries
}
