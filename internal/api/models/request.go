package models

// OptimiseRequest names the input files and output location for one solve.
type OptimiseRequest struct {
	BatteryCSVPath          string `json:"battery_csv_path" binding:"required"`
	MarketHalfHourlyCSVPath string `json:"market_halfhourly_csv_path" binding:"required"`
	MarketHourlyCSVPath     string `json:"market_hourly_csv_path" binding:"required"`
	ResultsOutputPath       string `json:"results_output_path" binding:"required"`
}
