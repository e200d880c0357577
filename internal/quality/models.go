package quality

import (
	"time"
)

// Well-known columns of the Hub'Eau "analyse_pc" records.
const (
	ColumnDate      = "date_prelevement"
	ColumnStation   = "code_station"
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"

	// PreferredParameter is plotted whenever the table carries it.
	PreferredParameter = "temperature"
)

// ChartKind names one of the supported visualizations.
type ChartKind string

const (
	ChartTemporal     ChartKind = "temporal"
	ChartComparative  ChartKind = "comparative"
	ChartGeographical ChartKind = "geographical"
)

// ChartKinds lists every supported visualization in a stable order.
func ChartKinds() []ChartKind {
	return []ChartKind{ChartTemporal, ChartComparative, ChartGeographical}
}

// StationMean is the average of a parameter over one station's rows.
type StationMean struct {
	Station string  `json:"station"`
	Mean    float64 `json:"mean"`  // NaN when the station has no value
	Count   int     `json:"count"` // non-null values averaged
}

// ProbeResult records one scheduled fetch+normalize round against the
// upstream API. The fetched data itself is discarded.
type ProbeResult struct {
	Timestamp time.Time     `json:"timestamp"` // always UTC
	OK        bool          `json:"ok"`
	Records   int           `json:"records"`
	Columns   int           `json:"columns"`
	Latency   time.Duration `json:"latencyNs"`
	Error     string        `json:"error,omitempty"`
}
