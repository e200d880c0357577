package charts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	temporalWidth  = 1200
	temporalHeight = 600
)

// Temporal plots the selected parameter against the sampling date.
type Temporal struct{}

func NewTemporal() *Temporal { return &Temporal{} }

func (*Temporal) Kind() quality.ChartKind { return quality.ChartTemporal }

func (*Temporal) Render(t *quality.Table) ([]byte, error) {
	param, err := quality.SelectParameter(t)
	if err != nil {
		return nil, err
	}
	dates, err := t.MustColumn(quality.ColumnDate)
	if err != nil {
		return nil, err
	}
	values, err := t.MustColumn(param)
	if err != nil {
		return nil, err
	}

	xs, ys, err := dailySeries(dates, values, t.Len())
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: no dated %s value", quality.ErrNoData, param)
	}

	label := capitalize(param)
	lo, hi := bounds(ys)

	first, last := xs[0], xs[len(xs)-1]
	if first.Equal(last) {
		first = first.Add(-12 * time.Hour)
		last = last.Add(12 * time.Hour)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Temporal Variation of %s", label),
		Width:  temporalWidth,
		Height: temporalHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 60, Right: 30, Bottom: 30},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(first),
				Max: chart.TimeToFloat64(last),
			},
			TickStyle: chart.Style{TextRotationDegrees: 45},
		},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("%s Value", label),
			Range: paddedRange(lo, hi),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: label,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return encodePNG(graph)
}

// dailySeries pairs each non-null value with its sampling date, averaging
// values that share a date, sorted by date.
func dailySeries(dates, values *quality.Column, rows int) ([]time.Time, []float64, error) {
	type acc struct {
		at    time.Time
		sum   float64
		count int
	}
	byDate := make(map[int64]*acc)

	for i := 0; i < rows; i++ {
		v, ok, err := values.Float(i)
		if err != nil {
			return nil, nil, err
		}
		if !ok || math.IsNaN(v) {
			continue
		}
		at, ok := dates.Time(i)
		if !ok {
			continue
		}
		key := at.UnixNano()
		a, seen := byDate[key]
		if !seen {
			a = &acc{at: at}
			byDate[key] = a
		}
		a.sum += v
		a.count++
	}

	keys := make([]int64, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	xs := make([]time.Time, 0, len(keys))
	ys := make([]float64, 0, len(keys))
	for _, k := range keys {
		a := byDate[k]
		xs = append(xs, a.at)
		ys = append(ys, a.sum/float64(a.count))
	}
	return xs, ys, nil
}
