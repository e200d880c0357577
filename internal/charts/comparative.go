package charts

import (
	"fmt"
	"math"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	comparativeWidth  = 1200
	comparativeHeight = 600

	barSlot = 90 // bar plus spacing, shrunk when stations do not fit
)

// Comparative draws one bar per station with the station's mean value.
type Comparative struct{}

func NewComparative() *Comparative { return &Comparative{} }

func (*Comparative) Kind() quality.ChartKind { return quality.ChartComparative }

func (*Comparative) Render(t *quality.Table) ([]byte, error) {
	param, err := quality.SelectParameter(t)
	if err != nil {
		return nil, err
	}
	means, err := quality.MeanByStation(t, param)
	if err != nil {
		return nil, err
	}

	bars := make([]chart.Value, 0, len(means))
	values := make([]float64, 0, len(means)+1)
	for _, m := range means {
		if math.IsNaN(m.Mean) {
			continue
		}
		bars = append(bars, chart.Value{
			Label: m.Station,
			Value: m.Mean,
			Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue},
		})
		values = append(values, m.Mean)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no station has a %s value", quality.ErrNoData, param)
	}
	// Bars grow from zero.
	values = append(values, 0)
	lo, hi := bounds(values)

	slot := barSlot
	if avail := (comparativeWidth - 200) / len(bars); avail < slot {
		slot = avail
	}
	if slot < 3 {
		slot = 3
	}

	label := capitalize(param)
	graph := chart.BarChart{
		Title:  fmt.Sprintf("Average %s by Station", label),
		Width:  comparativeWidth,
		Height: comparativeHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 60, Right: 30, Bottom: 30},
		},
		BarWidth:     slot * 2 / 3,
		BarSpacing:   slot - slot*2/3,
		UseBaseValue: true,
		BaseValue:    0,
		XAxis:        chart.Style{TextRotationDegrees: 90},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("Average %s", label),
			Range: paddedRange(lo, hi),
		},
		Bars: bars,
	}
	graph.Elements = []chart.Renderable{axisLabel(graph.YAxis.Name)}
	return encodePNG(graph)
}
