package charts

import (
	"fmt"
	"math"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/charts/basemap"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	geoWidth  = 1500
	geoHeight = 1000

	markerWidth = 6
)

var (
	markerColor = chart.ColorBlue.WithAlpha(128)
	landColor   = drawing.Color{R: 150, G: 150, B: 150, A: 255}
)

// Geographical scatters sampling points over a world outline.
type Geographical struct {
	world *basemap.Basemap
}

// NewGeographical returns a renderer drawing over world. A nil world falls
// back to the embedded outline.
func NewGeographical(world *basemap.Basemap) *Geographical {
	if world == nil {
		world = basemap.Default()
	}
	return &Geographical{world: world}
}

func (*Geographical) Kind() quality.ChartKind { return quality.ChartGeographical }

func (g *Geographical) Render(t *quality.Table) ([]byte, error) {
	param, err := quality.SelectParameter(t)
	if err != nil {
		return nil, err
	}
	lats, err := t.MustColumn(quality.ColumnLatitude)
	if err != nil {
		return nil, err
	}
	lons, err := t.MustColumn(quality.ColumnLongitude)
	if err != nil {
		return nil, err
	}

	xs, ys, err := coordinates(lons, lats, t.Len())
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: no coordinate pair", quality.ErrNoData)
	}

	series := make([]chart.Series, 0, len(g.world.Rings)+1)
	for _, ring := range g.world.Rings {
		rx := make([]float64, len(ring))
		ry := make([]float64, len(ring))
		for i, p := range ring {
			rx[i], ry[i] = p.Lon(), p.Lat()
		}
		series = append(series, chart.ContinuousSeries{
			Style:   chart.Style{StrokeColor: landColor, StrokeWidth: 1},
			XValues: rx,
			YValues: ry,
		})
	}

	points := chart.ContinuousSeries{
		Name: param,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    markerColor,
			DotWidth:    markerWidth,
		},
		XValues: xs,
		YValues: ys,
	}
	series = append(series, points)

	// The legend lists the sampling points only, not the basemap rings.
	legend := chart.Chart{
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    param,
			Style:   chart.Style{StrokeColor: markerColor, StrokeWidth: markerWidth},
			XValues: xs,
			YValues: ys,
		}},
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Geographical Distribution of %s", capitalize(param)),
		Width:  geoWidth,
		Height: geoHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 30, Right: 30, Bottom: 30},
		},
		XAxis: chart.XAxis{
			Name:  "Longitude",
			Range: &chart.ContinuousRange{Min: -180, Max: 180},
		},
		YAxis: chart.YAxis{
			Name:  "Latitude",
			Range: &chart.ContinuousRange{Min: -90, Max: 90},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&legend)}
	return encodePNG(graph)
}

// coordinates collects (lon, lat) pairs, skipping rows where either is null.
func coordinates(lons, lats *quality.Column, rows int) ([]float64, []float64, error) {
	var xs, ys []float64
	for i := 0; i < rows; i++ {
		lon, okLon, err := lons.Float(i)
		if err != nil {
			return nil, nil, err
		}
		lat, okLat, err := lats.Float(i)
		if err != nil {
			return nil, nil, err
		}
		if !okLon || !okLat || math.IsNaN(lon) || math.IsNaN(lat) {
			continue
		}
		xs = append(xs, lon)
		ys = append(ys, lat)
	}
	return xs, ys, nil
}
