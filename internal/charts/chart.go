package charts

import (
	"bytes"
	"io"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/charts/basemap"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/wcharczuk/go-chart/v2"
)

// pngChart is satisfied by both chart.Chart and chart.BarChart.
type pngChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// NewRenderers returns one renderer per chart kind.
func NewRenderers(world *basemap.Basemap) []quality.Renderer {
	return []quality.Renderer{
		NewTemporal(),
		NewComparative(),
		NewGeographical(world),
	}
}

func encodePNG(c pngChart) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	rest := []rune(s[size:])
	for i, c := range rest {
		rest[i] = unicode.ToLower(c)
	}
	return string(unicode.ToUpper(r)) + string(rest)
}

// paddedRange widens [lo, hi] by 5% on each side. go-chart rejects a zero
// width range, so a single value gets a fixed margin.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if lo == hi {
		pad := math.Abs(lo) * 0.05
		if pad == 0 {
			pad = 1
		}
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// axisLabel draws a vertical axis title along the left edge.
func axisLabel(name string) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		style := chart.Style{
			FontSize:            12,
			FontColor:           chart.ColorBlack,
			TextRotationDegrees: 270,
		}.InheritFrom(defaults)
		chart.Draw.Text(r, name, 24, canvas.Top+canvas.Height()/2, style)
	}
}
