// Package basemap loads the world outline drawn under geographical charts.
package basemap

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

//go:embed world.geojson
var worldGeoJSON []byte

var ErrEmpty = errors.New("basemap has no polygon")

// Basemap is a set of closed lon/lat rings.
type Basemap struct {
	Rings []orb.Ring
}

var embedded = mustParse(worldGeoJSON)

// Default returns the embedded low-resolution world outline.
func Default() *Basemap {
	return embedded
}

// Load reads a GeoJSON FeatureCollection from path. An empty path selects
// the embedded outline; any other path must be readable and hold at least
// one polygon.
func Load(path string) (*Basemap, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read basemap: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("basemap %s: %w", path, err)
	}
	return b, nil
}

// Parse extracts the outer and inner rings of every Polygon and
// MultiPolygon feature. Other geometries are ignored.
func Parse(data []byte) (*Basemap, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	b := &Basemap{}
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			b.addPolygon(g)
		case orb.MultiPolygon:
			for _, p := range g {
				b.addPolygon(p)
			}
		}
	}
	if len(b.Rings) == 0 {
		return nil, ErrEmpty
	}
	return b, nil
}

func (b *Basemap) addPolygon(p orb.Polygon) {
	for _, r := range p {
		if len(r) > 1 {
			b.Rings = append(b.Rings, r)
		}
	}
}

func mustParse(data []byte) *Basemap {
	b, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded basemap: %v", err))
	}
	return b
}
