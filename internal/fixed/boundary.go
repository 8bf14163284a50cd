package fixed

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/geo"
)

// Boundary is a FIR boundary polygon set. Points keeps one flattened
// ring list per polygon for map rendering; Min, Max and Center are
// precomputed with antimeridian-aware longitude ordering.
type Boundary struct {
	ID       string        `json:"id"`
	Oceanic  bool          `json:"oceanic"`
	Region   string        `json:"region,omitempty"`
	Division string        `json:"division,omitempty"`
	Min      geo.Point     `json:"min"`
	Max      geo.Point     `json:"max"`
	Center   geo.Point     `json:"center"`
	Points   [][]geo.Point `json:"points"`
}

// Rect returns the bounding rectangle of the boundary.
func (b *Boundary) Rect() geo.Rect {
	return geo.Rect{SouthWest: geo.Point{Lat: b.Min.Lat, Lng: b.Min.Lng},
		NorthEast: geo.Point{Lat: b.Max.Lat, Lng: b.Max.Lng}}
}

func propString(props geojson.Properties, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func boundaryFromFeature(f *geojson.Feature) (*Boundary, error) {
	id := propString(f.Properties, "id")
	if id == "" {
		return nil, fmt.Errorf("boundary feature without an id")
	}
	b := &Boundary{
		ID:       id,
		Oceanic:  propString(f.Properties, "oceanic") == "1",
		Region:   propString(f.Properties, "region"),
		Division: propString(f.Properties, "division"),
	}

	var polygons orb.MultiPolygon
	switch g := f.Geometry.(type) {
	case orb.MultiPolygon:
		polygons = g
	case orb.Polygon:
		polygons = orb.MultiPolygon{g}
	default:
		return nil, fmt.Errorf("boundary %s has unsupported geometry %T", id, f.Geometry)
	}

	first := true
	for _, polygon := range polygons {
		var flat []geo.Point
		for _, ring := range polygon {
			for _, raw := range ring {
				p := geo.Point{Lat: raw.Lat(), Lng: raw.Lon()}
				flat = append(flat, p)
				if first {
					b.Min, b.Max = p, p
					first = false
					continue
				}
				if p.Lat < b.Min.Lat {
					b.Min.Lat = p.Lat
				}
				if p.Lat > b.Max.Lat {
					b.Max.Lat = p.Lat
				}
				if geo.LngLess(p.Lng, b.Min.Lng) {
					b.Min.Lng = p.Lng
				}
				if geo.LngLess(b.Max.Lng, p.Lng) {
					b.Max.Lng = p.Lng
				}
			}
		}
		b.Points = append(b.Points, flat)
	}
	if first {
		return nil, fmt.Errorf("boundary %s has no points", id)
	}
	b.Center = geo.Point{
		Lat: (b.Min.Lat + b.Max.Lat) / 2,
		Lng: geo.LngCenter(b.Min.Lng, b.Max.Lng),
	}
	return b, nil
}

// parseBoundaries decodes a boundaries GeoJSON document into a map
// keyed by boundary id. Broken features are logged and skipped.
func parseBoundaries(r io.Reader) (map[string]*Boundary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read boundaries: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse boundaries: %w", err)
	}
	out := make(map[string]*Boundary, len(fc.Features))
	for _, f := range fc.Features {
		b, err := boundaryFromFeature(f)
		if err != nil {
			logrus.Errorf("[FixedData] skipping boundary: %s", err)
			continue
		}
		out[b.ID] = b
	}
	return out, nil
}
