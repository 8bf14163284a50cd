// Package geo provides the planar geometry primitives used by the
// spatial indexes: points, rectangles and the longitude conventions
// for antimeridian handling.
package geo

import "math"

// Longitude is kept strictly inside the open interval (-180, 180) so
// that rectangle envelopes never degenerate at the antimeridian.
const (
	MaxLng = 179.9999
	MinLng = -179.9999
)

// Point is a geographic position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Clamped returns a copy of the point with latitude clamped to
// [-90, 90] and longitude wrapped into [-180, 180).
func (p Point) Clamped() Point {
	lat := p.Lat
	if lat > 90 {
		lat = 90
	} else if lat < -90 {
		lat = -90
	}
	lng := remEuclid(p.Lng+180, 360) - 180
	return Point{Lat: lat, Lng: lng}
}

// Rect is a geographic rectangle described by its south-west and
// north-east corners. A rectangle whose south-west longitude is
// greater than its north-east longitude crosses the antimeridian.
type Rect struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}

// Envelope is a search box in [minLng, minLat] x [maxLng, maxLat]
// form, ready for R-tree queries.
type Envelope struct {
	Min [2]float64
	Max [2]float64
}

// Envelopes splits the rectangle into the one or two axis-aligned
// search boxes it covers. Rectangles crossing the antimeridian yield
// two envelopes, one on each side of the line.
func (r Rect) Envelopes() []Envelope {
	if r.SouthWest.Lng > 0 && r.NorthEast.Lng < 0 {
		return []Envelope{
			{
				Min: [2]float64{r.SouthWest.Lng, r.SouthWest.Lat},
				Max: [2]float64{MaxLng, r.NorthEast.Lat},
			},
			{
				Min: [2]float64{MinLng, r.SouthWest.Lat},
				Max: [2]float64{r.NorthEast.Lng, r.NorthEast.Lat},
			},
		}
	}
	return []Envelope{
		{
			Min: [2]float64{r.SouthWest.Lng, r.SouthWest.Lat},
			Max: [2]float64{r.NorthEast.Lng, r.NorthEast.Lat},
		},
	}
}

// Width returns the longitudinal extent of the rectangle in degrees,
// correct across the antimeridian.
func (r Rect) Width() float64 {
	w := (r.NorthEast.Lng + 180) - (r.SouthWest.Lng + 180)
	if w < 0 {
		w += 360
	}
	return w
}

// Height returns the latitudinal extent of the rectangle in degrees.
func (r Rect) Height() float64 {
	return r.NorthEast.Lat - r.SouthWest.Lat
}

// Scaled grows the rectangle around its centre by the given
// multiplier and clamps the corners back into valid ranges. A
// multiplier of 1 returns the rectangle unchanged.
func (r Rect) Scaled(multiplier float64) Rect {
	ext := multiplier - 1
	dw := r.Width() * ext / 2
	dh := r.Height() * ext / 2
	out := Rect{
		SouthWest: Point{Lat: r.SouthWest.Lat - dh, Lng: r.SouthWest.Lng - dw},
		NorthEast: Point{Lat: r.NorthEast.Lat + dh, Lng: r.NorthEast.Lng + dw},
	}
	out.SouthWest = out.SouthWest.Clamped()
	out.NorthEast = out.NorthEast.Clamped()
	return out
}

// Contains reports whether the point lies inside the rectangle,
// correct across the antimeridian.
func (r Rect) Contains(p Point) bool {
	if p.Lat < r.SouthWest.Lat || p.Lat > r.NorthEast.Lat {
		return false
	}
	if r.SouthWest.Lng > r.NorthEast.Lng {
		return p.Lng >= r.SouthWest.Lng || p.Lng <= r.NorthEast.Lng
	}
	return p.Lng >= r.SouthWest.Lng && p.Lng <= r.NorthEast.Lng
}

// LngLess reports whether a is west of b along the shorter way
// around the circle.
func LngLess(a, b float64) bool {
	return remEuclid(b-a, 360) < remEuclid(a-b, 360)
}

// LngCenter returns the longitude halfway from min to max going
// eastwards, wrapped into [-180, 180).
func LngCenter(min, max float64) float64 {
	if min < max {
		return (min + max) / 2
	}
	mid := (min + max + 360) / 2
	return math.Mod(mid+180, 360) - 180
}

func remEuclid(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += math.Abs(b)
	}
	return m
}
