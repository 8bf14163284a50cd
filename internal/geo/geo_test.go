package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointClamped(t *testing.T) {
	cases := []struct {
		name string
		in   Point
		want Point
	}{
		{"identity", Point{Lat: 51.5, Lng: -0.12}, Point{Lat: 51.5, Lng: -0.12}},
		{"lat overflow", Point{Lat: 95, Lng: 10}, Point{Lat: 90, Lng: 10}},
		{"lat underflow", Point{Lat: -91, Lng: 10}, Point{Lat: -90, Lng: 10}},
		{"lng wrap east", Point{Lat: 0, Lng: 190}, Point{Lat: 0, Lng: -170}},
		{"lng wrap west", Point{Lat: 0, Lng: -190}, Point{Lat: 0, Lng: 170}},
		{"lng wrap full turn", Point{Lat: 0, Lng: 540}, Point{Lat: 0, Lng: 180 - 360}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.in.Clamped()
			assert.InDelta(t, c.want.Lat, got.Lat, 1e-9)
			assert.InDelta(t, c.want.Lng, got.Lng, 1e-9)
		})
	}
}

func TestClampedIdempotent(t *testing.T) {
	pts := []Point{
		{Lat: 100, Lng: 350},
		{Lat: -120, Lng: -725},
		{Lat: 45, Lng: 45},
	}
	for _, p := range pts {
		once := p.Clamped()
		twice := once.Clamped()
		assert.Equal(t, once, twice)
	}
}

func TestRectEnvelopes(t *testing.T) {
	plain := Rect{SouthWest: Point{Lat: 0, Lng: -10}, NorthEast: Point{Lat: 10, Lng: 10}}
	env := plain.Envelopes()
	assert.Len(t, env, 1)
	assert.Equal(t, [2]float64{-10, 0}, env[0].Min)
	assert.Equal(t, [2]float64{10, 10}, env[0].Max)

	wrapped := Rect{SouthWest: Point{Lat: 0, Lng: 170}, NorthEast: Point{Lat: 10, Lng: -170}}
	env = wrapped.Envelopes()
	assert.Len(t, env, 2)
	assert.Equal(t, [2]float64{170, 0}, env[0].Min)
	assert.Equal(t, [2]float64{MaxLng, 10}, env[0].Max)
	assert.Equal(t, [2]float64{MinLng, 0}, env[1].Min)
	assert.Equal(t, [2]float64{-170, 10}, env[1].Max)
}

func TestRectWidth(t *testing.T) {
	r := Rect{SouthWest: Point{Lng: -10}, NorthEast: Point{Lng: 10}}
	assert.InDelta(t, 20, r.Width(), 1e-9)

	wrapped := Rect{SouthWest: Point{Lng: 170}, NorthEast: Point{Lng: -170}}
	assert.InDelta(t, 20, wrapped.Width(), 1e-9)
}

func TestRectScaled(t *testing.T) {
	r := Rect{SouthWest: Point{Lat: 0, Lng: 0}, NorthEast: Point{Lat: 10, Lng: 10}}
	s := r.Scaled(1.2)
	assert.InDelta(t, -1, s.SouthWest.Lat, 1e-9)
	assert.InDelta(t, -1, s.SouthWest.Lng, 1e-9)
	assert.InDelta(t, 11, s.NorthEast.Lat, 1e-9)
	assert.InDelta(t, 11, s.NorthEast.Lng, 1e-9)

	same := r.Scaled(1)
	assert.Equal(t, r, same)
}

func TestRectContains(t *testing.T) {
	wrapped := Rect{SouthWest: Point{Lat: 0, Lng: 170}, NorthEast: Point{Lat: 10, Lng: -170}}
	assert.True(t, wrapped.Contains(Point{Lat: 5, Lng: 175}))
	assert.True(t, wrapped.Contains(Point{Lat: 5, Lng: -175}))
	assert.False(t, wrapped.Contains(Point{Lat: 5, Lng: 0}))
	assert.False(t, wrapped.Contains(Point{Lat: 15, Lng: 175}))
}

func TestLngLess(t *testing.T) {
	assert.True(t, LngLess(10, 20))
	assert.False(t, LngLess(20, 10))
	// shorter way from 170 to -170 goes east across the line
	assert.True(t, LngLess(170, -170))
	assert.False(t, LngLess(-170, 170))
}

func TestLngCenter(t *testing.T) {
	assert.InDelta(t, 15, LngCenter(10, 20), 1e-9)
	assert.InDelta(t, 180-360, LngCenter(170, -170), 1e-9)
}
