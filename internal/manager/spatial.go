// Package manager owns the live world state: the current pilots and
// controllers, the spatial indexes over them, the reference dataset
// and the ingest loop keeping it all in sync with the network feed.
package manager

import (
	"github.com/tidwall/rtree"

	"github.com/viert/simwatch/internal/geo"
)

// pointIndex is an R-tree of point objects keyed by id. A mirror map
// keeps each id's coordinates so entries can be removed without
// knowing where they currently sit.
type pointIndex struct {
	tree   rtree.RTreeG[string]
	coords map[string][2]float64
}

func newPointIndex() *pointIndex {
	return &pointIndex{coords: map[string][2]float64{}}
}

func (ix *pointIndex) upsert(id string, p geo.Point) {
	ix.remove(id)
	at := [2]float64{p.Lng, p.Lat}
	ix.tree.Insert(at, at, id)
	ix.coords[id] = at
}

func (ix *pointIndex) remove(id string) {
	at, ok := ix.coords[id]
	if !ok {
		return
	}
	ix.tree.Delete(at, at, id)
	delete(ix.coords, id)
}

// search visits every id inside the rectangle, including across the
// antimeridian when it wraps.
func (ix *pointIndex) search(rect geo.Rect, visit func(id string)) {
	for _, env := range rect.Envelopes() {
		ix.tree.Search(env.Min, env.Max, func(min, max [2]float64, id string) bool {
			visit(id)
			return true
		})
	}
}

func (ix *pointIndex) len() int {
	return len(ix.coords)
}

// rectIndex is an R-tree of rectangle objects keyed by id. A wrapped
// rectangle is stored as two envelopes under the same id, so searches
// deduplicate by id.
type rectIndex struct {
	tree rtree.RTreeG[string]
}

func newRectIndex() *rectIndex {
	return &rectIndex{}
}

func (ix *rectIndex) insert(id string, rect geo.Rect) {
	for _, env := range rect.Envelopes() {
		ix.tree.Insert(env.Min, env.Max, id)
	}
}

// search visits every id whose rectangle intersects the given one,
// at most once each.
func (ix *rectIndex) search(rect geo.Rect, visit func(id string)) {
	seen := map[string]bool{}
	for _, env := range rect.Envelopes() {
		ix.tree.Search(env.Min, env.Max, func(min, max [2]float64, id string) bool {
			if !seen[id] {
				seen[id] = true
				visit(id)
			}
			return true
		})
	}
}
