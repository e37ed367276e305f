// Package extent estimates the visible ground footprint of a map view.
package extent

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Extent is either empty or a pair of corner points. The corners are not
// guaranteed to be min/max ordered.
type Extent struct {
	corners [2]orb.Point
	ok      bool
}

// Empty is the extent of a view whose footprint is unknown.
var Empty = Extent{}

// New returns the extent spanned by two corners.
func New(a, b orb.Point) Extent {
	return Extent{corners: [2]orb.Point{a, b}, ok: true}
}

// IsEmpty reports whether the extent carries no corners.
func (e Extent) IsEmpty() bool { return !e.ok }

// Corners returns both corners in order. Only meaningful for a non-empty extent.
func (e Extent) Corners() (orb.Point, orb.Point) {
	return e.corners[0], e.corners[1]
}

// Values flattens the corners to [x1, y1, x2, y2]. An empty extent yields an
// empty, non-nil slice.
func (e Extent) Values() []float64 {
	if !e.ok {
		return []float64{}
	}
	a, b := e.corners[0], e.corners[1]
	return []float64{a[0], a[1], b[0], b[1]}
}

// Bound returns the axis aligned bound covering both corners.
func (e Extent) Bound() orb.Bound {
	if !e.ok {
		return orb.Bound{}
	}
	return orb.Bound{Min: e.corners[0], Max: e.corners[0]}.Extend(e.corners[1])
}

// Map applies f to both corners.
func (e Extent) Map(f orb.Projection) Extent {
	if !e.ok {
		return e
	}
	return New(f(e.corners[0]), f(e.corners[1]))
}

func (e Extent) String() string {
	if !e.ok {
		return "[]"
	}
	a, b := e.corners[0], e.corners[1]
	return fmt.Sprintf("[%g, %g, %g, %g]", a[0], a[1], b[0], b[1])
}
