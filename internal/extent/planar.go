package extent

import (
	"github.com/paulmach/orb"

	"github.com/pspoerri/viewlink/internal/coord"
)

// Planar converts the axis aligned bounds of a 2D map, given in the source
// projection, to WGS84. Corner order is preserved: (minX, minY) first.
// A nil source means spherical Web Mercator.
func Planar(bounds orb.Bound, source coord.Projection) Extent {
	if source == nil {
		source = &coord.WebMercatorProj{}
	}
	toWGS84 := func(p orb.Point) orb.Point {
		lon, lat := source.ToWGS84(p[0], p[1])
		return orb.Point{lon, lat}
	}
	return New(bounds.Min, bounds.Max).Map(toWGS84)
}
