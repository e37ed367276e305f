package coord

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	// EarthCircumference is the Web Mercator equatorial circumference in meters.
	EarthCircumference = 40075016.685578488
	// OriginShift is half the earth's circumference.
	OriginShift = EarthCircumference / 2.0
)

// WebMercatorProj implements the Projection interface for EPSG:3857.
type WebMercatorProj struct{}

func (w *WebMercatorProj) EPSG() int { return 3857 }

func (w *WebMercatorProj) ToWGS84(x, y float64) (lon, lat float64) {
	p := project.Mercator.ToWGS84(orb.Point{x, y})
	return p[0], p[1]
}

// FromWGS84 projects lon/lat to Web Mercator; y is clamped to the square world.
func (w *WebMercatorProj) FromWGS84(lon, lat float64) (x, y float64) {
	p := project.WGS84.ToMercator(orb.Point{lon, lat})
	return p[0], p[1]
}
