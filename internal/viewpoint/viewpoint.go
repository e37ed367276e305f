// Package viewpoint models the camera state reported by the active map and the
// kind-specific view context an extent can be derived from.
package viewpoint

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// GeoPoint is a longitude/latitude pair in degrees with an optional height in meters.
type GeoPoint struct {
	Lon, Lat  float64
	Height    float64
	HasHeight bool
}

// Pt returns a two dimensional GeoPoint.
func Pt(lon, lat float64) GeoPoint {
	return GeoPoint{Lon: lon, Lat: lat}
}

// PtZ returns a GeoPoint carrying a height.
func PtZ(lon, lat, height float64) GeoPoint {
	return GeoPoint{Lon: lon, Lat: lat, Height: height, HasHeight: true}
}

// Point drops the height.
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// WithPoint returns a copy of p at a new horizontal position, keeping the height.
func (p GeoPoint) WithPoint(pt orb.Point) GeoPoint {
	p.Lon, p.Lat = pt[0], pt[1]
	return p
}

// Coords returns [lon, lat] or [lon, lat, height].
func (p GeoPoint) Coords() []float64 {
	if p.HasHeight {
		return []float64{p.Lon, p.Lat, p.Height}
	}
	return []float64{p.Lon, p.Lat}
}

func (p GeoPoint) String() string {
	if p.HasHeight {
		return fmt.Sprintf("(%g, %g, %g)", p.Lon, p.Lat, p.Height)
	}
	return fmt.Sprintf("(%g, %g)", p.Lon, p.Lat)
}

// UnmarshalYAML decodes a 2 or 3 element number sequence.
func (p *GeoPoint) UnmarshalYAML(value *yaml.Node) error {
	var coords []float64
	if err := value.Decode(&coords); err != nil {
		return fmt.Errorf("line %d: position: %w", value.Line, err)
	}
	switch len(coords) {
	case 2:
		*p = Pt(coords[0], coords[1])
	case 3:
		*p = PtZ(coords[0], coords[1], coords[2])
	default:
		return fmt.Errorf("line %d: position needs 2 or 3 coordinates, got %d", value.Line, len(coords))
	}
	return nil
}

// Viewpoint is a snapshot of a map camera. Every field is optional.
// Angles are radians, distance is meters to the ground.
type Viewpoint struct {
	GroundPosition *GeoPoint `yaml:"groundPosition"`
	CameraPosition *GeoPoint `yaml:"cameraPosition"`
	Distance       *float64  `yaml:"distance"`
	Heading        *float64  `yaml:"heading"`
	Pitch          *float64  `yaml:"pitch"`
	Roll           *float64  `yaml:"roll"`
}

// ViewportSize is the size of a perspective map's canvas in device pixels.
type ViewportSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Map is the active map as seen by a link builder.
type Map interface {
	// Viewpoint queries the current camera state. A nil viewpoint without an
	// error means the map has none to offer.
	Viewpoint(ctx context.Context) (*Viewpoint, error)

	// View describes what the map can tell about its visible ground footprint.
	View() View
}

// Float returns a pointer to v, for building viewpoints in code.
func Float(v float64) *float64 {
	return &v
}
