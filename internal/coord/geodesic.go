package coord

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// EarthRadius is the mean earth radius in meters used for spherical geodesy.
// Note that orb.EarthRadius is the WGS84 semi-major axis, not the mean radius.
const EarthRadius = 6371008.8

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// Destination returns the point reached by travelling distance meters from start
// along a great circle with the given initial bearing. The bearing is in radians,
// clockwise from true north. Longitude of the result is normalised to (-180, 180].
func Destination(start orb.Point, bearing, distance float64) orb.Point {
	if distance == 0 {
		return orb.Point{NormalizeLon(start[0]), start[1]}
	}

	lon1 := start[0] * degToRad
	lat1 := start[1] * degToRad
	delta := distance / EarthRadius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) +
		math.Cos(lat1)*math.Sin(delta)*math.Cos(bearing))
	// atan2 keeps the longitude well defined close to the poles.
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	return orb.Point{NormalizeLon(lon2 * radToDeg), lat2 * radToDeg}
}

// Distance returns the great-circle distance in meters between two points
// using the haversine formula on a sphere of EarthRadius.
func Distance(from, to orb.Point) float64 {
	dLat := (to[1] - from[1]) * degToRad
	dLon := (to[0] - from[0]) * degToRad

	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)
	a := sLat*sLat + math.Cos(from[1]*degToRad)*math.Cos(to[1]*degToRad)*sLon*sLon

	return 2 * EarthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Bearing returns the initial great-circle bearing from one point to another
// in radians, clockwise from true north, in [0, 2π).
func Bearing(from, to orb.Point) float64 {
	b := geo.Bearing(from, to) * degToRad
	if b < 0 {
		b += 2 * math.Pi
	}
	return b
}

// NormalizeLon wraps a longitude in degrees into (-180, 180].
// Values already inside the range are returned unchanged.
func NormalizeLon(lon float64) float64 {
	if lon > -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon <= 0 {
		lon += 360
	}
	return lon - 180
}
