package extent

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspoerri/viewlink/internal/coord"
	"github.com/pspoerri/viewlink/internal/viewpoint"
)

func TestPerspectiveFootprint_FullHD(t *testing.T) {
	fp := PerspectiveFootprint(500, 1920.0/1080.0)

	assert.InDelta(t, 577.35, fp.Width, 0.01)
	assert.InDelta(t, 324.76, fp.Height, 0.01)
	assert.InDelta(t, 662.42, fp.Diagonal, 0.01)
	assert.InDelta(t, math.Pi/2-math.Atan2(fp.Height, fp.Width), fp.Bearing, 1e-12)
}

func TestPerspective_Corners(t *testing.T) {
	center := viewpoint.Pt(13.405, 52.52)
	e := Perspective(&viewpoint.ViewportSize{Width: 1920, Height: 1080}, viewpoint.Float(500), &center)
	require.False(t, e.IsEmpty())

	sw, ne := e.Corners()
	fp := PerspectiveFootprint(500, 1920.0/1080.0)

	// Both corners lie half the diagonal away from the center.
	assert.InDelta(t, 331.2, coord.Distance(center.Point(), sw), 0.1)
	assert.InDelta(t, 331.2, coord.Distance(center.Point(), ne), 0.1)

	// Along the two diagonal bearings.
	assert.InDelta(t, fp.Bearing+math.Pi, coord.Bearing(center.Point(), sw), 1e-6)
	assert.InDelta(t, fp.Bearing, coord.Bearing(center.Point(), ne), 1e-6)

	// For a small footprint the first corner is south-west of the second.
	assert.Less(t, sw[0], ne[0])
	assert.Less(t, sw[1], ne[1])
	assert.Len(t, e.Values(), 4)
}

func TestPerspective_MissingInputs(t *testing.T) {
	center := viewpoint.Pt(13.405, 52.52)
	vp := &viewpoint.ViewportSize{Width: 800, Height: 600}
	d := viewpoint.Float(1000)

	tests := []struct {
		name     string
		viewport *viewpoint.ViewportSize
		distance *float64
		center   *viewpoint.GeoPoint
		empty    bool
	}{
		{"complete", vp, d, &center, false},
		{"no viewport", nil, d, &center, true},
		{"no distance", vp, nil, &center, true},
		{"no center", vp, d, nil, true},
		{"zero height", &viewpoint.ViewportSize{Width: 800}, d, &center, true},
		{"zero width", &viewpoint.ViewportSize{Height: 600}, d, &center, true},
		{"portrait", &viewpoint.ViewportSize{Width: 600, Height: 800}, d, &center, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Perspective(tt.viewport, tt.distance, tt.center)
			assert.Equal(t, tt.empty, e.IsEmpty())
			if tt.empty {
				assert.Equal(t, []float64{}, e.Values())
			}
		})
	}
}

func TestPlanar_WebMercator(t *testing.T) {
	b := orb.Bound{
		Min: orb.Point{1490000, 6890000},
		Max: orb.Point{1495000, 6899000},
	}
	e := Planar(b, nil)
	require.False(t, e.IsEmpty())

	lo, hi := e.Corners()
	wm := &coord.WebMercatorProj{}
	wantLon, wantLat := wm.ToWGS84(1490000, 6890000)
	assert.InDelta(t, wantLon, lo[0], 1e-12)
	assert.InDelta(t, wantLat, lo[1], 1e-12)
	assert.Less(t, lo[0], hi[0])
	assert.Less(t, lo[1], hi[1])
	assert.InDelta(t, 13.38, lo[0], 0.01)
	assert.InDelta(t, 52.49, lo[1], 0.01)
}

func TestPlanar_WholeWorld(t *testing.T) {
	b := orb.Bound{
		Min: orb.Point{-coord.OriginShift, -coord.OriginShift},
		Max: orb.Point{coord.OriginShift, coord.OriginShift},
	}
	assert.InDeltaSlice(t, []float64{-180, -85.0511, 180, 85.0511}, Planar(b, nil).Values(), 1e-4)
}

func TestPlanar_SwissSource(t *testing.T) {
	b := orb.Bound{
		Min: orb.Point{2600000, 1200000},
		Max: orb.Point{2683474, 1247862},
	}
	lo, hi := Planar(b, &coord.SwissLV95{}).Corners()
	assert.InDelta(t, 7.4386, lo[0], 0.001)
	assert.InDelta(t, 46.9511, lo[1], 0.001)
	assert.InDelta(t, 8.5417, hi[0], 0.005)
	assert.InDelta(t, 47.3769, hi[1], 0.005)
}

func TestExtent_Empty(t *testing.T) {
	assert.True(t, Empty.IsEmpty())
	assert.NotNil(t, Empty.Values())
	assert.Empty(t, Empty.Values())
	assert.Equal(t, "[]", Empty.String())
	assert.Equal(t, Empty, Empty.Map(func(p orb.Point) orb.Point { return orb.Point{1, 1} }))
}

func TestExtent_Bound(t *testing.T) {
	e := New(orb.Point{3, 1}, orb.Point{1, 4})
	assert.Equal(t, orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{3, 4}}, e.Bound())
	assert.Equal(t, []float64{3, 1, 1, 4}, e.Values())
	assert.Equal(t, "[3, 1, 1, 4]", e.String())
}

func TestPerspective_ZeroDistance(t *testing.T) {
	center := viewpoint.Pt(13.405, 52.52)
	e := Perspective(&viewpoint.ViewportSize{Width: 1920, Height: 1080}, viewpoint.Float(0), &center)
	require.False(t, e.IsEmpty())

	a, b := e.Corners()
	assert.InDelta(t, center.Lon, a[0], 1e-12)
	assert.InDelta(t, center.Lat, a[1], 1e-12)
	assert.Equal(t, a, b)
}
