package reproject

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspoerri/viewlink/internal/extent"
	"github.com/pspoerri/viewlink/internal/viewpoint"
)

func newTestGateway(t *testing.T) (*Gateway, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewGateway(WithLogger(logger)), &buf
}

func TestParseEPSG(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"EPSG:25832", 25832, true},
		{"epsg:3857", 3857, true},
		{" 4326 ", 4326, true},
		{"2056", 2056, true},
		{"", 0, false},
		{"EPSG:", 0, false},
		{"EPSG:abc", 0, false},
		{"CRS:84", 0, false},
		{"-5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseEPSG(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestGateway_Validate(t *testing.T) {
	g, _ := newTestGateway(t)

	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"wgs84", Spec{EPSG: "EPSG:4326"}, true},
		{"web mercator", Spec{EPSG: "3857"}, true},
		{"swiss", Spec{EPSG: "EPSG:2056"}, true},
		{"repository", Spec{EPSG: "EPSG:25832"}, true},
		{"proj4", Spec{EPSG: "EPSG:5186", Proj4: "+proj=tmerc +lat_0=38 +lon_0=127 +k=1 +x_0=200000 +y_0=600000 +ellps=GRS80 +units=m +no_defs"}, true},
		{"zero", Spec{}, false},
		{"proj4 without code", Spec{Proj4: "+proj=longlat +datum=WGS84"}, false},
		{"unknown code", Spec{EPSG: "EPSG:999999"}, false},
		{"garbage code", Spec{EPSG: "mercator"}, false},
		{"broken proj4", Spec{EPSG: "EPSG:5186", Proj4: "tmerc"}, false},
		{"unsupported proj4", Spec{EPSG: "EPSG:2154", Proj4: "+proj=lcc +lat_1=49 +lat_2=44"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Validate(tt.spec))
		})
	}
}

func TestGateway_ResolveIdentity(t *testing.T) {
	g, logs := newTestGateway(t)

	assert.Nil(t, g.Resolve(nil))
	assert.Nil(t, g.Resolve(&Spec{}))
	assert.Nil(t, g.Resolve(&Spec{EPSG: "EPSG:4326"}))
	assert.Nil(t, g.Resolve(&Spec{EPSG: "4326", Proj4: "+proj=longlat +datum=WGS84 +no_defs"}))
	assert.Empty(t, logs.String(), "identity specs must not warn")
}

func TestGateway_ResolveInvalidWarns(t *testing.T) {
	g, logs := newTestGateway(t)

	assert.Nil(t, g.Resolve(&Spec{EPSG: "EPSG:999999"}))
	out := logs.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "projection not valid")
	assert.Contains(t, out, "epsg=EPSG:999999")
}

func TestGateway_ResolveCached(t *testing.T) {
	g, _ := newTestGateway(t)

	spec := &Spec{EPSG: "EPSG:3857"}
	first := g.Resolve(spec)
	require.NotNil(t, first)
	assert.Equal(t, 3857, first.EPSG())

	second := g.Resolve(&Spec{EPSG: "EPSG:3857"})
	assert.Same(t, first, second)
	assert.Equal(t, 1, g.cache.Len())

	// Whitespace differences in proj4 hit the same entry.
	a := g.Resolve(&Spec{EPSG: "900913", Proj4: "+proj=merc +a=6378137 +b=6378137 +nadgrids=@null"})
	b := g.Resolve(&Spec{EPSG: "900913", Proj4: " +proj=merc  +a=6378137 +b=6378137 +nadgrids=@null "})
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, 900913, a.EPSG())
}

// TestTransform_RoundTrip composes each transform with its inverse.
func TestTransform_RoundTrip(t *testing.T) {
	g, _ := newTestGateway(t)

	specs := []Spec{
		{EPSG: "EPSG:3857"},
		{EPSG: "EPSG:2056"},
		{EPSG: "EPSG:25832"},
		{EPSG: "EPSG:32632", Proj4: "+proj=utm +zone=32 +datum=WGS84 +units=m +no_defs"},
	}
	points := []viewpoint.GeoPoint{
		viewpoint.Pt(8.5417, 47.3769),
		viewpoint.PtZ(7.4474, 46.9480, 540),
		viewpoint.Pt(9.3767, 47.4245),
	}

	for _, spec := range specs {
		p := g.Resolve(&spec)
		require.NotNil(t, p, spec.EPSG)
		for _, pt := range points {
			projected := TransformPoint(p, pt)
			assert.NotEqual(t, pt.Lon, projected.Lon, "%s should move the point", spec.EPSG)
			assert.Equal(t, pt.HasHeight, projected.HasHeight)
			assert.Equal(t, pt.Height, projected.Height)

			back := InversePoint(p, projected)
			assert.InDelta(t, pt.Lon, back.Lon, 1e-4, spec.EPSG)
			assert.InDelta(t, pt.Lat, back.Lat, 1e-4, spec.EPSG)
		}
	}
}

func TestTransformExtent(t *testing.T) {
	g, _ := newTestGateway(t)
	p := g.Resolve(&Spec{EPSG: "EPSG:3857"})
	require.NotNil(t, p)

	e := extent.New(orb.Point{0, 0}, orb.Point{180, 0})
	got := TransformExtent(p, e).Values()
	require.Len(t, got, 4)
	assert.InDelta(t, 0, got[0], 1e-6)
	assert.InDelta(t, 20037508.34, got[2], 0.01)

	assert.True(t, TransformExtent(p, extent.Empty).IsEmpty())
	assert.Equal(t, e, TransformExtent(nil, e))
}

func TestTransformPoint_NilIsIdentity(t *testing.T) {
	pt := viewpoint.PtZ(13.405, 52.52, 34)
	assert.Equal(t, pt, TransformPoint(nil, pt))
	assert.Equal(t, pt, InversePoint(nil, pt))
	assert.False(t, math.IsNaN(TransformPoint(nil, pt).Lon))
}
