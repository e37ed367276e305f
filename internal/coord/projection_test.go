package coord

import (
	"math"
	"testing"
)

func TestForEPSG(t *testing.T) {
	tests := []struct {
		epsg     int
		wantNil  bool
		wantEPSG int
	}{
		{2056, false, 2056},
		{4326, false, 4326},
		{3857, false, 3857},
		{900913, false, 3857},
		{25832, false, 25832}, // ETRS89 / UTM 32N from the wgs84 repository
		{999999, true, 0},
		{0, true, 0},
		{-1, true, 0},
	}
	for _, tt := range tests {
		p := ForEPSG(tt.epsg)
		if tt.wantNil {
			if p != nil {
				t.Errorf("ForEPSG(%d) = %v, want nil", tt.epsg, p)
			}
			continue
		}
		if p == nil {
			t.Fatalf("ForEPSG(%d) = nil, want non-nil", tt.epsg)
		}
		if got := p.EPSG(); got != tt.wantEPSG {
			t.Errorf("ForEPSG(%d).EPSG() = %d, want %d", tt.epsg, got, tt.wantEPSG)
		}
	}
}

func TestWGS84Identity(t *testing.T) {
	w := &WGS84Identity{}

	if w.EPSG() != WGS84 {
		t.Errorf("WGS84Identity.EPSG() = %d, want 4326", w.EPSG())
	}

	lon, lat := 13.405, 52.52 // Berlin
	gotLon, gotLat := w.ToWGS84(lon, lat)
	if gotLon != lon || gotLat != lat {
		t.Errorf("ToWGS84(%v, %v) = (%v, %v), want (%v, %v)", lon, lat, gotLon, gotLat, lon, lat)
	}

	gotLon, gotLat = w.FromWGS84(lon, lat)
	if gotLon != lon || gotLat != lat {
		t.Errorf("FromWGS84(%v, %v) = (%v, %v), want (%v, %v)", lon, lat, gotLon, gotLat, lon, lat)
	}
}

// TestProjectionRoundTrip verifies that ToWGS84(FromWGS84(lon, lat)) ≈ (lon, lat) for all projections.
func TestProjectionRoundTrip(t *testing.T) {
	// Points inside Switzerland are valid for LV95 and for UTM 32N.
	points := [][2]float64{
		{8.5417, 47.3769}, // Zurich
		{6.6323, 46.5197}, // Lausanne
		{7.4474, 46.9480}, // Bern
		{9.3767, 47.4245}, // St. Gallen
		{8.9511, 46.0037}, // Lugano
	}

	projections := []Projection{
		&WGS84Identity{},
		&WebMercatorProj{},
		&SwissLV95{},
		ForEPSG(25832),
	}

	for _, proj := range projections {
		for _, pt := range points {
			lon, lat := pt[0], pt[1]

			x, y := proj.FromWGS84(lon, lat)
			gotLon, gotLat := proj.ToWGS84(x, y)

			// SwissLV95 uses polynomial approximation, so allow ~1m error (~0.00001°).
			tol := 1e-4
			if dLon := math.Abs(gotLon - lon); dLon > tol {
				t.Errorf("EPSG:%d roundtrip lon for (%.4f, %.4f): got %.6f, want %.6f (delta=%.2e)",
					proj.EPSG(), lon, lat, gotLon, lon, dLon)
			}
			if dLat := math.Abs(gotLat - lat); dLat > tol {
				t.Errorf("EPSG:%d roundtrip lat for (%.4f, %.4f): got %.6f, want %.6f (delta=%.2e)",
					proj.EPSG(), lon, lat, gotLat, lat, dLat)
			}
		}
	}
}

func TestRepositoryProjection_UTM32N(t *testing.T) {
	p := ForEPSG(25832)
	if p == nil {
		t.Fatal("ForEPSG(25832) = nil")
	}
	// Central meridian of zone 32 is 9°E: easting is the false easting there.
	x, y := p.FromWGS84(9, 0)
	if math.Abs(x-500000) > 0.01 || math.Abs(y) > 0.01 {
		t.Errorf("FromWGS84(9, 0) = (%.3f, %.3f), want (500000, 0)", x, y)
	}
}

func TestWithCode(t *testing.T) {
	wm := &WebMercatorProj{}
	if got := withCode(wm, 3857); got != Projection(wm) {
		t.Errorf("withCode with same code should return the projection unchanged")
	}
	p := withCode(wm, 900913)
	if p.EPSG() != 900913 {
		t.Errorf("withCode(...).EPSG() = %d, want 900913", p.EPSG())
	}
	x, y := p.FromWGS84(10, 20)
	wx, wy := wm.FromWGS84(10, 20)
	if x != wx || y != wy {
		t.Errorf("recoded FromWGS84 = (%v, %v), want (%v, %v)", x, y, wx, wy)
	}
}
