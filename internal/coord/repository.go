package coord

import (
	"github.com/wroge/wgs84"
)

// epsgRepository is only read from; definitions parsed from proj4 strings are
// registered in their own repository.
var epsgRepository = wgs84.EPSG()

// crsProjection adapts a wgs84 coordinate reference system to Projection.
type crsProjection struct {
	code    int
	toWGS   func(a, b, c float64) (float64, float64, float64)
	fromWGS func(a, b, c float64) (float64, float64, float64)
}

func newCRSProjection(code int, toWGS, fromWGS func(a, b, c float64) (float64, float64, float64)) *crsProjection {
	return &crsProjection{code: code, toWGS: toWGS, fromWGS: fromWGS}
}

func (p *crsProjection) EPSG() int { return p.code }

func (p *crsProjection) ToWGS84(x, y float64) (lon, lat float64) {
	lon, lat, _ = p.toWGS(x, y, 0)
	return
}

func (p *crsProjection) FromWGS84(lon, lat float64) (x, y float64) {
	x, y, _ = p.fromWGS(lon, lat, 0)
	return
}

// repositoryProjection looks up code in the wgs84 EPSG repository.
func repositoryProjection(code int) Projection {
	crs := epsgRepository.Code(code)
	if crs == nil {
		return nil
	}
	lonLat := wgs84.WGS84().LonLat()
	return newCRSProjection(code,
		wgs84.Transform(crs, lonLat),
		wgs84.Transform(lonLat, crs),
	)
}

// recoded reports a different EPSG code for an existing projection, e.g. a
// proj4 definition of Web Mercator registered under EPSG:900913.
type recoded struct {
	Projection
	code int
}

func (r *recoded) EPSG() int { return r.code }

func withCode(p Projection, code int) Projection {
	if p.EPSG() == code {
		return p
	}
	return &recoded{Projection: p, code: code}
}
