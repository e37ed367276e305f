package coord

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wroge/wgs84"
)

// ErrUnsupportedProj4 is returned for proj4 definitions that parse but describe
// a projection or datum this package cannot evaluate.
var ErrUnsupportedProj4 = errors.New("unsupported proj4 definition")

// spheroid implements wgs84.Spheroid from semi-major axis and inverse flattening.
type spheroid struct {
	a, fi float64
}

func (s spheroid) A() float64  { return s.a }
func (s spheroid) Fi() float64 { return s.fi }

var ellipsoids = map[string]spheroid{
	"WGS84":  {a: 6378137, fi: 298.257223563},
	"GRS80":  {a: 6378137, fi: 298.257222101},
	"intl":   {a: 6378388, fi: 297},
	"bessel": {a: 6377397.155, fi: 299.1528128},
	"clrk66": {a: 6378206.4, fi: 294.9786982},
}

// Swiss oblique mercator origin (Bern) as written in the EPSG:2056 definition.
const (
	swissLat0 = 46.9524055555556
	swissLon0 = 7.43958333333333
)

// proj4Params holds the +key=value pairs of a proj4 definition.
type proj4Params map[string]string

func parseProj4Params(def string) (proj4Params, error) {
	params := proj4Params{}
	for _, tok := range strings.Fields(def) {
		if !strings.HasPrefix(tok, "+") || len(tok) == 1 {
			return nil, fmt.Errorf("proj4 token %q: expected +key[=value]", tok)
		}
		key, value, _ := strings.Cut(tok[1:], "=")
		params[key] = value
	}
	if params["proj"] == "" {
		return nil, errors.New("proj4 definition has no +proj")
	}
	return params, nil
}

func (p proj4Params) float(key string, def float64) (float64, error) {
	s, ok := p[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("proj4 +%s=%q: %w", key, s, err)
	}
	return v, nil
}

// spheroid resolves +ellps, +datum, +a/+b/+rf and +R. Spheres report fi == 0.
func (p proj4Params) spheroid() (spheroid, error) {
	if datum, ok := p["datum"]; ok && datum != "WGS84" {
		return spheroid{}, fmt.Errorf("%w: datum %q", ErrUnsupportedProj4, datum)
	}
	s := ellipsoids["WGS84"]
	if name, ok := p["ellps"]; ok {
		e, found := ellipsoids[name]
		if !found {
			return spheroid{}, fmt.Errorf("%w: ellipsoid %q", ErrUnsupportedProj4, name)
		}
		s = e
	}
	if _, ok := p["R"]; ok {
		r, err := p.float("R", 0)
		if err != nil {
			return spheroid{}, err
		}
		return spheroid{a: r}, nil
	}
	if _, ok := p["a"]; ok {
		a, err := p.float("a", 0)
		if err != nil {
			return spheroid{}, err
		}
		s = spheroid{a: a}
		switch {
		case p["rf"] != "":
			if s.fi, err = p.float("rf", 0); err != nil {
				return spheroid{}, err
			}
		case p["b"] != "":
			b, err := p.float("b", 0)
			if err != nil {
				return spheroid{}, err
			}
			if b != a {
				s.fi = a / (a - b)
			}
		}
	}
	return s, nil
}

// checkDatumShift rejects definitions that need a datum shift to reach WGS84.
func (p proj4Params) checkDatumShift() error {
	if tw, ok := p["towgs84"]; ok {
		for _, v := range strings.Split(tw, ",") {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("proj4 +towgs84=%q: %w", tw, err)
			}
			if f != 0 {
				return fmt.Errorf("%w: datum shift +towgs84=%s", ErrUnsupportedProj4, tw)
			}
		}
	}
	if grids, ok := p["nadgrids"]; ok && grids != "@null" {
		return fmt.Errorf("%w: grid shift +nadgrids=%s", ErrUnsupportedProj4, grids)
	}
	if units, ok := p["units"]; ok && units != "m" {
		return fmt.Errorf("%w: units %q", ErrUnsupportedProj4, units)
	}
	return nil
}

// ParseProj4 builds a Projection registered under code from a proj4 definition.
// Supported: longlat, spherical merc (Web Mercator), tmerc, utm and the Swiss
// LV95 somerc definition.
func ParseProj4(def string, code int) (Projection, error) {
	if code <= 0 {
		return nil, fmt.Errorf("proj4 definition needs a positive EPSG code, got %d", code)
	}
	params, err := parseProj4Params(def)
	if err != nil {
		return nil, err
	}
	// The LV95 polynomials already contain the Bessel to WGS84 shift.
	if params["proj"] != "somerc" {
		if err := params.checkDatumShift(); err != nil {
			return nil, err
		}
	}
	sph, err := params.spheroid()
	if err != nil {
		return nil, err
	}

	switch proj := params["proj"]; proj {
	case "longlat", "latlong", "lonlat", "latlon":
		if sph.fi == 0 {
			return nil, fmt.Errorf("%w: spherical longlat", ErrUnsupportedProj4)
		}
		return withCode(&WGS84Identity{}, code), nil

	case "merc":
		return parseMercator(params, sph, code)

	case "tmerc":
		lon0, lat0, k, x0, y0, err := params.transverse()
		if err != nil {
			return nil, err
		}
		return transverseMercator(sph, code, lon0, lat0, k, x0, y0)

	case "utm":
		zone, err := strconv.Atoi(params["zone"])
		if err != nil || zone < 1 || zone > 60 {
			return nil, fmt.Errorf("proj4 +zone=%q: must be 1-60", params["zone"])
		}
		northing := 0.0
		if _, south := params["south"]; south {
			northing = 10000000
		}
		return transverseMercator(sph, code, float64(zone*6-183), 0, 0.9996, 500000, northing)

	case "somerc":
		lon0, lat0, _, x0, y0, err := params.transverse()
		if err != nil {
			return nil, err
		}
		if math.Abs(lat0-swissLat0) > 1e-9 || math.Abs(lon0-swissLon0) > 1e-9 || x0 != 2600000 || y0 != 1200000 {
			return nil, fmt.Errorf("%w: somerc is only available for LV95", ErrUnsupportedProj4)
		}
		return withCode(&SwissLV95{}, code), nil

	default:
		return nil, fmt.Errorf("%w: +proj=%s", ErrUnsupportedProj4, proj)
	}
}

func (p proj4Params) transverse() (lon0, lat0, k, x0, y0 float64, err error) {
	if lon0, err = p.float("lon_0", 0); err != nil {
		return
	}
	if lat0, err = p.float("lat_0", 0); err != nil {
		return
	}
	if k, err = p.float("k_0", 1); err != nil {
		return
	}
	if _, ok := p["k"]; ok {
		if k, err = p.float("k", 1); err != nil {
			return
		}
	}
	if x0, err = p.float("x_0", 0); err != nil {
		return
	}
	y0, err = p.float("y_0", 0)
	return
}

// parseMercator accepts the spherical (pseudo) Mercator used by web maps.
func parseMercator(params proj4Params, sph spheroid, code int) (Projection, error) {
	_, nullGrid := params["nadgrids"]
	if sph.fi != 0 && !nullGrid {
		return nil, fmt.Errorf("%w: ellipsoidal mercator", ErrUnsupportedProj4)
	}
	if sph.a != 6378137 {
		return nil, fmt.Errorf("%w: mercator sphere radius %v", ErrUnsupportedProj4, sph.a)
	}
	for _, key := range []string{"lon_0", "lat_ts", "x_0", "y_0"} {
		if v, err := params.float(key, 0); err != nil {
			return nil, err
		} else if v != 0 {
			return nil, fmt.Errorf("%w: mercator +%s=%v", ErrUnsupportedProj4, key, v)
		}
	}
	if k, err := params.float("k", 1); err != nil {
		return nil, err
	} else if k != 1 {
		return nil, fmt.Errorf("%w: mercator +k=%v", ErrUnsupportedProj4, k)
	}
	return withCode(&WebMercatorProj{}, code), nil
}

func transverseMercator(sph spheroid, code int, lon0, lat0, k, x0, y0 float64) (Projection, error) {
	if sph.fi == 0 {
		return nil, fmt.Errorf("%w: spherical transverse mercator", ErrUnsupportedProj4)
	}
	datum := wgs84.Datum{
		Spheroid: sph,
		Area: wgs84.AreaFunc(func(lon, lat float64) bool {
			return true
		}),
	}
	tm := datum.TransverseMercator(lon0, lat0, k, x0, y0)

	repo := wgs84.EPSG()
	repo.Add(code, tm)
	crs := repo.Code(code)
	lonLat := wgs84.WGS84().LonLat()
	return newCRSProjection(code,
		wgs84.Transform(crs, lonLat),
		wgs84.Transform(lonLat, crs),
	), nil
}
