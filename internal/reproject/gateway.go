package reproject

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jellydator/ttlcache/v3"
	"github.com/paulmach/orb"

	"github.com/pspoerri/viewlink/internal/coord"
	"github.com/pspoerri/viewlink/internal/extent"
	"github.com/pspoerri/viewlink/internal/viewpoint"
)

// ErrInvalidProjection is the cause reported when a Spec cannot be resolved.
// It never escapes Resolve; callers fall back to WGS84.
var ErrInvalidProjection = errors.New("projection not valid")

// DefaultCacheCapacity bounds the number of distinct specs kept parsed.
const DefaultCacheCapacity = 64

type resolved struct {
	proj coord.Projection
	err  error
}

// Gateway validates Specs and hands out projections for them. Parsed specs are
// memoised; a Gateway is safe for concurrent use.
type Gateway struct {
	logger   *slog.Logger
	capacity uint64
	cache    *ttlcache.Cache[string, resolved]
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger receiving invalid projection warnings.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithCacheCapacity sets how many parsed specs are kept.
func WithCacheCapacity(n uint64) Option {
	return func(g *Gateway) { g.capacity = n }
}

func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		logger:   slog.Default(),
		capacity: DefaultCacheCapacity,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.cache = ttlcache.New(
		ttlcache.WithCapacity[string, resolved](g.capacity),
	)
	return g
}

// Validate reports whether spec names a usable projection: the EPSG code must
// parse, and either the proj4 definition must parse or the code must be known.
// It says nothing about the geodetic accuracy of the definition.
func (g *Gateway) Validate(spec Spec) bool {
	_, err := g.lookup(spec)
	return err == nil
}

// Resolve returns the projection to transform WGS84 coordinates into, or nil
// when coordinates should stay in WGS84. That is the case for a nil or zero
// spec, for WGS84 itself and for invalid specs, which are logged at warn level.
func (g *Gateway) Resolve(spec *Spec) coord.Projection {
	if spec == nil || spec.IsZero() {
		return nil
	}
	p, err := g.lookup(*spec)
	if err != nil {
		g.logger.Warn("projection not valid",
			"epsg", spec.EPSG,
			"proj4", spec.Proj4,
			"error", err)
		return nil
	}
	if p.EPSG() == coord.WGS84 {
		return nil
	}
	return p
}

func (g *Gateway) lookup(spec Spec) (coord.Projection, error) {
	key := spec.key()
	if item := g.cache.Get(key); item != nil {
		r := item.Value()
		return r.proj, r.err
	}
	p, err := parse(spec)
	g.cache.Set(key, resolved{proj: p, err: err}, ttlcache.DefaultTTL)
	return p, err
}

func parse(spec Spec) (coord.Projection, error) {
	code, ok := ParseEPSG(spec.EPSG)
	if !ok {
		return nil, fmt.Errorf("%w: epsg %q", ErrInvalidProjection, spec.EPSG)
	}
	if strings.TrimSpace(spec.Proj4) != "" {
		p, err := coord.ParseProj4(spec.Proj4, code)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProjection, err)
		}
		return p, nil
	}
	p := coord.ForEPSG(code)
	if p == nil {
		return nil, fmt.Errorf("%w: EPSG:%d is unknown, add a proj4 definition", ErrInvalidProjection, code)
	}
	return p, nil
}

// Forward returns p's WGS84 to CRS mapping as an orb.Projection.
// A nil p is the identity.
func Forward(p coord.Projection) orb.Projection {
	if p == nil {
		return func(pt orb.Point) orb.Point { return pt }
	}
	return func(pt orb.Point) orb.Point {
		x, y := p.FromWGS84(pt[0], pt[1])
		return orb.Point{x, y}
	}
}

// Inverse returns p's CRS to WGS84 mapping as an orb.Projection.
func Inverse(p coord.Projection) orb.Projection {
	if p == nil {
		return func(pt orb.Point) orb.Point { return pt }
	}
	return func(pt orb.Point) orb.Point {
		lon, lat := p.ToWGS84(pt[0], pt[1])
		return orb.Point{lon, lat}
	}
}

// TransformPoint moves a WGS84 position into p. Height is passed through.
func TransformPoint(p coord.Projection, pt viewpoint.GeoPoint) viewpoint.GeoPoint {
	return pt.WithPoint(Forward(p)(pt.Point()))
}

// InversePoint moves a position in p back to WGS84. Height is passed through.
func InversePoint(p coord.Projection, pt viewpoint.GeoPoint) viewpoint.GeoPoint {
	return pt.WithPoint(Inverse(p)(pt.Point()))
}

// TransformExtent moves both corners of a WGS84 extent into p.
func TransformExtent(p coord.Projection, e extent.Extent) extent.Extent {
	return e.Map(Forward(p))
}
