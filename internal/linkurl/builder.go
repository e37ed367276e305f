// Package linkurl builds shareable URLs describing the active map's viewpoint.
package linkurl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pspoerri/viewlink/internal/coord"
	"github.com/pspoerri/viewlink/internal/extent"
	"github.com/pspoerri/viewlink/internal/reproject"
	"github.com/pspoerri/viewlink/internal/template"
	"github.com/pspoerri/viewlink/internal/viewpoint"
)

// ErrNoViewpoint is returned when there is no active map or it cannot report a
// viewpoint. It is the only error Build returns.
var ErrNoViewpoint = errors.New("no active map or viewpoint")

// Engine substitutes placeholders in a template with attribute values.
type Engine interface {
	Substitute(tmpl string, attrs map[string]any) string
}

// Builder turns a map's viewpoint into a URL. It holds no per-call state and is
// safe for concurrent use.
type Builder struct {
	gateway *reproject.Gateway
	engine  Engine
	logger  *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithGateway shares a projection gateway, and its cache, between builders.
func WithGateway(g *reproject.Gateway) Option {
	return func(b *Builder) { b.gateway = g }
}

// WithEngine replaces the default placeholder engine.
func WithEngine(e Engine) Option {
	return func(b *Builder) { b.engine = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		engine: template.Engine{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.gateway == nil {
		b.gateway = reproject.NewGateway(reproject.WithLogger(b.logger))
	}
	return b
}

// Build substitutes the viewpoint of m into tmpl and returns the percent-encoded
// URL. Coordinates are reprojected when spec names a valid non-WGS84 projection;
// an invalid spec is logged and ignored.
func (b *Builder) Build(ctx context.Context, tmpl string, m viewpoint.Map, spec *reproject.Spec) (string, error) {
	attrs, err := b.Attributes(ctx, m, spec)
	if err != nil {
		return "", err
	}
	return EncodeURI(b.engine.Substitute(tmpl, attrs)), nil
}

// Attributes queries m and assembles the attribute set Build substitutes.
func (b *Builder) Attributes(ctx context.Context, m viewpoint.Map, spec *reproject.Spec) (Attributes, error) {
	if m == nil {
		return nil, ErrNoViewpoint
	}
	vp, err := m.Viewpoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoViewpoint, err)
	}
	if vp == nil {
		return nil, ErrNoViewpoint
	}

	view := m.View()
	e := ViewExtent(view, vp)
	ground, camera := vp.GroundPosition, vp.CameraPosition

	target := coord.WGS84
	if p := b.gateway.Resolve(spec); p != nil {
		target = p.EPSG()
		ground = transformed(p, ground)
		camera = transformed(p, camera)
		e = reproject.TransformExtent(p, e)
	}

	b.logger.Debug("viewpoint attributes",
		"map", viewKind(view).String(),
		"epsg", target,
		"extent", e.String())

	return NewAttributes(vp, ground, camera, e), nil
}

func transformed(p coord.Projection, pt *viewpoint.GeoPoint) *viewpoint.GeoPoint {
	if pt == nil {
		return nil
	}
	out := reproject.TransformPoint(p, *pt)
	return &out
}

// deref replaces pointer views by their values; a nil pointer is NoView.
func deref(view viewpoint.View) viewpoint.View {
	switch v := view.(type) {
	case nil:
		return viewpoint.NoView{}
	case *viewpoint.PerspectiveView:
		if v == nil {
			return viewpoint.NoView{}
		}
		return *v
	case *viewpoint.PlanarView:
		if v == nil {
			return viewpoint.NoView{}
		}
		return *v
	case *viewpoint.NoView:
		return viewpoint.NoView{}
	}
	return view
}

func viewKind(view viewpoint.View) viewpoint.Kind {
	return deref(view).Kind()
}

// ViewExtent selects the extent strategy for the map's view. Missing inputs,
// including a nil view, give an empty extent.
func ViewExtent(view viewpoint.View, vp *viewpoint.Viewpoint) extent.Extent {
	switch v := deref(view).(type) {
	case viewpoint.PerspectiveView:
		return extent.Perspective(v.Viewport, vp.Distance, vp.GroundPosition)
	case viewpoint.PlanarView:
		if v.Bounds == nil {
			return extent.Empty
		}
		return extent.Planar(*v.Bounds, v.Projection)
	default:
		return extent.Empty
	}
}
