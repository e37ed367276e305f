package viewpoint

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/pspoerri/viewlink/internal/coord"
)

// Kind discriminates the map implementations an extent can be computed for.
type Kind int

const (
	KindNone Kind = iota
	KindPerspective
	KindPlanar
)

func (k Kind) String() string {
	switch k {
	case KindPerspective:
		return "perspective"
	case KindPlanar:
		return "planar"
	default:
		return "none"
	}
}

// ParseKind parses the textual map kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "perspective", "3d":
		return KindPerspective, nil
	case "planar", "2d", "oblique":
		return KindPlanar, nil
	case "", "none":
		return KindNone, nil
	default:
		return KindNone, fmt.Errorf("unknown map kind %q (want perspective, planar or none)", s)
	}
}

// View is the closed set of map contexts: PerspectiveView, PlanarView and NoView.
type View interface {
	Kind() Kind
	sealed()
}

// PerspectiveView belongs to a 3D map looking at the ground through a canvas.
// Viewport is nil when the canvas is not available.
type PerspectiveView struct {
	Viewport *ViewportSize
}

// PlanarView belongs to a 2D map that knows its axis aligned extent. Bounds are
// in the map's native projection and nil when the map cannot report them.
// A nil Projection means spherical Web Mercator.
type PlanarView struct {
	Bounds     *orb.Bound
	Projection coord.Projection
}

// NoView belongs to maps without any extent information.
type NoView struct{}

func (PerspectiveView) Kind() Kind { return KindPerspective }
func (PlanarView) Kind() Kind      { return KindPlanar }
func (NoView) Kind() Kind          { return KindNone }

func (PerspectiveView) sealed() {}
func (PlanarView) sealed()      {}
func (NoView) sealed()          {}
