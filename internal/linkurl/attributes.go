package linkurl

import (
	"github.com/pspoerri/viewlink/internal/extent"
	"github.com/pspoerri/viewlink/internal/viewpoint"
)

// Attribute names available to templates.
const (
	AttrGroundPosition = "groundPosition"
	AttrCameraPosition = "cameraPosition"
	AttrDistance       = "distance"
	AttrHeading        = "heading"
	AttrPitch          = "pitch"
	AttrRoll           = "roll"
	AttrExtent         = "extent"
)

// Attributes maps placeholder names to values. Positions and the extent are
// []float64, scalars are float64. An absent viewpoint field has no key at all,
// while the extent is always present and an empty sequence when unknown.
type Attributes map[string]any

// NewAttributes assembles the attribute set from already transformed values.
func NewAttributes(vp *viewpoint.Viewpoint, ground, camera *viewpoint.GeoPoint, e extent.Extent) Attributes {
	attrs := Attributes{AttrExtent: e.Values()}
	if ground != nil {
		attrs[AttrGroundPosition] = ground.Coords()
	}
	if camera != nil {
		attrs[AttrCameraPosition] = camera.Coords()
	}
	for name, v := range map[string]*float64{
		AttrDistance: vp.Distance,
		AttrHeading:  vp.Heading,
		AttrPitch:    vp.Pitch,
		AttrRoll:     vp.Roll,
	} {
		if v != nil {
			attrs[name] = *v
		}
	}
	return attrs
}
