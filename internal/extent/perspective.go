package extent

import (
	"math"

	"github.com/pspoerri/viewlink/internal/coord"
	"github.com/pspoerri/viewlink/internal/viewpoint"
)

// HorizontalFOV is the horizontal angle of view assumed for perspective maps.
// It is a fixed estimate, not the camera's actual field of view.
const HorizontalFOV = math.Pi / 3.0

// Footprint describes the ground rectangle seen by a level camera.
type Footprint struct {
	Width, Height float64 // meters
	Diagonal      float64 // meters
	Bearing       float64 // radians from north towards the north-east corner
}

// PerspectiveFootprint computes the footprint of a camera distance meters above
// the ground with the given canvas aspect ratio (width / height).
func PerspectiveFootprint(distance, aspect float64) Footprint {
	w := 2 * math.Tan(HorizontalFOV/2) * distance
	h := w / aspect
	return Footprint{
		Width:    w,
		Height:   h,
		Diagonal: math.Sqrt(w*w + h*h),
		Bearing:  math.Pi/2 - math.Atan2(h, w),
	}
}

// Perspective estimates two opposite corners of the ground area visible from a
// perspective camera looking straight down at center. Pitch and roll are
// ignored: the result is the fixed-FOV rectangle around center, not a frustum
// intersection.
//
// The extent is empty when viewport, distance or center is missing, or when
// the viewport has no width or zero height. A distance of 0 is not missing: it
// gives a point extent at center, unlike viewers that test distance for truthiness.
func Perspective(viewport *viewpoint.ViewportSize, distance *float64, center *viewpoint.GeoPoint) Extent {
	if viewport == nil || distance == nil || center == nil {
		return Empty
	}
	if viewport.Width <= 0 || viewport.Height == 0 {
		return Empty
	}

	fp := PerspectiveFootprint(*distance, viewport.Width/viewport.Height)
	c := center.Point()
	return New(
		coord.Destination(c, fp.Bearing+math.Pi, fp.Diagonal/2),
		coord.Destination(c, fp.Bearing, fp.Diagonal/2),
	)
}
