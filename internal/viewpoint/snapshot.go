package viewpoint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"github.com/pspoerri/viewlink/internal/coord"
)

// Snapshot is a frozen map state. It implements Map and is what the CLI reads
// from disk; tests build them with NewSnapshot.
type Snapshot struct {
	camera *Viewpoint
	view   View
}

// NewSnapshot returns a Map that always reports vp and view. A nil view is NoView.
func NewSnapshot(vp *Viewpoint, view View) *Snapshot {
	if view == nil {
		view = NoView{}
	}
	return &Snapshot{camera: vp, view: view}
}

// Viewpoint returns a copy of the frozen viewpoint, or nil if there is none.
func (s *Snapshot) Viewpoint(ctx context.Context) (*Viewpoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.camera == nil {
		return nil, nil
	}
	vp := *s.camera
	return &vp, nil
}

func (s *Snapshot) View() View { return s.view }

type snapshotFile struct {
	Viewpoint *Viewpoint `yaml:"viewpoint"`
	Map       struct {
		Kind     string        `yaml:"kind"`
		Viewport *ViewportSize `yaml:"viewport"`
		Bounds   []float64     `yaml:"bounds"`
		EPSG     int           `yaml:"epsg"`
	} `yaml:"map"`
}

// LoadSnapshot reads a YAML or JSON snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	s, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return s, nil
}

// ParseSnapshot decodes a snapshot document:
//
//	viewpoint:
//	  groundPosition: [13.405, 52.52, 34]
//	  distance: 500
//	map:
//	  kind: perspective
//	  viewport: {width: 1920, height: 1080}
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var f snapshotFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	kind, err := ParseKind(f.Map.Kind)
	if err != nil {
		return nil, err
	}

	var view View
	switch kind {
	case KindPerspective:
		view = PerspectiveView{Viewport: f.Map.Viewport}
	case KindPlanar:
		pv := PlanarView{}
		switch len(f.Map.Bounds) {
		case 0:
		case 4:
			b := f.Map.Bounds
			pv.Bounds = &orb.Bound{Min: orb.Point{b[0], b[1]}, Max: orb.Point{b[2], b[3]}}
		default:
			return nil, fmt.Errorf("map bounds need 4 numbers [minX, minY, maxX, maxY], got %d", len(f.Map.Bounds))
		}
		if f.Map.EPSG != 0 {
			pv.Projection = coord.ForEPSG(f.Map.EPSG)
			if pv.Projection == nil {
				return nil, fmt.Errorf("map epsg %d is not supported", f.Map.EPSG)
			}
		}
		view = pv
	default:
		view = NoView{}
	}

	return NewSnapshot(f.Viewpoint, view), nil
}
