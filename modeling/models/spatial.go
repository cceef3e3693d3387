package models

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/fjhzwl/gammapy/sky"
)

// Coordinate frames a spatial model can be defined in.
const (
	FrameICRS     = "icrs"
	FrameGalactic = "galactic"
	FrameFK5      = "fk5"
)

// SpatialModel describes the morphology of a source on the sky.
// Evaluate returns the surface brightness profile at an angular
// separation from the model center, normalized to unit integral
// over solid angle in the small angle approximation.
type SpatialModel interface {
	Position() sky.Point
	Frame() string
	Evaluate(sep unit.Angle) float64
	Tag() string
}

// PointSpatial is a point source.  Its profile is a delta function,
// Evaluate returns 0 at any finite separation.
type PointSpatial struct {
	pos   sky.Point
	frame string
}

func NewPointSpatial(pos sky.Point, frame string) *PointSpatial {
	return &PointSpatial{pos: pos, frame: frame}
}

func (m *PointSpatial) Tag() string          { return "PointSpatialModel" }
func (m *PointSpatial) Position() sky.Point  { return m.pos }
func (m *PointSpatial) Frame() string        { return m.frame }
func (m *PointSpatial) Evaluate(unit.Angle) float64 { return 0 }

// GaussianSpatial is a symmetric Gaussian profile with 1 sigma
// width sigma.
type GaussianSpatial struct {
	pos   sky.Point
	frame string
	Sigma unit.Angle
}

func NewGaussianSpatial(pos sky.Point, frame string, sigma unit.Angle) *GaussianSpatial {
	return &GaussianSpatial{pos: pos, frame: frame, Sigma: sigma}
}

func (m *GaussianSpatial) Tag() string         { return "GaussianSpatialModel" }
func (m *GaussianSpatial) Position() sky.Point { return m.pos }
func (m *GaussianSpatial) Frame() string       { return m.frame }

func (m *GaussianSpatial) Evaluate(sep unit.Angle) float64 {
	s := m.Sigma.Rad()
	r := sep.Rad()
	return math.Exp(-r*r/(2*s*s)) / (2 * math.Pi * s * s)
}

// DiskSpatial is a uniform disk of angular radius R0.
type DiskSpatial struct {
	pos   sky.Point
	frame string
	R0    unit.Angle
}

func NewDiskSpatial(pos sky.Point, frame string, r0 unit.Angle) *DiskSpatial {
	return &DiskSpatial{pos: pos, frame: frame, R0: r0}
}

func (m *DiskSpatial) Tag() string         { return "DiskSpatialModel" }
func (m *DiskSpatial) Position() sky.Point { return m.pos }
func (m *DiskSpatial) Frame() string       { return m.frame }

func (m *DiskSpatial) Evaluate(sep unit.Angle) float64 {
	r := m.R0.Rad()
	if sep.Rad() > r {
		return 0
	}
	return 1 / (math.Pi * r * r)
}

// ShellSpatial is a homogeneous spherical shell projected on the sky,
// with inner radius RIn and width Width.
type ShellSpatial struct {
	pos   sky.Point
	frame string
	RIn   unit.Angle
	Width unit.Angle
}

func NewShellSpatial(pos sky.Point, frame string, rIn, width unit.Angle) *ShellSpatial {
	return &ShellSpatial{pos: pos, frame: frame, RIn: rIn, Width: width}
}

func (m *ShellSpatial) Tag() string         { return "ShellSpatialModel" }
func (m *ShellSpatial) Position() sky.Point { return m.pos }
func (m *ShellSpatial) Frame() string       { return m.frame }

func (m *ShellSpatial) Evaluate(sep unit.Angle) float64 {
	ri := m.RIn.Rad()
	ro := ri + m.Width.Rad()
	th := sep.Rad()
	norm := 3 / (2 * math.Pi * (ro*ro*ro - ri*ri*ri))
	switch {
	case th < ri:
		return norm * (math.Sqrt(ro*ro-th*th) - math.Sqrt(ri*ri-th*th))
	case th < ro:
		return norm * math.Sqrt(ro*ro-th*th)
	default:
		return 0
	}
}

// TemplateSpatial stands in for a morphology given as a map rather
// than an analytic profile.  Map handling is not implemented, the
// model records the position and the path of the map.
type TemplateSpatial struct {
	pos     sky.Point
	frame   string
	MapPath string
}

func NewTemplateSpatial(pos sky.Point, frame, mapPath string) *TemplateSpatial {
	return &TemplateSpatial{pos: pos, frame: frame, MapPath: mapPath}
}

func (m *TemplateSpatial) Tag() string          { return "TemplateSpatialModel" }
func (m *TemplateSpatial) Position() sky.Point  { return m.pos }
func (m *TemplateSpatial) Frame() string        { return m.frame }
func (m *TemplateSpatial) Evaluate(unit.Angle) float64 { return math.NaN() }
