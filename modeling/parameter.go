// Package modeling holds fit parameters and the adapter that feeds
// them to the gonum minimizer.
//
// A parameter value is split into factor and scale, value = factor
// times scale.  The minimizer only ever sees factors, which keeps the
// numbers it works on near unity regardless of the physical scale of
// the parameter.
package modeling

import (
	"fmt"
	"math"
)

// Parameter is a single fit parameter.
type Parameter struct {
	name   string
	factor float64
	scale  float64

	// Unit documents the unit of Value.  It is carried through, not
	// interpreted.
	Unit string

	// Min and Max bound Value.  NaN means unbounded.
	Min, Max float64

	Frozen bool
}

// NewParameter returns a free, unbounded parameter with scale 1.
func NewParameter(name string, value float64) *Parameter {
	return &Parameter{
		name:   name,
		factor: value,
		scale:  1,
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
}

// NewScaledParameter returns a parameter with an explicit factor and
// scale.
func NewScaledParameter(name string, factor, scale float64) *Parameter {
	p := NewParameter(name, factor)
	p.scale = scale
	return p
}

func (p *Parameter) Name() string    { return p.name }
func (p *Parameter) Factor() float64 { return p.factor }
func (p *Parameter) Scale() float64  { return p.scale }
func (p *Parameter) Value() float64  { return p.factor * p.scale }

func (p *Parameter) SetFactor(f float64) { p.factor = f }

func (p *Parameter) SetValue(v float64) { p.factor = v / p.scale }

// Autoscale moves the scale to the power of ten of the current value,
// leaving the value itself unchanged and the factor of order unity.
func (p *Parameter) Autoscale() {
	v := p.Value()
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return
	}
	p.scale = math.Pow(10, math.Floor(math.Log10(math.Abs(v))))
	p.factor = v / p.scale
}

func (p *Parameter) String() string {
	s := fmt.Sprintf("%s=%g", p.name, p.Value())
	if p.Unit != "" {
		s += " " + p.Unit
	}
	if p.Frozen {
		s += " (frozen)"
	}
	return s
}
