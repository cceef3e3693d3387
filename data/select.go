package data

import (
	"errors"
	"fmt"
	"time"

	"github.com/soniakeys/unit"

	"github.com/fjhzwl/gammapy/sky"
)

// A Selection picks observations out of an obs-index table.
type Selection interface {
	mask(o *ObservationTable) ([]bool, error)
}

// SkyCircle selects observations whose pointing falls inside a
// circle, with an optional border widening the acceptance.
type SkyCircle struct {
	Frame     string // "icrs" or "galactic"
	LonDeg    float64
	LatDeg    float64
	RadiusDeg float64
	BorderDeg float64
	Inverted  bool
}

func (s SkyCircle) mask(o *ObservationTable) ([]bool, error) {
	var center sky.Point
	switch s.Frame {
	case "icrs", "":
		center = sky.New(s.LonDeg, s.LatDeg)
	case "galactic":
		center = sky.FromGalactic(s.LonDeg, s.LatDeg)
	default:
		return nil, fmt.Errorf("data: unknown frame %q", s.Frame)
	}
	rmax := unit.AngleFromDeg(s.RadiusDeg + s.BorderDeg)

	mask := make([]bool, o.Len())
	for i := range mask {
		p, err := o.Pointing(i)
		if err != nil {
			return nil, err
		}
		in := center.Separation(p).Rad() <= rmax.Rad()
		mask[i] = in != s.Inverted
	}
	return mask, nil
}

// TimeBox selects observations whose start time falls in a time
// interval.
type TimeBox struct {
	Start    time.Time
	Stop     time.Time
	Inverted bool
}

func (s TimeBox) mask(o *ObservationTable) ([]bool, error) {
	return o.timeMask("TSTART", s.Start, s.Stop, s.Inverted)
}

// ParBox selects observations by the value range of any numeric
// column, with an optional unit for the range bounds.
type ParBox struct {
	Variable string
	Min      float64
	Max      float64
	Unit     string
	Inverted bool
}

func (s ParBox) mask(o *ObservationTable) ([]bool, error) {
	return o.rangeMask(s.Variable, s.Min, s.Max, s.Unit, s.Inverted)
}

// SelectObservations applies a selection and returns the reduced
// table.  A nil selection is an error.
func (o *ObservationTable) SelectObservations(sel Selection) (*ObservationTable, error) {
	if sel == nil {
		return nil, errors.New("data: nil selection")
	}
	mask, err := sel.mask(o)
	if err != nil {
		return nil, err
	}
	t, err := o.Where(mask)
	if err != nil {
		return nil, err
	}
	return &ObservationTable{Table: t}, nil
}
