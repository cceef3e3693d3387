package modeling

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNoParameter is wrapped by name lookups that fail.
var ErrNoParameter = errors.New("no such parameter")

// Parameters is an ordered parameter set with an optional covariance
// matrix aligned to the parameter order.
type Parameters struct {
	// ApplyAutoscale controls whether the optimizer rescales
	// parameters before a fit.  On by default.
	ApplyAutoscale bool

	pars       []*Parameter
	byName     map[string]*Parameter
	covariance *mat.SymDense
}

func NewParameters(ps ...*Parameter) (*Parameters, error) {
	set := &Parameters{
		ApplyAutoscale: true,
		byName:         map[string]*Parameter{},
	}
	for _, p := range ps {
		if _, dup := set.byName[p.Name()]; dup {
			return nil, fmt.Errorf("modeling: duplicate parameter %s", p.Name())
		}
		set.pars = append(set.pars, p)
		set.byName[p.Name()] = p
	}
	return set, nil
}

// MustParameters is NewParameters for static parameter lists.
func MustParameters(ps ...*Parameter) *Parameters {
	set, err := NewParameters(ps...)
	if err != nil {
		panic(err)
	}
	return set
}

func (s *Parameters) Len() int           { return len(s.pars) }
func (s *Parameters) At(i int) *Parameter { return s.pars[i] }

func (s *Parameters) ByName(name string) (*Parameter, error) {
	p, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("modeling: %w: %s", ErrNoParameter, name)
	}
	return p, nil
}

func (s *Parameters) Names() []string {
	names := make([]string, len(s.pars))
	for i, p := range s.pars {
		names[i] = p.Name()
	}
	return names
}

func (s *Parameters) Values() []float64 {
	v := make([]float64, len(s.pars))
	for i, p := range s.pars {
		v[i] = p.Value()
	}
	return v
}

// Free returns the unfrozen parameters in order.
func (s *Parameters) Free() []*Parameter {
	var free []*Parameter
	for _, p := range s.pars {
		if !p.Frozen {
			free = append(free, p)
		}
	}
	return free
}

// Autoscale rescales the free parameters if ApplyAutoscale is set.
func (s *Parameters) Autoscale() {
	if !s.ApplyAutoscale {
		return
	}
	for _, p := range s.Free() {
		p.Autoscale()
	}
}

// SetCovariance attaches a covariance matrix.  Its dimension must
// match the number of parameters.
func (s *Parameters) SetCovariance(c *mat.SymDense) error {
	if c != nil && c.SymmetricDim() != len(s.pars) {
		return fmt.Errorf("modeling: covariance is %dx%d for %d parameters",
			c.SymmetricDim(), c.SymmetricDim(), len(s.pars))
	}
	s.covariance = c
	return nil
}

func (s *Parameters) Covariance() *mat.SymDense { return s.covariance }

// Error returns the 1 sigma error of the named parameter from the
// covariance diagonal, or NaN if no covariance is set.
func (s *Parameters) Error(name string) (float64, error) {
	p, err := s.ByName(name)
	if err != nil {
		return 0, err
	}
	if s.covariance == nil {
		return math.NaN(), nil
	}
	for i, q := range s.pars {
		if q == p {
			return math.Sqrt(s.covariance.At(i, i)), nil
		}
	}
	return math.NaN(), nil
}
