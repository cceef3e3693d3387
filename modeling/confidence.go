package modeling

import (
	"fmt"
	"math"
)

// ConfidenceResult holds a profile likelihood interval.
type ConfidenceResult struct {
	ErrP, ErrN float64
	Success    bool
	NFev       int
}

// Confidence estimates the n sigma profile likelihood interval of one
// parameter around the current best fit.
//
// pars must already be at the minimum of fcn.  The parameter is
// stepped away from its best fit value, the remaining free parameters
// are re-optimized at each trial point, and the crossing of
// fmin + sigma^2 is located by bisection.  Parameter values are
// restored before returning.
func Confidence(fcn func() float64, pars *Parameters, par *Parameter, sigma float64, opts *OptimizeOptions) (*ConfidenceResult, error) {
	if par.Frozen {
		return nil, fmt.Errorf("modeling: parameter %s is frozen", par.Name())
	}
	found := false
	for _, p := range pars.Free() {
		if p == par {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("modeling: %w: %s", ErrNoParameter, par.Name())
	}

	// snapshot of the best fit
	best := make([]float64, pars.Len())
	for i := 0; i < pars.Len(); i++ {
		best[i] = pars.At(i).Value()
	}
	restore := func() {
		for i := 0; i < pars.Len(); i++ {
			pars.At(i).SetValue(best[i])
		}
		par.Frozen = false
	}
	defer restore()

	fmin := fcn()
	target := fmin + sigma*sigma
	res := &ConfidenceResult{Success: true}
	res.NFev++

	// profile evaluates fcn at a fixed trial value of par with the
	// other free parameters re-optimized.
	par.Frozen = true
	profile := func(v float64) (float64, error) {
		for i := 0; i < pars.Len(); i++ {
			pars.At(i).SetValue(best[i])
		}
		par.SetValue(v)
		if len(pars.Free()) == 0 {
			res.NFev++
			return fcn(), nil
		}
		_, r, err := Optimize(fcn, pars, opts)
		if err != nil {
			return 0, err
		}
		res.NFev += r.NFev
		return r.FMin, nil
	}

	v0 := best[indexOf(pars, par)]
	step := initialStep(pars, par, v0)

	up, err := crossing(profile, v0, step, target, par.Max)
	if err != nil {
		return nil, err
	}
	down, err := crossing(profile, v0, -step, target, par.Min)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(up) || math.IsNaN(down) {
		res.Success = false
	}
	res.ErrP = up
	res.ErrN = down
	return res, nil
}

func indexOf(pars *Parameters, par *Parameter) int {
	for i := 0; i < pars.Len(); i++ {
		if pars.At(i) == par {
			return i
		}
	}
	return -1
}

// initialStep guesses a scan step from the covariance if available,
// else from the parameter magnitude.
func initialStep(pars *Parameters, par *Parameter, v0 float64) float64 {
	if err, lookupErr := pars.Error(par.Name()); lookupErr == nil &&
		!math.IsNaN(err) && err > 0 {
		return err
	}
	step := math.Abs(v0) * 0.1
	if step == 0 {
		step = math.Abs(par.Scale()) * 0.1
	}
	if step == 0 {
		step = 0.1
	}
	return step
}

// crossing locates |v - v0| where the profile reaches the target,
// walking outward from v0 in the sign of step and then bisecting.
// Returns NaN when no crossing exists before the bound.
func crossing(profile func(float64) (float64, error), v0, step, target, bound float64) (float64, error) {
	inner := v0
	outer := v0
	for i := 0; i < 60; i++ {
		outer = clampToBound(outer+step, step, bound)
		f, err := profile(outer)
		if err != nil {
			return 0, err
		}
		if f >= target {
			break
		}
		inner = outer
		if outer == bound {
			return math.NaN(), nil // profile never reaches target
		}
		step *= 2
	}
	f, err := profile(outer)
	if err != nil {
		return 0, err
	}
	if f < target {
		return math.NaN(), nil
	}

	for i := 0; i < 60; i++ {
		mid := (inner + outer) / 2
		f, err := profile(mid)
		if err != nil {
			return 0, err
		}
		if f < target {
			inner = mid
		} else {
			outer = mid
		}
		if math.Abs(outer-inner) <= 1e-9*(math.Abs(v0)+1e-9) {
			break
		}
	}
	return math.Abs((inner+outer)/2 - v0), nil
}

func clampToBound(v, step float64, bound float64) float64 {
	if math.IsNaN(bound) {
		return v
	}
	if step > 0 && v > bound {
		return bound
	}
	if step < 0 && v < bound {
		return bound
	}
	return v
}
