package modeling

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// OptimizeOptions tune the minimizer run.
type OptimizeOptions struct {
	// MaxFunEvals caps the number of objective evaluations.
	// Zero means no cap.
	MaxFunEvals int
	// Tolerance is the absolute function convergence tolerance.
	// Zero selects a default of 1e-10.
	Tolerance float64
}

// OptimizeResult reports the outcome of a minimizer run.
type OptimizeResult struct {
	Success bool
	NFev    int
	FMin    float64
	Message string
}

// Optimize minimizes fcn by varying the free parameters of pars.
//
// fcn reads the current parameter values from pars; Optimize writes
// trial values into pars before each evaluation and leaves the best
// fit values in place on return.  The returned slice holds the
// optimized factors of the free parameters, in order.
func Optimize(fcn func() float64, pars *Parameters, opts *OptimizeOptions) ([]float64, *OptimizeResult, error) {
	if opts == nil {
		opts = &OptimizeOptions{}
	}
	pars.Autoscale()

	free := pars.Free()
	if len(free) == 0 {
		return nil, nil, errors.New("modeling: no free parameters")
	}

	// bounds on values become bounds on factors
	lo := make([]float64, len(free))
	hi := make([]float64, len(free))
	x0 := make([]float64, len(free))
	for i, p := range free {
		lo[i] = p.Min / p.Scale()
		hi[i] = p.Max / p.Scale()
		x0[i] = toInternal(p.Factor(), lo[i], hi[i])
	}

	apply := func(x []float64) {
		for i, p := range free {
			p.SetFactor(toExternal(x[i], lo[i], hi[i]))
		}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			apply(x)
			return fcn()
		},
	}

	tol := opts.Tolerance
	if tol == 0 {
		tol = 1e-10
	}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   tol,
			Iterations: 50,
		},
	}
	if opts.MaxFunEvals > 0 {
		settings.FuncEvaluations = opts.MaxFunEvals
	}

	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, nil, fmt.Errorf("modeling: minimize: %w", err)
	}
	apply(res.X)

	factors := make([]float64, len(free))
	for i, p := range free {
		factors[i] = p.Factor()
	}
	out := &OptimizeResult{
		Success: !math.IsNaN(res.F) && !math.IsInf(res.F, 0) &&
			res.Status != optimize.Failure,
		NFev:    res.Stats.FuncEvaluations,
		FMin:    res.F,
		Message: res.Status.String(),
	}
	return factors, out, nil
}
