package modeling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/fjhzwl/gammapy/modeling"
)

// quadratic objective with a known minimum, mirroring a typical
// likelihood surface with very different parameter scales
type dataset struct {
	pars *modeling.Parameters
}

func (d *dataset) fcn() float64 {
	x := d.pars.Values()
	const (
		xOpt, yOpt, zOpt = 2, 3e5, 4e-5
		xErr, yErr, zErr = 0.2, 3e4, 4e-6
	)
	fx := (x[0] - xOpt) / xErr
	fy := (x[1] - yOpt) / yErr
	fz := (x[2] - zOpt) / zErr
	return fx*fx + fy*fy + fz*fz
}

func newDataset(t *testing.T) *dataset {
	t.Helper()
	x := modeling.NewParameter("x", 2.1)
	y := modeling.NewScaledParameter("y", 3.1, 1e5)
	z := modeling.NewScaledParameter("z", 4.1, 1e-5)
	pars, err := modeling.NewParameters(x, y, z)
	require.NoError(t, err)
	return &dataset{pars: pars}
}

func TestOptimizeBasic(t *testing.T) {
	d := newDataset(t)
	factors, res, err := modeling.Optimize(d.fcn, d.pars, nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.InDelta(t, 0, d.fcn(), 1e-5)

	x, _ := d.pars.ByName("x")
	y, _ := d.pars.ByName("y")
	z, _ := d.pars.ByName("z")
	assert.InEpsilon(t, 2, x.Value(), 1e-3)
	assert.InEpsilon(t, 3e5, y.Value(), 1e-3)
	assert.InEpsilon(t, 4e-5, z.Value(), 1e-3)

	// the minimizer works on factors of order unity
	require.Len(t, factors, 3)
	assert.InEpsilon(t, 2, factors[0], 1e-3)
	assert.InEpsilon(t, 3, factors[1], 1e-3)
	assert.InEpsilon(t, 4, factors[2], 1e-3)
}

func TestOptimizeNoAutoscale(t *testing.T) {
	d := newDataset(t)
	d.pars.ApplyAutoscale = false
	cov := mat.NewSymDense(3, nil)
	cov.SetSym(0, 0, 0.2*0.2)
	cov.SetSym(1, 1, 3e4*3e4)
	cov.SetSym(2, 2, 4e-6*4e-6)
	require.NoError(t, d.pars.SetCovariance(cov))

	_, res, err := modeling.Optimize(d.fcn, d.pars, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.InDelta(t, 0, d.fcn(), 1e-5)

	y, _ := d.pars.ByName("y")
	assert.InEpsilon(t, 3e5, y.Value(), 1e-3)
	// scales were left alone
	assert.Equal(t, 1e5, y.Scale())
}

func TestOptimizeFrozen(t *testing.T) {
	d := newDataset(t)
	y, _ := d.pars.ByName("y")
	y.Frozen = true

	factors, res, err := modeling.Optimize(d.fcn, d.pars, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, factors, 2)

	x, _ := d.pars.ByName("x")
	z, _ := d.pars.ByName("z")
	assert.InEpsilon(t, 2, x.Value(), 1e-3)
	assert.InDelta(t, 3.1e5, y.Value(), 1e-6)
	assert.InEpsilon(t, 4e-5, z.Value(), 1e-3)
	// residual from the frozen parameter: ((3.1e5-3e5)/3e4)^2
	assert.InDelta(t, 0.111112, d.fcn(), 1e-4)
}

func TestOptimizeLimits(t *testing.T) {
	d := newDataset(t)
	y, _ := d.pars.ByName("y")
	y.Min = 301000

	_, res, err := modeling.Optimize(d.fcn, d.pars, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)

	x, _ := d.pars.ByName("x")
	assert.InEpsilon(t, 2, x.Value(), 1e-2)
	// y converges onto its lower bound
	assert.InEpsilon(t, 301000, y.Value(), 1e-3)
	assert.GreaterOrEqual(t, y.Value(), 301000*(1-1e-9))
}

func TestOptimizeMaxFunEvals(t *testing.T) {
	d := newDataset(t)
	_, res, err := modeling.Optimize(d.fcn, d.pars, &modeling.OptimizeOptions{MaxFunEvals: 20})
	require.NoError(t, err)
	assert.LessOrEqual(t, res.NFev, 20)
	assert.Greater(t, res.NFev, 0)
}

func TestOptimizeNoFreeParameters(t *testing.T) {
	d := newDataset(t)
	for i := 0; i < d.pars.Len(); i++ {
		d.pars.At(i).Frozen = true
	}
	_, _, err := modeling.Optimize(d.fcn, d.pars, nil)
	assert.Error(t, err)
}

func TestConfidence(t *testing.T) {
	d := newDataset(t)
	_, _, err := modeling.Optimize(d.fcn, d.pars, nil)
	require.NoError(t, err)

	x, _ := d.pars.ByName("x")
	x.Min, x.Max = 0, 10

	res, err := modeling.Confidence(d.fcn, d.pars, x, 1, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	// quadratic surface: the 1 sigma interval equals the error term
	assert.InEpsilon(t, 0.2, res.ErrP, 1e-2)
	assert.InEpsilon(t, 0.2, res.ErrN, 1e-2)

	// values restored after scanning
	assert.InEpsilon(t, 2, x.Value(), 1e-3)
	assert.False(t, x.Frozen)
}

func TestConfidenceFrozenParameter(t *testing.T) {
	d := newDataset(t)
	x, _ := d.pars.ByName("x")
	x.Frozen = true
	_, err := modeling.Confidence(d.fcn, d.pars, x, 1, nil)
	assert.Error(t, err)
}

func TestParameterAutoscale(t *testing.T) {
	p := modeling.NewParameter("amp", 3.1e5)
	p.Autoscale()
	assert.InDelta(t, 3.1, p.Factor(), 1e-12)
	assert.Equal(t, 1e5, p.Scale())
	assert.InDelta(t, 3.1e5, p.Value(), 1e-7)

	q := modeling.NewParameter("idx", -2.3)
	q.Autoscale()
	assert.Equal(t, 1.0, q.Scale())
	assert.InDelta(t, -2.3, q.Factor(), 1e-12)

	z := modeling.NewParameter("zero", 0)
	z.Autoscale()
	assert.Equal(t, 1.0, z.Scale())
}

func TestParametersLookup(t *testing.T) {
	pars := modeling.MustParameters(modeling.NewParameter("a", 1))
	_, err := pars.ByName("b")
	assert.Error(t, err)

	_, err = modeling.NewParameters(
		modeling.NewParameter("a", 1), modeling.NewParameter("a", 2))
	assert.Error(t, err)
}
