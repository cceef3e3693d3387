// Package models defines the spectral and spatial source models the
// catalogs map their rows onto.
//
// A spectral model evaluates the differential photon flux dN/dE.  The
// returned value is in the unit of the model's amplitude parameter;
// catalog models carry the amplitude unit of their release (per MeV
// for the Fermi catalogs, per TeV for the TeV catalogs).
package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/fjhzwl/gammapy/modeling"
	"github.com/fjhzwl/gammapy/quantity"
)

type SpectralModel interface {
	// Evaluate returns dN/dE at e, in the amplitude unit.
	Evaluate(e quantity.Energy) float64
	Parameters() *modeling.Parameters
	Tag() string
}

// Reference returns the reference (pivot) energy of a model that has
// one, from its frozen "reference" parameter in TeV.
func Reference(m SpectralModel) (quantity.Energy, error) {
	p, err := m.Parameters().ByName("reference")
	if err != nil {
		return 0, err
	}
	return quantity.TeV(p.Value()), nil
}

// EvaluateError returns dN/dE and its 1 sigma uncertainty from the
// parameter covariance, propagated with a numerical gradient.
func EvaluateError(m SpectralModel, e quantity.Energy) (dnde, err float64, outErr error) {
	pars := m.Parameters()
	cov := pars.Covariance()
	if cov == nil {
		return 0, 0, fmt.Errorf("models: %s has no covariance", m.Tag())
	}
	saved := pars.Values()
	defer func() {
		for i, v := range saved {
			pars.At(i).SetValue(v)
		}
	}()

	f := func(x []float64) float64 {
		for i, v := range x {
			pars.At(i).SetValue(v)
		}
		return m.Evaluate(e)
	}
	grad := fd.Gradient(nil, f, saved, nil)
	g := mat.NewVecDense(len(grad), grad)
	sigsq := mat.Inner(g, cov, g)
	if sigsq < 0 {
		sigsq = 0
	}
	return f(saved), math.Sqrt(sigsq), nil
}

func newReference(e quantity.Energy) *modeling.Parameter {
	p := modeling.NewParameter("reference", e.TeV())
	p.Unit = "TeV"
	p.Frozen = true
	return p
}

// PowerLaw is dN/dE = amplitude * (E/E0)^-index.
type PowerLaw struct {
	pars *modeling.Parameters
}

func NewPowerLaw(index, amplitude float64, ampUnit string, reference quantity.Energy) *PowerLaw {
	amp := modeling.NewParameter("amplitude", amplitude)
	amp.Unit = ampUnit
	return &PowerLaw{pars: modeling.MustParameters(
		modeling.NewParameter("index", index),
		amp,
		newReference(reference),
	)}
}

func (m *PowerLaw) Tag() string                      { return "PowerLawSpectralModel" }
func (m *PowerLaw) Parameters() *modeling.Parameters { return m.pars }

func (m *PowerLaw) Evaluate(e quantity.Energy) float64 {
	v := m.pars.Values() // index, amplitude, reference
	return v[1] * math.Pow(e.TeV()/v[2], -v[0])
}

// PowerLaw2 is the integral flux parameterization of a power law:
// amplitude is the integral photon flux between emin and emax.
type PowerLaw2 struct {
	pars *modeling.Parameters
}

func NewPowerLaw2(index, amplitude float64, ampUnit string, emin, emax quantity.Energy) *PowerLaw2 {
	amp := modeling.NewParameter("amplitude", amplitude)
	amp.Unit = ampUnit
	pmin := modeling.NewParameter("emin", emin.TeV())
	pmin.Unit = "TeV"
	pmin.Frozen = true
	pmax := modeling.NewParameter("emax", emax.TeV())
	pmax.Unit = "TeV"
	pmax.Frozen = true
	return &PowerLaw2{pars: modeling.MustParameters(
		modeling.NewParameter("index", index),
		amp, pmin, pmax,
	)}
}

func (m *PowerLaw2) Tag() string                      { return "PowerLaw2SpectralModel" }
func (m *PowerLaw2) Parameters() *modeling.Parameters { return m.pars }

// Evaluate returns dN/dE per TeV.  An index of exactly 1 is outside
// the validity of this parameterization.
func (m *PowerLaw2) Evaluate(e quantity.Energy) float64 {
	v := m.pars.Values() // index, amplitude, emin, emax
	g1 := 1 - v[0]
	return v[1] * g1 * math.Pow(e.TeV(), -v[0]) /
		(math.Pow(v[3], g1) - math.Pow(v[2], g1))
}

// LogParabola is dN/dE = amplitude * (E/E0)^-(alpha + beta ln(E/E0)).
type LogParabola struct {
	pars *modeling.Parameters
}

func NewLogParabola(alpha, beta, amplitude float64, ampUnit string, reference quantity.Energy) *LogParabola {
	amp := modeling.NewParameter("amplitude", amplitude)
	amp.Unit = ampUnit
	return &LogParabola{pars: modeling.MustParameters(
		modeling.NewParameter("alpha", alpha),
		modeling.NewParameter("beta", beta),
		amp,
		newReference(reference),
	)}
}

func (m *LogParabola) Tag() string                      { return "LogParabolaSpectralModel" }
func (m *LogParabola) Parameters() *modeling.Parameters { return m.pars }

func (m *LogParabola) Evaluate(e quantity.Energy) float64 {
	v := m.pars.Values() // alpha, beta, amplitude, reference
	r := e.TeV() / v[3]
	return v[2] * math.Pow(r, -(v[0]+v[1]*math.Log(r)))
}

// ExpCutoffPowerLaw3FGL is the 3FGL exponential cutoff form:
// dN/dE = amplitude * (E/E0)^-index * exp((E0 - E)/Ecut).
type ExpCutoffPowerLaw3FGL struct {
	pars *modeling.Parameters
}

func NewExpCutoffPowerLaw3FGL(index, amplitude float64, ampUnit string, reference, ecut quantity.Energy) *ExpCutoffPowerLaw3FGL {
	amp := modeling.NewParameter("amplitude", amplitude)
	amp.Unit = ampUnit
	pc := modeling.NewParameter("ecut", ecut.TeV())
	pc.Unit = "TeV"
	return &ExpCutoffPowerLaw3FGL{pars: modeling.MustParameters(
		modeling.NewParameter("index", index),
		amp,
		newReference(reference),
		pc,
	)}
}

func (m *ExpCutoffPowerLaw3FGL) Tag() string {
	return "ExpCutoffPowerLaw3FGLSpectralModel"
}
func (m *ExpCutoffPowerLaw3FGL) Parameters() *modeling.Parameters { return m.pars }

func (m *ExpCutoffPowerLaw3FGL) Evaluate(e quantity.Energy) float64 {
	v := m.pars.Values() // index, amplitude, reference, ecut
	return v[1] * math.Pow(e.TeV()/v[2], -v[0]) * math.Exp((v[2]-e.TeV())/v[3])
}

// SuperExpCutoffPowerLaw3FGL is the 3FGL super-exponential form:
// dN/dE = amplitude * (E/E0)^-index1 *
//         exp((E0/Ecut)^index2 - (E/Ecut)^index2).
type SuperExpCutoffPowerLaw3FGL struct {
	pars *modeling.Parameters
}

func NewSuperExpCutoffPowerLaw3FGL(index1, index2, amplitude float64, ampUnit string, reference, ecut quantity.Energy) *SuperExpCutoffPowerLaw3FGL {
	amp := modeling.NewParameter("amplitude", amplitude)
	amp.Unit = ampUnit
	pc := modeling.NewParameter("ecut", ecut.TeV())
	pc.Unit = "TeV"
	return &SuperExpCutoffPowerLaw3FGL{pars: modeling.MustParameters(
		modeling.NewParameter("index_1", index1),
		modeling.NewParameter("index_2", index2),
		amp,
		newReference(reference),
		pc,
	)}
}

func (m *SuperExpCutoffPowerLaw3FGL) Tag() string {
	return "SuperExpCutoffPowerLaw3FGLSpectralModel"
}
func (m *SuperExpCutoffPowerLaw3FGL) Parameters() *modeling.Parameters { return m.pars }

func (m *SuperExpCutoffPowerLaw3FGL) Evaluate(e quantity.Energy) float64 {
	v := m.pars.Values() // index_1, index_2, amplitude, reference, ecut
	return v[2] * math.Pow(e.TeV()/v[3], -v[0]) *
		math.Exp(math.Pow(v[3]/v[4], v[1])-math.Pow(e.TeV()/v[4], v[1]))
}

// SuperExpCutoffPowerLaw4FGL is the 4FGL super-exponential form:
// dN/dE = amplitude * (E/E0)^-index1 *
//         exp(a * (E0^index2 - E^index2)), energies in MeV.
type SuperExpCutoffPowerLaw4FGL struct {
	pars *modeling.Parameters
}

func NewSuperExpCutoffPowerLaw4FGL(index1, index2, expfactor, amplitude float64, ampUnit string, reference quantity.Energy) *SuperExpCutoffPowerLaw4FGL {
	amp := modeling.NewParameter("amplitude", amplitude)
	amp.Unit = ampUnit
	return &SuperExpCutoffPowerLaw4FGL{pars: modeling.MustParameters(
		modeling.NewParameter("index_1", index1),
		modeling.NewParameter("index_2", index2),
		modeling.NewParameter("expfactor", expfactor),
		amp,
		newReference(reference),
	)}
}

func (m *SuperExpCutoffPowerLaw4FGL) Tag() string {
	return "SuperExpCutoffPowerLaw4FGLSpectralModel"
}
func (m *SuperExpCutoffPowerLaw4FGL) Parameters() *modeling.Parameters { return m.pars }

func (m *SuperExpCutoffPowerLaw4FGL) Evaluate(e quantity.Energy) float64 {
	v := m.pars.Values() // index_1, index_2, expfactor, amplitude, reference
	ref := quantity.TeV(v[4])
	return v[3] * math.Pow(e.TeV()/ref.TeV(), -v[0]) *
		math.Exp(v[2]*(math.Pow(ref.MeV(), v[1])-math.Pow(e.MeV(), v[1])))
}
