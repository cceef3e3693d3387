package catalog

import (
	"fmt"

	"github.com/soniakeys/unit"

	"github.com/fjhzwl/gammapy/modeling/models"
	"github.com/fjhzwl/gammapy/quantity"
	"github.com/fjhzwl/gammapy/table"
)

const hessAmpUnit = "cm-2 s-1 TeV-1"

// HESS is the H.E.S.S. galactic plane survey catalog.
type HESS struct {
	*SourceCatalog
}

// NewHESS reads the survey catalog from an ECSV file.
func NewHESS(path string) (*HESS, error) {
	t, err := table.ReadECSVFile(path)
	if err != nil {
		return nil, err
	}
	return newHESS(t)
}

func newHESS(t *table.Table) (*HESS, error) {
	base, err := newSourceCatalog(t, "Source_Name", "Identified_Object")
	if err != nil {
		return nil, err
	}
	base.Name = "H.E.S.S. galactic plane survey catalog"
	base.Tag = "hgps"
	base.Description = base.Name
	return &HESS{SourceCatalog: base}, nil
}

// SpectralModel builds the spectral model of one source.  The survey
// fits either a power law or an exponential cutoff power law, with
// TeV energies and per TeV amplitudes.
func (c *HESS) SpectralModel(s *Source) (models.SpectralModel, error) {
	specType, err := s.String("Spectral_Model")
	if err != nil {
		return nil, err
	}
	amp, err := s.Float("Flux_Density")
	if err != nil {
		return nil, err
	}
	index, err := s.Float("Index")
	if err != nil {
		return nil, err
	}
	pivot, err := s.Float("Pivot_Energy")
	if err != nil {
		return nil, err
	}

	switch specType {
	case "PL":
		return models.NewPowerLaw(index, amp, hessAmpUnit, quantity.TeV(pivot)), nil
	case "ECPL":
		cutoff, err := s.Float("Cutoff_Energy")
		if err != nil {
			return nil, err
		}
		return models.NewExpCutoffPowerLaw3FGL(index, amp, hessAmpUnit,
			quantity.TeV(pivot), quantity.TeV(cutoff)), nil
	}
	return nil, fmt.Errorf("catalog: unknown spectral model %q", specType)
}

// SpatialModel builds the morphology model of one source from its
// fitted type and size.
func (c *HESS) SpatialModel(s *Source) (models.SpatialModel, error) {
	morph, err := s.String("Morph_Type")
	if err != nil {
		return nil, err
	}
	pos, err := s.Position()
	if err != nil {
		return nil, err
	}

	switch morph {
	case "point":
		return models.NewPointSpatial(pos, models.FrameICRS), nil
	case "gauss":
		size, err := s.Float("Size")
		if err != nil {
			return nil, err
		}
		return models.NewGaussianSpatial(pos, models.FrameICRS,
			unit.AngleFromDeg(size)), nil
	case "shell":
		size, err := s.Float("Size")
		if err != nil {
			return nil, err
		}
		// outer radius with a thin shell of 20 percent width
		rOut := unit.AngleFromDeg(size)
		return models.NewShellSpatial(pos, models.FrameICRS,
			unit.AngleFromDeg(size*0.8), unit.Angle(rOut.Rad()*0.2)), nil
	}
	return nil, fmt.Errorf("catalog: unknown morphology %q", morph)
}

// SkyModel pairs the spectral and spatial models of one source.
func (c *HESS) SkyModel(s *Source) (*models.SkyModel, error) {
	spec, err := c.SpectralModel(s)
	if err != nil {
		return nil, err
	}
	spat, err := c.SpatialModel(s)
	if err != nil {
		return nil, err
	}
	return models.NewSkyModel(s.Name, spec, spat), nil
}
