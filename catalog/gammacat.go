package catalog

import (
	"fmt"

	"github.com/fjhzwl/gammapy/modeling/models"
	"github.com/fjhzwl/gammapy/quantity"
	"github.com/fjhzwl/gammapy/table"
)

// GammaCat is the open TeV source catalog gamma-cat.
type GammaCat struct {
	*SourceCatalog
}

// NewGammaCat reads gamma-cat from an ECSV file.
func NewGammaCat(path string) (*GammaCat, error) {
	t, err := table.ReadECSVFile(path)
	if err != nil {
		return nil, err
	}
	return newGammaCat(t)
}

func newGammaCat(t *table.Table) (*GammaCat, error) {
	base, err := newSourceCatalog(t, "common_name", "other_names", "gamma_names")
	if err != nil {
		return nil, err
	}
	base.Name = "gamma-cat, an open catalog of TeV sources"
	base.Tag = "gamma-cat"
	base.Description = base.Name
	return &GammaCat{SourceCatalog: base}, nil
}

// SpectralModel builds the spectral model of one source.  gamma-cat
// stores one of three parameterizations per row, named in spec_type.
func (c *GammaCat) SpectralModel(s *Source) (models.SpectralModel, error) {
	specType, err := s.String("spec_type")
	if err != nil {
		return nil, err
	}

	switch specType {
	case "pl":
		norm, err := s.Float("spec_pl_norm")
		if err != nil {
			return nil, err
		}
		index, err := s.Float("spec_pl_index")
		if err != nil {
			return nil, err
		}
		eRef, err := s.Float("spec_pl_e_ref")
		if err != nil {
			return nil, err
		}
		return models.NewPowerLaw(index, norm, "cm-2 s-1 TeV-1",
			quantity.TeV(eRef)), nil
	case "pl2":
		flux, err := s.Float("spec_pl2_flux")
		if err != nil {
			return nil, err
		}
		index, err := s.Float("spec_pl2_index")
		if err != nil {
			return nil, err
		}
		eMin, err := s.Float("spec_pl2_e_min")
		if err != nil {
			return nil, err
		}
		eMax, err := s.Float("spec_pl2_e_max")
		if err != nil {
			return nil, err
		}
		return models.NewPowerLaw2(index, flux, "cm-2 s-1",
			quantity.TeV(eMin), quantity.TeV(eMax)), nil
	case "ecpl":
		norm, err := s.Float("spec_ecpl_norm")
		if err != nil {
			return nil, err
		}
		index, err := s.Float("spec_ecpl_index")
		if err != nil {
			return nil, err
		}
		eRef, err := s.Float("spec_ecpl_e_ref")
		if err != nil {
			return nil, err
		}
		eCut, err := s.Float("spec_ecpl_e_cut")
		if err != nil {
			return nil, err
		}
		return models.NewExpCutoffPowerLaw3FGL(index, norm, "cm-2 s-1 TeV-1",
			quantity.TeV(eRef), quantity.TeV(eCut)), nil
	case "none", "":
		return nil, fmt.Errorf("catalog: %s has no spectral model", s.Name)
	}
	return nil, fmt.Errorf("catalog: unknown spec_type %q", specType)
}
