package catalog

import (
	"fmt"
	"math"

	"github.com/fjhzwl/gammapy/modeling/models"
	"github.com/fjhzwl/gammapy/quantity"
	"github.com/fjhzwl/gammapy/table"
)

// HAWC is the 2HWC survey catalog.
type HAWC struct {
	*SourceCatalog
}

// NewHAWC reads the 2HWC catalog from an ECSV file.
func NewHAWC(path string) (*HAWC, error) {
	t, err := table.ReadECSVFile(path)
	if err != nil {
		return nil, err
	}
	return newHAWC(t)
}

func newHAWC(t *table.Table) (*HAWC, error) {
	base, err := newSourceCatalog(t, "source_name")
	if err != nil {
		return nil, err
	}
	base.Name = "2HWC catalog from the HAWC observatory"
	base.Tag = "2hwc"
	base.Description = base.Name
	return &HAWC{SourceCatalog: base}, nil
}

// SpectralModel builds the power law of one of the row's spectrum
// fits.  Fit 0 is the point hypothesis, fit 1, where present, the
// extended one.  The catalog quotes differential fluxes at 7 TeV
// with negative spectral indices.
func (c *HAWC) SpectralModel(s *Source, fit int) (models.SpectralModel, error) {
	if fit < 0 || fit > 1 {
		return nil, fmt.Errorf("catalog: no spectrum fit %d", fit)
	}
	prefix := fmt.Sprintf("spec%d_", fit)
	dnde, err := s.Float(prefix + "dnde")
	if err != nil {
		return nil, err
	}
	index, err := s.Float(prefix + "index")
	if err != nil {
		return nil, err
	}
	return models.NewPowerLaw(-index, dnde, "cm-2 s-1 TeV-1",
		quantity.TeV(7)), nil
}

// NSpectra returns how many spectrum fits the row carries.
func (c *HAWC) NSpectra(s *Source) int {
	if !c.Table.HasColumn("spec1_dnde") {
		return 1
	}
	v, err := s.Float("spec1_dnde")
	if err != nil || math.IsNaN(v) {
		return 1
	}
	return 2
}
