package catalog

import (
	"github.com/soniakeys/unit"

	"github.com/fjhzwl/gammapy/modeling/models"
	"github.com/fjhzwl/gammapy/table"
)

// SNRCat is the supernova remnant catalog SNRcat.
type SNRCat struct {
	*SourceCatalog
}

// NewSNRCat reads SNRcat from an ECSV file.
func NewSNRCat(path string) (*SNRCat, error) {
	t, err := table.ReadECSVFile(path)
	if err != nil {
		return nil, err
	}
	return newSNRCat(t)
}

func newSNRCat(t *table.Table) (*SNRCat, error) {
	base, err := newSourceCatalog(t, "Source_Name", "alt_names")
	if err != nil {
		return nil, err
	}
	base.Name = "SNRcat supernova remnant catalog"
	base.Tag = "snrcat"
	base.Description = base.Name
	return &SNRCat{SourceCatalog: base}, nil
}

// SpatialModel builds a disk morphology from the remnant's angular
// size.  SNRcat carries no spectral information.
func (c *SNRCat) SpatialModel(s *Source) (models.SpatialModel, error) {
	pos, err := s.Position()
	if err != nil {
		return nil, err
	}
	size, err := s.Float("size")
	if err != nil {
		return nil, err
	}
	// size column is the remnant diameter in arcmin
	return models.NewDiskSpatial(pos, models.FrameGalactic,
		unit.AngleFromMin(size/2)), nil
}
