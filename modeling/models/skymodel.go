package models

import "github.com/fjhzwl/gammapy/modeling"

// SkyModel pairs a spectral and a spatial component into one source
// model.
type SkyModel struct {
	Name     string
	Spectral SpectralModel
	Spatial  SpatialModel
}

func NewSkyModel(name string, spectral SpectralModel, spatial SpatialModel) *SkyModel {
	return &SkyModel{Name: name, Spectral: spectral, Spatial: spatial}
}

// Parameters returns the spectral parameters.  Spatial parameters are
// fixed source properties here and do not enter fits.
func (m *SkyModel) Parameters() *modeling.Parameters {
	return m.Spectral.Parameters()
}
