package catalog

import (
	"github.com/fjhzwl/gammapy/quantity"
	"github.com/fjhzwl/gammapy/table"
)

// FluxPoints is a SED as a table of energy bands.
type FluxPoints struct {
	*table.Table
}

// EnergyRef returns the reference energies of the bands.
func (f *FluxPoints) EnergyRef() ([]quantity.Energy, error) {
	col, err := f.Column("e_ref")
	if err != nil {
		return nil, err
	}
	out := make([]quantity.Energy, len(col.Floats))
	for i, v := range col.Floats {
		e, err := quantity.EnergyFrom(v, col.Unit)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// IsUL reports which bands are upper limits.
func (f *FluxPoints) IsUL() ([]bool, error) {
	v, err := f.Floats("is_ul")
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(v))
	for i := range v {
		out[i] = v[i] != 0
	}
	return out, nil
}
