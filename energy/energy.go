// Package energy, helpers for energy axes.
package energy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/fjhzwl/gammapy/quantity"
)

// Logspace returns nbins edges spaced evenly in log between emin and
// emax, endpoints included.  With perDecade, nbins counts edges per
// decade of energy and the total is scaled by the number of decades
// spanned.
func Logspace(emin, emax quantity.Energy, nbins int, perDecade bool) ([]quantity.Energy, error) {
	if emin <= 0 || emax <= 0 {
		return nil, fmt.Errorf("energy: bounds must be positive, got %v, %v", emin, emax)
	}
	if emax <= emin {
		return nil, fmt.Errorf("energy: emax %v not above emin %v", emax, emin)
	}
	if perDecade {
		decades := math.Log10(emax.TeV()) - math.Log10(emin.TeV())
		nbins = int(math.Round(decades * float64(nbins)))
	}
	if nbins < 2 {
		return nil, fmt.Errorf("energy: need at least 2 edges, got %d", nbins)
	}
	dst := make([]float64, nbins)
	floats.LogSpan(dst, emin.TeV(), emax.TeV())
	out := make([]quantity.Energy, nbins)
	for i, v := range dst {
		out[i] = quantity.Energy(v)
	}
	return out, nil
}

// Centers returns the log-centers of adjacent edge pairs.
func Centers(edges []quantity.Energy) []quantity.Energy {
	if len(edges) < 2 {
		return nil
	}
	c := make([]quantity.Energy, len(edges)-1)
	for i := range c {
		c[i] = quantity.Energy(math.Sqrt(edges[i].TeV() * edges[i+1].TeV()))
	}
	return c
}
