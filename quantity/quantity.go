// Package quantity converts between the units that appear in catalog
// and observation tables.
//
// The unit vocabulary is deliberately small: angles, times, lengths,
// photon energies, and products of those with integer exponents such
// as "cm-2 s-1 GeV-1".  Unit strings follow the convention of the
// reference tables: tokens separated by spaces, each token a unit
// symbol with an optional signed integer exponent.
package quantity

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// dimension symbols used in signatures: "rad", "s", "cm", "TeV".
type dims map[string]int

func (d dims) signature() string {
	keys := make([]string, 0, len(d))
	for k, e := range d {
		if e != 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s%d ", k, d[k])
	}
	return strings.TrimSpace(b.String())
}

// factor to the base unit of each dimension.
// Angle factors come from the unit package so that the angle scale
// used here and in the sky package cannot drift apart.
var unitTable = map[string]struct {
	f   float64
	dim string
}{
	"": {1, ""},

	"rad":    {1, "rad"},
	"deg":    {unit.AngleFromDeg(1).Rad(), "rad"},
	"arcmin": {unit.AngleFromMin(1).Rad(), "rad"},
	"arcsec": {unit.AngleFromSec(1).Rad(), "rad"},

	"s":   {1, "s"},
	"min": {60, "s"},
	"h":   {3600, "s"},
	"d":   {86400, "s"},

	"cm": {1, "cm"},
	"m":  {100, "cm"},
	"km": {1e5, "cm"},

	"TeV": {1, "TeV"},
	"GeV": {1e-3, "TeV"},
	"MeV": {1e-6, "TeV"},
	"keV": {1e-9, "TeV"},
	"eV":  {1e-12, "TeV"},
	"erg": {1 / ergPerTeV, "TeV"},
}

// parse resolves a composite unit string to a factor into base units
// and a dimension signature.
func parse(u string) (float64, dims, error) {
	f := 1.0
	d := dims{}
	for _, tok := range strings.Fields(u) {
		sym, exp, err := splitExponent(tok)
		if err != nil {
			return 0, nil, fmt.Errorf("quantity: bad unit %q: %w", u, err)
		}
		e, ok := unitTable[sym]
		if !ok {
			return 0, nil, fmt.Errorf("quantity: unknown unit %q in %q", sym, u)
		}
		f *= math.Pow(e.f, float64(exp))
		if e.dim != "" {
			d[e.dim] += exp
		}
	}
	return f, d, nil
}

// splitExponent splits "GeV-1" into ("GeV", -1).  A bare symbol has
// exponent 1.
func splitExponent(tok string) (string, int, error) {
	i := len(tok)
	for i > 0 {
		c := tok[i-1]
		if c >= '0' && c <= '9' || c == '-' || c == '+' {
			i--
			continue
		}
		break
	}
	if i == len(tok) {
		return tok, 1, nil
	}
	if i == 0 {
		return "", 0, fmt.Errorf("no unit symbol in token %q", tok)
	}
	exp, err := strconv.Atoi(tok[i:])
	if err != nil {
		return "", 0, err
	}
	return tok[:i], exp, nil
}

// Convert converts a value between two unit strings.
// Converting between different dimensions is an error.
func Convert(v float64, from, to string) (float64, error) {
	ff, fd, err := parse(from)
	if err != nil {
		return 0, err
	}
	tf, td, err := parse(to)
	if err != nil {
		return 0, err
	}
	if fd.signature() != td.signature() {
		return 0, fmt.Errorf("quantity: cannot convert %q to %q", from, to)
	}
	return v * ff / tf, nil
}

// Factor returns the multiplier that converts values in unit from
// into unit to.
func Factor(from, to string) (float64, error) {
	return Convert(1, from, to)
}
