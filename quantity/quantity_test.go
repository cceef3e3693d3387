package quantity_test

import (
	"math"
	"testing"

	"github.com/fjhzwl/gammapy/quantity"
)

var convertTestCases = []struct {
	v        float64
	from, to string
	want     float64
}{
	{180, "deg", "rad", math.Pi},
	{1, "deg", "arcsec", 3600},
	{2.5, "arcmin", "deg", 2.5 / 60},
	{1, "h", "s", 3600},
	{86400, "s", "d", 1},
	{1, "TeV", "GeV", 1000},
	{100, "GeV", "MeV", 1e5},
	{1, "TeV", "erg", 1.602176634},
	{1, "km", "cm", 1e5},
	// per-MeV flux to per-GeV flux: 1/MeV = 1000/GeV
	{1e-12, "cm-2 s-1 MeV-1", "cm-2 s-1 GeV-1", 1e-9},
	{1, "cm-2 s-1", "m-2 s-1", 1e4},
	{1, "TeV cm-2 s-1", "erg cm-2 s-1", 1.602176634},
}

func TestConvert(t *testing.T) {
	for _, c := range convertTestCases {
		got, err := quantity.Convert(c.v, c.from, c.to)
		switch {
		case err != nil:
			t.Fatalf("%q -> %q: %v", c.from, c.to, err)
		case math.Abs(got-c.want) > 1e-12*math.Abs(c.want):
			t.Fatalf("%q -> %q: got %g want %g", c.from, c.to, got, c.want)
		}
	}
}

func TestConvertDimensionMismatch(t *testing.T) {
	for _, c := range [][2]string{
		{"deg", "s"},
		{"TeV", "cm"},
		{"cm-2 s-1 GeV-1", "cm-2 s-1"},
	} {
		if _, err := quantity.Convert(1, c[0], c[1]); err == nil {
			t.Fatalf("%q -> %q: expected error", c[0], c[1])
		}
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	if _, err := quantity.Convert(1, "furlong", "cm"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestEnergy(t *testing.T) {
	e := quantity.GeV(100)
	if e.TeV() != 0.1 {
		t.Fatal("GeV constructor")
	}
	if e.MeV() != 1e5 {
		t.Fatal("MeV accessor")
	}
	ee, err := quantity.EnergyFrom(1.602176634, "erg")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ee.TeV()-1) > 1e-12 {
		t.Fatalf("erg round trip: %g", ee.TeV())
	}
}
