package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/fjhzwl/gammapy/gadf"
	"github.com/fjhzwl/gammapy/modeling/models"
	"github.com/fjhzwl/gammapy/quantity"
	"github.com/fjhzwl/gammapy/sky"
	"github.com/fjhzwl/gammapy/table"
)

const fermiAmpUnit = "cm-2 s-1 MeV-1"

// fermiRelease configures one Fermi-LAT catalog release.
type fermiRelease struct {
	tag         string
	name        string
	file        string
	aliasCols   []string
	classCol    string
	bandUnit    string
	edgesMeV    []float64 // flux point band edges
	hasSpecType bool
}

var fermiReleases = map[string]fermiRelease{
	"3fgl": {
		tag:       "3fgl",
		name:      "Fermi-LAT 3FGL catalog",
		file:      "gll_psc_v16.ecsv",
		aliasCols: []string{"ASSOC1", "ASSOC2", "ASSOC_TEV"},
		classCol:  "CLASS1",
		bandUnit:  "cm-2 s-1",
		edgesMeV:  []float64{100, 300, 1e3, 3e3, 1e4, 1e5},
		hasSpecType: true,
	},
	"4fgl": {
		tag:       "4fgl",
		name:      "Fermi-LAT 4FGL catalog",
		file:      "gll_psc_v20.ecsv",
		aliasCols: []string{"ASSOC1", "ASSOC2"},
		classCol:  "CLASS1",
		bandUnit:  "cm-2 s-1",
		edgesMeV:  []float64{50, 100, 300, 1e3, 3e3, 1e4, 3e4, 1e5, 1e6},
		hasSpecType: true,
	},
	"1fhl": {
		tag:       "1fhl",
		name:      "Fermi-LAT 1FHL catalog",
		file:      "gll_psch_v07.ecsv",
		aliasCols: []string{"ASSOC1", "ASSOC2", "ASSOC_TEV"},
		classCol:  "CLASS1",
		bandUnit:  "cm-2 s-1",
		edgesMeV:  []float64{1e4, 3e4, 1e5, 5e5},
	},
	"2fhl": {
		tag:       "2fhl",
		name:      "Fermi-LAT 2FHL catalog",
		file:      "gll_psch_v09.ecsv",
		aliasCols: []string{"ASSOC", "3FGL_Name"},
		classCol:  "CLASS",
		bandUnit:  "cm-2 s-1",
		edgesMeV:  []float64{5e4, 1.71e5, 5.85e5, 2e6},
	},
	"3fhl": {
		tag:       "3fhl",
		name:      "Fermi-LAT 3FHL catalog",
		file:      "gll_psch_v13.ecsv",
		aliasCols: []string{"ASSOC1", "ASSOC2", "ASSOC_TEV"},
		classCol:  "CLASS",
		bandUnit:  "cm-2 s-1",
		edgesMeV:  []float64{1e4, 2e4, 5e4, 1.5e5, 5e5, 2e6},
		hasSpecType: true,
	},
}

// Fermi is one release of the Fermi-LAT point source catalogs.
type Fermi struct {
	*SourceCatalog
	release fermiRelease
}

// NewFermi reads a Fermi-LAT catalog from an ECSV file.  tag selects
// the release: 3fgl, 4fgl, 1fhl, 2fhl or 3fhl.
func NewFermi(tag, path string) (*Fermi, error) {
	rel, ok := fermiReleases[tag]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown fermi release %q", tag)
	}
	t, err := table.ReadECSVFile(path)
	if err != nil {
		return nil, err
	}
	return newFermi(rel, t)
}

func newFermi(rel fermiRelease, t *table.Table) (*Fermi, error) {
	var aliases []string
	for _, col := range rel.aliasCols {
		if t.HasColumn(col) {
			aliases = append(aliases, col)
		}
	}
	base, err := newSourceCatalog(t, "Source_Name", aliases...)
	if err != nil {
		return nil, err
	}
	base.Name = rel.name
	base.Tag = rel.tag
	base.Description = rel.name
	return &Fermi{SourceCatalog: base, release: rel}, nil
}

// SpectralModel builds the spectral model of one source from its
// catalog row.  Amplitudes are per MeV, reference energies are the
// pivot energy of the row.
func (c *Fermi) SpectralModel(s *Source) (models.SpectralModel, error) {
	if c.release.tag == "2fhl" {
		// integral flux between 50 GeV and 2 TeV
		flux, err := s.Float("Flux50")
		if err != nil {
			return nil, err
		}
		index, err := s.Float("Spectral_Index")
		if err != nil {
			return nil, err
		}
		return models.NewPowerLaw2(index, flux, "cm-2 s-1",
			quantity.GeV(50), quantity.TeV(2)), nil
	}

	amp, err := s.Float("Flux_Density")
	if err != nil {
		return nil, err
	}
	pivotMeV, err := s.Float("Pivot_Energy")
	if err != nil {
		return nil, err
	}
	pivot := quantity.MeV(pivotMeV)

	specType := "PowerLaw"
	if c.release.hasSpecType {
		if specType, err = s.String("SpectrumType"); err != nil {
			return nil, err
		}
		specType = strings.TrimSpace(specType)
	}

	switch specType {
	case "PowerLaw":
		index, err := s.Float("Spectral_Index")
		if err != nil {
			return nil, err
		}
		return models.NewPowerLaw(index, amp, fermiAmpUnit, pivot), nil
	case "LogParabola":
		alpha, err := s.Float("Spectral_Index")
		if err != nil {
			return nil, err
		}
		beta, err := s.Float("beta")
		if err != nil {
			return nil, err
		}
		return models.NewLogParabola(alpha, beta, amp, fermiAmpUnit, pivot), nil
	case "PLExpCutoff":
		index, err := s.Float("Spectral_Index")
		if err != nil {
			return nil, err
		}
		cutoff, err := s.Float("Cutoff")
		if err != nil {
			return nil, err
		}
		return models.NewExpCutoffPowerLaw3FGL(index, amp, fermiAmpUnit,
			pivot, quantity.MeV(cutoff)), nil
	case "PLSuperExpCutoff":
		index1, err := s.Float("Spectral_Index")
		if err != nil {
			return nil, err
		}
		index2, err := s.Float("Exp_Index")
		if err != nil {
			return nil, err
		}
		cutoff, err := s.Float("Cutoff")
		if err != nil {
			return nil, err
		}
		return models.NewSuperExpCutoffPowerLaw3FGL(index1, index2, amp,
			fermiAmpUnit, pivot, quantity.MeV(cutoff)), nil
	case "PLSuperExpCutoff2":
		index1, err := s.Float("PLEC_Index")
		if err != nil {
			return nil, err
		}
		index2, err := s.Float("PLEC_Exp_Index")
		if err != nil {
			return nil, err
		}
		expfactor, err := s.Float("PLEC_Expfactor")
		if err != nil {
			return nil, err
		}
		return models.NewSuperExpCutoffPowerLaw4FGL(index1, index2,
			expfactor, amp, fermiAmpUnit, pivot), nil
	}
	return nil, fmt.Errorf("catalog: unknown spectrum type %q", specType)
}

// SpatialModel builds the morphology model of one source in galactic
// coordinates.  Sources without an extended-source entry are points;
// extended sources are keyed on the fitted model form, with map based
// morphologies kept as templates.
func (c *Fermi) SpatialModel(s *Source) (models.SpatialModel, error) {
	glon, err := s.Float("GLON")
	if err != nil {
		return nil, err
	}
	glat, err := s.Float("GLAT")
	if err != nil {
		return nil, err
	}
	pos := sky.FromGalactic(glon, glat)

	var ext string
	if c.Table.HasColumn("Extended_Source_Name") {
		if ext, err = s.String("Extended_Source_Name"); err != nil {
			return nil, err
		}
		ext = strings.TrimSpace(ext)
	}
	if ext == "" {
		return models.NewPointSpatial(pos, models.FrameGalactic), nil
	}

	form, err := s.String("Model_Form")
	if err != nil {
		return nil, err
	}
	switch strings.TrimSpace(form) {
	case "Disk":
		size, err := s.Float("Model_SemiMajor")
		if err != nil {
			return nil, err
		}
		return models.NewDiskSpatial(pos, models.FrameGalactic,
			unit.AngleFromDeg(size)), nil
	case "2D Gaussian":
		size, err := s.Float("Model_SemiMajor")
		if err != nil {
			return nil, err
		}
		return models.NewGaussianSpatial(pos, models.FrameGalactic,
			unit.AngleFromDeg(size)), nil
	case "Ring", "Map":
		var path string
		if c.Table.HasColumn("Spatial_Filename") {
			if path, err = s.String("Spatial_Filename"); err != nil {
				return nil, err
			}
		}
		// templates ship as FITS maps in equatorial coordinates
		return models.NewTemplateSpatial(pos, models.FrameFK5, path), nil
	}
	return nil, fmt.Errorf("catalog: unknown model form %q", form)
}

// SkyModel pairs the spectral and spatial models of one source.
func (c *Fermi) SkyModel(s *Source) (*models.SkyModel, error) {
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

// FluxPoints returns the integral flux per energy band of one
// source.  A band whose lower flux uncertainty is missing is an
// upper limit.
func (c *Fermi) FluxPoints(s *Source) (*FluxPoints, error) {
	flux, err := s.Vector("Flux_Band")
	if err != nil {
		return nil, err
	}
	lo, err := s.Vector("Unc_Flux_Band_Lo")
	if err != nil {
		return nil, err
	}
	hi, err := s.Vector("Unc_Flux_Band_Hi")
	if err != nil {
		return nil, err
	}
	edges := c.release.edgesMeV
	if len(flux) != len(edges)-1 {
		return nil, fmt.Errorf("catalog: Flux_Band has %d bands, expected %d",
			len(flux), len(edges)-1)
	}

	n := len(flux)
	emin := make([]float64, n)
	emax := make([]float64, n)
	eref := make([]float64, n)
	errn := make([]float64, n)
	errp := make([]float64, n)
	isUL := make([]float64, n)
	for i := 0; i < n; i++ {
		emin[i] = edges[i]
		emax[i] = edges[i+1]
		eref[i] = math.Sqrt(edges[i] * edges[i+1])
		errn[i] = math.Abs(lo[i])
		errp[i] = hi[i]
		if math.IsNaN(lo[i]) {
			isUL[i] = 1
			errn[i] = math.NaN()
		}
	}

	t := table.New()
	t.Meta["SED_TYPE"] = "flux"
	for _, col := range []*table.Column{
		{Name: "e_min", Unit: "MeV", Floats: emin},
		{Name: "e_max", Unit: "MeV", Floats: emax},
		{Name: "e_ref", Unit: "MeV", Floats: eref},
		{Name: "flux", Unit: c.release.bandUnit, Floats: flux},
		{Name: "flux_errn", Unit: c.release.bandUnit, Floats: errn},
		{Name: "flux_errp", Unit: c.release.bandUnit, Floats: errp},
		{Name: "is_ul", Floats: isUL},
	} {
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return &FluxPoints{Table: t}, nil
}

// Lightcurve returns the flux history of one source as a table of
// time bins.  The bins span the catalog's observation period evenly;
// the period is read from the MET meta keys TSTART and TSTOP.
func (c *Fermi) Lightcurve(s *Source) (*table.Table, error) {
	flux, err := s.Vector("Flux_History")
	if err != nil {
		return nil, err
	}
	lo, err := s.Vector("Unc_Flux_History_Lo")
	if err != nil {
		return nil, err
	}
	hi, err := s.Vector("Unc_Flux_History_Hi")
	if err != nil {
		return nil, err
	}
	meta := c.Table.Meta
	ref, err := gadf.TimeRefFromMeta(meta)
	if err != nil {
		return nil, err
	}
	var tstart, tstop float64
	if _, err := fmt.Sscan(meta["TSTART"], &tstart); err != nil {
		return nil, fmt.Errorf("catalog: meta TSTART: %w", err)
	}
	if _, err := fmt.Sscan(meta["TSTOP"], &tstop); err != nil {
		return nil, fmt.Errorf("catalog: meta TSTOP: %w", err)
	}

	n := len(flux)
	width := (tstop - tstart) / float64(n)
	tmin := make([]float64, n)
	tmax := make([]float64, n)
	errn := make([]float64, n)
	errp := make([]float64, n)
	for i := 0; i < n; i++ {
		tmin[i] = tstart + float64(i)*width
		tmax[i] = tmin[i] + width
		errn[i] = math.Abs(lo[i])
		errp[i] = hi[i]
	}

	t := table.New()
	t.Meta["MJDREFI"] = fmt.Sprintf("%g", ref.MJDRefI)
	t.Meta["MJDREFF"] = fmt.Sprintf("%g", ref.MJDRefF)
	t.Meta["TIMEUNIT"] = "s"
	for _, col := range []*table.Column{
		{Name: "time_min", Unit: "s", Floats: tmin},
		{Name: "time_max", Unit: "s", Floats: tmax},
		{Name: "flux", Unit: "cm-2 s-1", Floats: flux},
		{Name: "flux_errn", Unit: "cm-2 s-1", Floats: errn},
		{Name: "flux_errp", Unit: "cm-2 s-1", Floats: errp},
	} {
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// source classes of the Fermi catalogs, lower cased
var (
	fermiGalacticClasses = []string{"psr", "pwn", "snr", "spp", "glc"}
	fermiExtraGalacticClasses = []string{
		"css", "bll", "fsrq", "agn", "nlsy1", "rdg", "sey", "bcu", "gal", "ssrq",
	}
)

// SelectSourceClass reduces the catalog to one source class.
// Recognized groups are "galactic", "extra-galactic", "unassociated"
// and "ALL"; any other value selects rows whose class matches it
// exactly, case insensitively.
func (c *Fermi) SelectSourceClass(class string) (*Fermi, error) {
	classes, err := c.Table.Strings(c.release.classCol)
	if err != nil {
		return nil, err
	}
	match := func(cell string) bool {
		v := strings.ToLower(strings.TrimSpace(cell))
		switch class {
		case "ALL":
			return true
		case "galactic":
			return contains(fermiGalacticClasses, v)
		case "extra-galactic":
			return contains(fermiExtraGalacticClasses, v)
		case "unassociated":
			return v == ""
		default:
			return v == strings.ToLower(class)
		}
	}
	mask := make([]bool, len(classes))
	for i, cell := range classes {
		mask[i] = match(cell)
	}
	t, err := c.Table.Where(mask)
	if err != nil {
		return nil, err
	}
	return newFermi(c.release, t)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
