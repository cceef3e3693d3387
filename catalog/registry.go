package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvDataDir names the environment variable pointing at the local
// copy of the reference datasets.
const EnvDataDir = "GAMMAPY_DATA"

type registryEntry struct {
	description string
	file        string // relative to the dataset directory
	load        func(path string) (Cataloger, error)
}

var registry = map[string]registryEntry{
	"3fgl": {
		description: fermiReleases["3fgl"].name,
		file:        "catalogs/fermi/gll_psc_v16.ecsv",
		load:        func(p string) (Cataloger, error) { return NewFermi("3fgl", p) },
	},
	"4fgl": {
		description: fermiReleases["4fgl"].name,
		file:        "catalogs/fermi/gll_psc_v20.ecsv",
		load:        func(p string) (Cataloger, error) { return NewFermi("4fgl", p) },
	},
	"1fhl": {
		description: fermiReleases["1fhl"].name,
		file:        "catalogs/fermi/gll_psch_v07.ecsv",
		load:        func(p string) (Cataloger, error) { return NewFermi("1fhl", p) },
	},
	"2fhl": {
		description: fermiReleases["2fhl"].name,
		file:        "catalogs/fermi/gll_psch_v09.ecsv",
		load:        func(p string) (Cataloger, error) { return NewFermi("2fhl", p) },
	},
	"3fhl": {
		description: fermiReleases["3fhl"].name,
		file:        "catalogs/fermi/gll_psch_v13.ecsv",
		load:        func(p string) (Cataloger, error) { return NewFermi("3fhl", p) },
	},
	"hgps": {
		description: "H.E.S.S. galactic plane survey catalog",
		file:        "catalogs/hgps_catalog_v1.ecsv",
		load:        func(p string) (Cataloger, error) { return NewHESS(p) },
	},
	"2hwc": {
		description: "2HWC catalog from the HAWC observatory",
		file:        "catalogs/2HWC.ecsv",
		load:        func(p string) (Cataloger, error) { return NewHAWC(p) },
	},
	"gamma-cat": {
		description: "gamma-cat, an open catalog of TeV sources",
		file:        "catalogs/gammacat.ecsv",
		load:        func(p string) (Cataloger, error) { return NewGammaCat(p) },
	},
	"snrcat": {
		description: "SNRcat supernova remnant catalog",
		file:        "catalogs/snrcat.ecsv",
		load:        func(p string) (Cataloger, error) { return NewSNRCat(p) },
	},
}

// Tags lists the registered catalogs.
func Tags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Describe returns the one line description of a registered catalog.
func Describe(tag string) (string, error) {
	e, ok := registry[tag]
	if !ok {
		return "", fmt.Errorf("catalog: unknown tag %q", tag)
	}
	return e.description, nil
}

// Load reads a registered catalog from the dataset directory named
// by GAMMAPY_DATA.
func Load(tag string) (Cataloger, error) {
	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		return nil, fmt.Errorf("catalog: %s is not set", EnvDataDir)
	}
	return LoadFrom(tag, dir)
}

// LoadFrom reads a registered catalog from a dataset directory.
func LoadFrom(tag, dir string) (Cataloger, error) {
	e, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown tag %q", tag)
	}
	return e.load(filepath.Join(dir, e.file))
}
