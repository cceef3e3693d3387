// Package catalog gives row-level access to published gamma-ray
// source catalogs.
//
// A catalog is a table with a source name index.  Primary names and
// association aliases both resolve to a row; when an alias collides
// with a primary name the primary name wins.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fjhzwl/gammapy/sky"
	"github.com/fjhzwl/gammapy/table"
)

// ErrNoSource is wrapped by lookups of source names that are not in
// the catalog.
var ErrNoSource = errors.New("no such source")

// SourceCatalog is the common core of all catalogs.
type SourceCatalog struct {
	Name        string
	Tag         string
	Description string

	Table *table.Table

	nameCol   string
	aliasCols []string
	index     map[string]int
}

// Cataloger is implemented by every catalog type.
type Cataloger interface {
	Base() *SourceCatalog
}

func (c *SourceCatalog) Base() *SourceCatalog { return c }

// newSourceCatalog indexes t by the primary name column and the
// alias columns.  Alias cells may hold several comma separated names.
func newSourceCatalog(t *table.Table, nameCol string, aliasCols ...string) (*SourceCatalog, error) {
	c := &SourceCatalog{
		Table:     t,
		nameCol:   nameCol,
		aliasCols: aliasCols,
		index:     map[string]int{},
	}
	names, err := t.Strings(nameCol)
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, dup := c.index[key]; !dup {
			c.index[key] = i
		}
	}
	for _, col := range aliasCols {
		aliases, err := t.Strings(col)
		if err != nil {
			return nil, err
		}
		for i, cell := range aliases {
			for _, alias := range strings.Split(cell, ",") {
				key := normalize(alias)
				if key == "" {
					continue
				}
				if _, taken := c.index[key]; !taken {
					c.index[key] = i
				}
			}
		}
	}
	return c, nil
}

// normalize folds a source name for index lookup.
func normalize(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

func (c *SourceCatalog) Len() int { return c.Table.Len() }

// RowIndex returns the row of a source by primary name or alias.
func (c *SourceCatalog) RowIndex(name string) (int, error) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return 0, fmt.Errorf("catalog: %w: %s", ErrNoSource, name)
	}
	return i, nil
}

// Source returns the row view of a source by name or alias.
func (c *SourceCatalog) Source(name string) (*Source, error) {
	i, err := c.RowIndex(name)
	if err != nil {
		return nil, err
	}
	return c.SourceByIndex(i)
}

// SourceByIndex returns the row view of a source by row number.
func (c *SourceCatalog) SourceByIndex(i int) (*Source, error) {
	if i < 0 || i >= c.Len() {
		return nil, fmt.Errorf("catalog: row %d out of range", i)
	}
	names, err := c.Table.Strings(c.nameCol)
	if err != nil {
		return nil, err
	}
	return &Source{Catalog: c, Index: i, Name: strings.TrimSpace(names[i])}, nil
}

// Source is a single catalog row.
type Source struct {
	Catalog *SourceCatalog
	Index   int
	Name    string
}

// Float returns one scalar cell of the row.
func (s *Source) Float(col string) (float64, error) {
	v, err := s.Catalog.Table.Floats(col)
	if err != nil {
		return 0, err
	}
	return v[s.Index], nil
}

// String returns one string cell of the row.
func (s *Source) String(col string) (string, error) {
	v, err := s.Catalog.Table.Strings(col)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v[s.Index]), nil
}

// Vector returns one vector cell of the row.
func (s *Source) Vector(col string) ([]float64, error) {
	v, err := s.Catalog.Table.Vectors(col)
	if err != nil {
		return nil, err
	}
	return v[s.Index], nil
}

// position column names tried in order
var positionCols = [][2]string{
	{"RAJ2000", "DEJ2000"},
	{"RA", "DEC"},
	{"ra", "dec"},
}

// Position returns the ICRS position of the source.  Catalogs given
// in galactic coordinates only are converted.
func (s *Source) Position() (sky.Point, error) {
	t := s.Catalog.Table
	for _, cols := range positionCols {
		if t.HasColumn(cols[0]) && t.HasColumn(cols[1]) {
			ra, err := s.Float(cols[0])
			if err != nil {
				return sky.Point{}, err
			}
			dec, err := s.Float(cols[1])
			if err != nil {
				return sky.Point{}, err
			}
			return sky.New(ra, dec), nil
		}
	}
	for _, cols := range [][2]string{{"GLON", "GLAT"}, {"glon", "glat"}} {
		if t.HasColumn(cols[0]) && t.HasColumn(cols[1]) {
			lon, err := s.Float(cols[0])
			if err != nil {
				return sky.Point{}, err
			}
			lat, err := s.Float(cols[1])
			if err != nil {
				return sky.Point{}, err
			}
			return sky.FromGalactic(lon, lat), nil
		}
	}
	return sky.Point{}, errors.New("catalog: no position columns")
}

// Info returns a short description of the source row.
func (s *Source) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (row %d of %s)\n", s.Name, s.Index, s.Catalog.Name)
	if p, err := s.Position(); err == nil {
		fmt.Fprintf(&b, "position: %v\n", p)
	}
	return b.String()
}
