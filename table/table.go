// Package table implements the column-oriented tables that the
// catalog and observation packages are built on.
//
// A table holds scalar float columns, vector float columns (one
// fixed-length float slice per row) and string columns, each with an
// optional unit string, plus table-level metadata.  Integer data from
// ECSV files is widened to float64.
package table

import (
	"errors"
	"fmt"
)

// ErrNoColumn is wrapped by lookups of columns that do not exist.
var ErrNoColumn = errors.New("no such column")

// Column is a single named table column.  Exactly one of Floats,
// Vectors and Strings is non-nil.
type Column struct {
	Name string
	Unit string

	Floats  []float64
	Vectors [][]float64
	Strings []string
}

func (c *Column) Len() int {
	switch {
	case c.Floats != nil:
		return len(c.Floats)
	case c.Vectors != nil:
		return len(c.Vectors)
	default:
		return len(c.Strings)
	}
}

// subset returns a new column holding the rows listed in idx.
func (c *Column) subset(idx []int) *Column {
	s := &Column{Name: c.Name, Unit: c.Unit}
	switch {
	case c.Floats != nil:
		s.Floats = make([]float64, len(idx))
		for i, j := range idx {
			s.Floats[i] = c.Floats[j]
		}
	case c.Vectors != nil:
		s.Vectors = make([][]float64, len(idx))
		for i, j := range idx {
			s.Vectors[i] = c.Vectors[j]
		}
	default:
		s.Strings = make([]string, len(idx))
		for i, j := range idx {
			s.Strings[i] = c.Strings[j]
		}
	}
	return s
}

// Table is an ordered set of equal-length columns with metadata.
type Table struct {
	Meta map[string]string

	cols   []*Column
	byName map[string]*Column
}

func New() *Table {
	return &Table{
		Meta:   map[string]string{},
		byName: map[string]*Column{},
	}
}

func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// AddColumn appends a column.  All columns must have the same length.
func (t *Table) AddColumn(c *Column) error {
	if len(t.cols) > 0 && c.Len() != t.Len() {
		return fmt.Errorf("table: column %s has %d rows, table has %d",
			c.Name, c.Len(), t.Len())
	}
	if _, dup := t.byName[c.Name]; dup {
		return fmt.Errorf("table: duplicate column %s", c.Name)
	}
	t.cols = append(t.cols, c)
	t.byName[c.Name] = c
	return nil
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

func (t *Table) Column(name string) (*Column, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("table: %w: %s", ErrNoColumn, name)
	}
	return c, nil
}

// Floats returns the data of a scalar float column.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Floats == nil {
		return nil, fmt.Errorf("table: column %s is not a float column", name)
	}
	return c.Floats, nil
}

// Strings returns the data of a string column.
func (t *Table) Strings(name string) ([]string, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Strings == nil {
		return nil, fmt.Errorf("table: column %s is not a string column", name)
	}
	return c.Strings, nil
}

// Vectors returns the data of a vector float column.
func (t *Table) Vectors(name string) ([][]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Vectors == nil {
		return nil, fmt.Errorf("table: column %s is not a vector column", name)
	}
	return c.Vectors, nil
}

func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Columns() []*Column { return t.cols }

// Rows returns a new table holding the listed rows, sharing no row
// storage with the receiver.  Metadata is copied.
func (t *Table) Rows(idx []int) (*Table, error) {
	for _, i := range idx {
		if i < 0 || i >= t.Len() {
			return nil, fmt.Errorf("table: row %d out of range", i)
		}
	}
	s := New()
	for k, v := range t.Meta {
		s.Meta[k] = v
	}
	for _, c := range t.cols {
		if err := s.AddColumn(c.subset(idx)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Where returns the rows for which mask is true.
func (t *Table) Where(mask []bool) (*Table, error) {
	if len(mask) != t.Len() {
		return nil, fmt.Errorf("table: mask has %d entries, table has %d rows",
			len(mask), t.Len())
	}
	var idx []int
	for i, m := range mask {
		if m {
			idx = append(idx, i)
		}
	}
	return t.Rows(idx)
}
