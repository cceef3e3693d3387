package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjhzwl/gammapy/catalog"
)

func load3FGL(t *testing.T) *catalog.Fermi {
	t.Helper()
	c, err := catalog.NewFermi("3fgl", "testdata/fermi_3fgl.ecsv")
	require.NoError(t, err)
	return c
}

func TestNameIndex(t *testing.T) {
	c := load3FGL(t)
	require.Equal(t, 5, c.Len())

	// primary name, association aliases, and case folding all resolve
	for _, name := range []string{
		"3FGL J0534.5+2201",
		"Crab",
		"PSR J0534+2200",
		"Crab Nebula",
		"crab nebula",
	} {
		i, err := c.RowIndex(name)
		require.NoError(t, err, name)
		assert.Equal(t, 3, i, name)
	}

	_, err := c.RowIndex("Vela X")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNoSource))
}

func TestSource(t *testing.T) {
	c := load3FGL(t)
	s, err := c.Source("Crab")
	require.NoError(t, err)
	assert.Equal(t, "3FGL J0534.5+2201", s.Name)
	assert.Equal(t, 3, s.Index)

	p, err := s.Position()
	require.NoError(t, err)
	assert.InDelta(t, 83.637, p.RADeg(), 1e-9)
	assert.InDelta(t, 22.024, p.DecDeg(), 1e-9)

	cls, err := s.String("CLASS1")
	require.NoError(t, err)
	assert.Equal(t, "PSR", cls)

	info := s.Info()
	assert.Contains(t, info, "3FGL J0534.5+2201")

	_, err = c.SourceByIndex(99)
	assert.Error(t, err)
}
