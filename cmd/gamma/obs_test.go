package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjhzwl/gammapy/data"
)

func writeSelection(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadSelectionSkyCircle(t *testing.T) {
	path := writeSelection(t, `
type: sky_circle
frame: galactic
lon: 184.557
lat: -5.784
radius: 5
border: 2
`)
	sel, err := readSelection(path)
	require.NoError(t, err)
	circle, ok := sel.(data.SkyCircle)
	require.True(t, ok)
	assert.Equal(t, "galactic", circle.Frame)
	assert.Equal(t, 5.0, circle.RadiusDeg)
	assert.Equal(t, 2.0, circle.BorderDeg)
	assert.False(t, circle.Inverted)
}

func TestReadSelectionTimeBox(t *testing.T) {
	path := writeSelection(t, `
type: time_box
start: 2012-01-01T00:00:00Z
stop: 2012-12-31T00:00:00Z
inverted: true
`)
	sel, err := readSelection(path)
	require.NoError(t, err)
	box, ok := sel.(data.TimeBox)
	require.True(t, ok)
	assert.Equal(t, 2012, box.Start.Year())
	assert.True(t, box.Inverted)
}

func TestReadSelectionParBox(t *testing.T) {
	path := writeSelection(t, `
type: par_box
variable: ZEN_PNT
min: 0
max: 30
unit: deg
`)
	sel, err := readSelection(path)
	require.NoError(t, err)
	box, ok := sel.(data.ParBox)
	require.True(t, ok)
	assert.Equal(t, "ZEN_PNT", box.Variable)
	assert.Equal(t, 30.0, box.Max)
}

func TestReadSelectionErrors(t *testing.T) {
	_, err := readSelection(writeSelection(t, "type: nope\n"))
	assert.Error(t, err)

	_, err = readSelection(writeSelection(t, "type: time_box\nstart: yesterday\n"))
	assert.Error(t, err)
}
