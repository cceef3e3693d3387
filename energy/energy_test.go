package energy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjhzwl/gammapy/energy"
	"github.com/fjhzwl/gammapy/quantity"
)

func TestLogspace(t *testing.T) {
	e, err := energy.Logspace(quantity.TeV(0.1), quantity.TeV(10), 3, false)
	require.NoError(t, err)
	require.Len(t, e, 3)
	assert.InDelta(t, 0.1, e[0].TeV(), 1e-12)
	assert.InDelta(t, 1.0, e[1].TeV(), 1e-12)
	assert.InDelta(t, 10.0, e[2].TeV(), 1e-12)
}

func TestLogspaceEven(t *testing.T) {
	e, err := energy.Logspace(quantity.GeV(30), quantity.TeV(3), 7, false)
	require.NoError(t, err)
	// ratios between neighbors are constant
	r := e[1].TeV() / e[0].TeV()
	for i := 1; i < len(e)-1; i++ {
		assert.InDelta(t, r, e[i+1].TeV()/e[i].TeV(), 1e-9)
	}
	assert.InDelta(t, 0.03, e[0].TeV(), 1e-12)
	assert.InDelta(t, 3.0, e[len(e)-1].TeV(), 1e-9)
}

func TestLogspacePerDecade(t *testing.T) {
	// 3 decades at 4 edges per decade
	e, err := energy.Logspace(quantity.GeV(1), quantity.TeV(1), 4, true)
	require.NoError(t, err)
	assert.Len(t, e, 12)
}

func TestLogspaceErrors(t *testing.T) {
	_, err := energy.Logspace(quantity.TeV(1), quantity.TeV(0.1), 5, false)
	assert.Error(t, err)
	_, err = energy.Logspace(quantity.TeV(-1), quantity.TeV(1), 5, false)
	assert.Error(t, err)
	_, err = energy.Logspace(quantity.TeV(0.1), quantity.TeV(1), 1, false)
	assert.Error(t, err)
}

func TestCenters(t *testing.T) {
	edges := []quantity.Energy{quantity.TeV(1), quantity.TeV(100)}
	c := energy.Centers(edges)
	require.Len(t, c, 1)
	assert.InDelta(t, 10, c[0].TeV(), 1e-9)
	assert.Nil(t, energy.Centers(edges[:1]))
}
