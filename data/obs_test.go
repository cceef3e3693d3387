package data_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjhzwl/gammapy/data"
	"github.com/fjhzwl/gammapy/table"
)

// newObsTable builds a small obs-index table with four observations.
// MJDREFI 51910 puts MET 0 at 2001-01-01T00:00:00 UTC.
func newObsTable(t *testing.T) *data.ObservationTable {
	t.Helper()
	tb := table.New()
	tb.Meta["HDUCLASS"] = "GADF"
	tb.Meta["HDUDOC"] = "https://github.com/open-gamma-ray-astro/gamma-astro-data-formats"
	tb.Meta["HDUVERS"] = "0.2"
	tb.Meta["HDUCLAS1"] = "INDEX"
	tb.Meta["HDUCLAS2"] = "OBS"
	tb.Meta["MJDREFI"] = "51910"
	tb.Meta["MJDREFF"] = "0"
	tb.Meta["TIMEUNIT"] = "s"
	tb.Meta["TIMESYS"] = "TT"
	tb.Meta["TIMEREF"] = "LOCAL"
	tb.Meta["TIME_FORMAT"] = "MET"
	tb.Meta["GEOLON"] = "16.5"
	tb.Meta["GEOLAT"] = "-23.27"
	tb.Meta["ALTITUDE"] = "1800"
	tb.Meta["OBSERVATORY_NAME"] = "HESS"

	cols := []*table.Column{
		{Name: "OBS_ID", Floats: []float64{1, 2, 3, 4}},
		{Name: "RA_PNT", Unit: "deg", Floats: []float64{83.63, 84.0, 10.0, 200.0}},
		{Name: "DEC_PNT", Unit: "deg", Floats: []float64{22.01, 22.5, -30.0, 45.0}},
		{Name: "TSTART", Unit: "s", Floats: []float64{0, 86400, 172800, 259200}},
		{Name: "TSTOP", Unit: "s", Floats: []float64{3600, 90000, 176400, 262800}},
		{Name: "ZEN_PNT", Unit: "deg", Floats: []float64{10, 20, 30, 45}},
	}
	for _, c := range cols {
		require.NoError(t, tb.AddColumn(c))
	}
	return &data.ObservationTable{Table: tb}
}

func utc(y, m, d, h int) time.Time {
	return time.Date(y, time.Month(m), d, h, 0, 0, 0, time.UTC)
}

func obsIDs(t *testing.T, o *data.ObservationTable) []float64 {
	t.Helper()
	ids, err := o.ObsID()
	require.NoError(t, err)
	return ids
}

func TestSelectObsID(t *testing.T) {
	o := newObsTable(t)
	sel, err := o.SelectObsID([]float64{3, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, obsIDs(t, sel))

	_, err = o.SelectObsID([]float64{99})
	require.Error(t, err)
	assert.True(t, errors.Is(err, data.ErrNoObservation))
}

func TestSelectRange(t *testing.T) {
	o := newObsTable(t)

	// the interval is half-open: the row at exactly 30 deg is out
	sel, err := o.SelectRange("ZEN_PNT", 0, 30, "deg", false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	// range bounds given in another angle unit
	sel, err = o.SelectRange("ZEN_PNT", 0, 1800, "arcmin", false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	// min == max selects exact matches
	sel, err = o.SelectRange("ZEN_PNT", 20, 20, "deg", false)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, obsIDs(t, sel))

	// inverted selects the complement, boundary row included
	sel, err = o.SelectRange("ZEN_PNT", 0, 30, "deg", true)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, obsIDs(t, sel))

	_, err = o.SelectRange("NO_SUCH", 0, 1, "", false)
	assert.True(t, errors.Is(err, table.ErrNoColumn))
}

func TestSelectTimeRange(t *testing.T) {
	o := newObsTable(t)

	sel, err := o.SelectTimeRange("TSTART", utc(2001, 1, 1, 0), utc(2001, 1, 2, 12), false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	sel, err = o.SelectTimeRange("TSTART", utc(2001, 1, 1, 0), utc(2001, 1, 2, 12), true)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, obsIDs(t, sel))

	// half-open: a row starting exactly at stop is out
	sel, err = o.SelectTimeRange("TSTART", utc(2001, 1, 1, 0), utc(2001, 1, 2, 0), false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, obsIDs(t, sel))

	// the selection column is free; TSTOP picks up the first row here
	sel, err = o.SelectTimeRange("TSTOP", utc(2001, 1, 1, 0), utc(2001, 1, 2, 0), false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, obsIDs(t, sel))

	_, err = o.SelectTimeRange("NO_SUCH", utc(2001, 1, 1, 0), utc(2001, 1, 2, 0), false)
	assert.True(t, errors.Is(err, table.ErrNoColumn))
}

func TestSelectTimeRangeAbsolute(t *testing.T) {
	o := newObsTable(t)
	o.Meta["TIME_FORMAT"] = "absolute"
	// columns now hold MJD values
	tstart, err := o.Floats("TSTART")
	require.NoError(t, err)
	tstop, err := o.Floats("TSTOP")
	require.NoError(t, err)
	mjds := []float64{51910, 51911, 51912, 51913}
	for i := range tstart {
		tstart[i] = mjds[i]
		tstop[i] = mjds[i] + 0.04
	}

	sel, err := o.SelectTimeRange("TSTART", utc(2001, 1, 1, 0), utc(2001, 1, 2, 12), false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))
}

func TestSelectObservations(t *testing.T) {
	o := newObsTable(t)

	sel, err := o.SelectObservations(data.SkyCircle{
		Frame: "icrs", LonDeg: 83.63, LatDeg: 22.01, RadiusDeg: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	// the border widens the acceptance
	sel, err = o.SelectObservations(data.SkyCircle{
		Frame: "icrs", LonDeg: 83.63, LatDeg: 22.01, RadiusDeg: 0.1, BorderDeg: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	// same region given in galactic coordinates
	sel, err = o.SelectObservations(data.SkyCircle{
		Frame: "galactic", LonDeg: 184.557, LatDeg: -5.784, RadiusDeg: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	sel, err = o.SelectObservations(data.TimeBox{
		Start: utc(2001, 1, 1, 0), Stop: utc(2001, 1, 2, 12),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	sel, err = o.SelectObservations(data.ParBox{
		Variable: "ZEN_PNT", Min: 0, Max: 30, Unit: "deg",
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, obsIDs(t, sel))

	_, err = o.SelectObservations(nil)
	assert.Error(t, err)

	_, err = o.SelectObservations(data.SkyCircle{Frame: "fk4"})
	assert.Error(t, err)
}

func TestPointingGalactic(t *testing.T) {
	o := newObsTable(t)
	lon, lat, err := o.PointingGalactic(0)
	require.NoError(t, err)
	assert.InDelta(t, 184.557, lon.Deg(), 0.05)
	assert.InDelta(t, -5.784, lat.Deg(), 0.05)
}

func TestCreateGTI(t *testing.T) {
	o := newObsTable(t)
	gti, err := o.CreateGTI(2)
	require.NoError(t, err)

	assert.Equal(t, "GADF", gti.Meta["HDUCLASS"])
	assert.Equal(t, "GTI", gti.Meta["HDUCLAS1"])
	assert.Equal(t, "s", gti.Meta["TIMEUNIT"])

	start, err := gti.Floats("START")
	require.NoError(t, err)
	stop, err := gti.Floats("STOP")
	require.NoError(t, err)
	assert.Equal(t, []float64{86400}, start)
	assert.Equal(t, []float64{90000}, stop)

	sum, err := gti.TimeSum()
	require.NoError(t, err)
	assert.InDelta(t, 3600, sum, 1e-9)

	_, err = o.CreateGTI(99)
	assert.True(t, errors.Is(err, data.ErrNoObservation))
}

func TestChecker(t *testing.T) {
	o := newObsTable(t)
	assert.Empty(t, o.Check())

	delete(o.Meta, "MJDREFI")
	recs := o.Check()
	require.Len(t, recs, 1)
	assert.Equal(t, data.LevelError, recs[0].Level)
	assert.Contains(t, recs[0].Msg, "MJDREFI")

	tstop, err := o.Floats("TSTOP")
	require.NoError(t, err)
	tstop[0] = -1
	recs = o.Check()
	assert.Len(t, recs, 2)
}

func TestCheckerValues(t *testing.T) {
	o := newObsTable(t)
	o.Meta["HDUCLAS1"] = "EVENTS"
	o.Meta["HDUCLAS2"] = "GTI"
	recs := o.Check()
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0].Msg, "HDUCLAS1 must be INDEX")
	assert.Contains(t, recs[1].Msg, "HDUCLAS2 must be OBS")
}

func TestCheckerUnits(t *testing.T) {
	o := newObsTable(t)
	ra, err := o.Column("RA_PNT")
	require.NoError(t, err)
	ra.Unit = "rad"
	tstart, err := o.Column("TSTART")
	require.NoError(t, err)
	tstart.Unit = "d"

	recs := o.Check()
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, data.LevelError, r.Level)
	}
	assert.Contains(t, recs[0].Msg, `column RA_PNT has unit "rad"`)
	assert.Contains(t, recs[1].Msg, `column TSTART has unit "d"`)
}

func TestCheckerEmpty(t *testing.T) {
	o := newObsTable(t)
	empty, err := o.Where(make([]bool, o.Len()))
	require.NoError(t, err)
	recs := (&data.ObservationTable{Table: empty}).Check()
	require.Len(t, recs, 1)
	assert.Equal(t, data.LevelError, recs[0].Level)
	assert.Contains(t, recs[0].Msg, "no rows")
}

func TestSummary(t *testing.T) {
	o := newObsTable(t)
	s := o.Summary()
	assert.Contains(t, s, "4 rows")
	assert.Contains(t, s, "HESS")
	assert.Contains(t, s, "OBS_ID")
}
