// Package data implements observation bookkeeping on top of the
// obs-index tables of the gamma-ray astronomy data formats.
package data

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/unit"

	"github.com/fjhzwl/gammapy/gadf"
	"github.com/fjhzwl/gammapy/quantity"
	"github.com/fjhzwl/gammapy/sky"
	"github.com/fjhzwl/gammapy/table"
)

// ErrNoObservation is wrapped by lookups of observation ids that are
// not in the table.
var ErrNoObservation = errors.New("no such observation")

// ObservationTable is an obs-index table.
type ObservationTable struct {
	*table.Table
}

// ReadObservationTable reads an obs-index table from an ECSV file.
func ReadObservationTable(path string) (*ObservationTable, error) {
	t, err := table.ReadECSVFile(path)
	if err != nil {
		return nil, err
	}
	return &ObservationTable{Table: t}, nil
}

// TimeRef returns the mission time reference of the table.
func (o *ObservationTable) TimeRef() (gadf.TimeRef, error) {
	return gadf.TimeRefFromMeta(o.Meta)
}

// ObsID returns the observation ids.
func (o *ObservationTable) ObsID() ([]float64, error) {
	return o.Floats("OBS_ID")
}

// ObsIdx returns the row indices of the given observation ids, in
// order.  An id not present in the table is an error.
func (o *ObservationTable) ObsIdx(ids []float64) ([]int, error) {
	col, err := o.ObsID()
	if err != nil {
		return nil, err
	}
	byID := make(map[float64]int, len(col))
	for i, id := range col {
		byID[id] = i
	}
	idx := make([]int, len(ids))
	for i, id := range ids {
		j, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("data: %w: OBS_ID %v", ErrNoObservation, id)
		}
		idx[i] = j
	}
	return idx, nil
}

// SelectObsID returns the table reduced to the given observation ids.
func (o *ObservationTable) SelectObsID(ids []float64) (*ObservationTable, error) {
	idx, err := o.ObsIdx(ids)
	if err != nil {
		return nil, err
	}
	t, err := o.Rows(idx)
	if err != nil {
		return nil, err
	}
	return &ObservationTable{Table: t}, nil
}

// Pointing returns the ICRS pointing position of one row.
func (o *ObservationTable) Pointing(row int) (sky.Point, error) {
	ra, err := o.Floats("RA_PNT")
	if err != nil {
		return sky.Point{}, err
	}
	dec, err := o.Floats("DEC_PNT")
	if err != nil {
		return sky.Point{}, err
	}
	if row < 0 || row >= len(ra) {
		return sky.Point{}, fmt.Errorf("data: row %d out of range", row)
	}
	return sky.New(ra[row], dec[row]), nil
}

// PointingGalactic returns the galactic pointing of one row, from
// GLON_PNT/GLAT_PNT when present, else by frame conversion.
func (o *ObservationTable) PointingGalactic(row int) (lon, lat unit.Angle, err error) {
	if o.HasColumn("GLON_PNT") && o.HasColumn("GLAT_PNT") {
		glon, _ := o.Floats("GLON_PNT")
		glat, _ := o.Floats("GLAT_PNT")
		if row < 0 || row >= len(glon) {
			return 0, 0, fmt.Errorf("data: row %d out of range", row)
		}
		return unit.AngleFromDeg(glon[row]), unit.AngleFromDeg(glat[row]), nil
	}
	p, err := o.Pointing(row)
	if err != nil {
		return 0, 0, err
	}
	lon, lat = p.Galactic()
	return lon, lat, nil
}

// SelectRange selects the rows whose column value falls in the
// half-open interval [min, max), given in rangeUnit and converted
// into the column unit.  min == max selects exact matches.  Inverted
// selects the complement.
func (o *ObservationTable) SelectRange(column string, min, max float64, rangeUnit string, inverted bool) (*ObservationTable, error) {
	mask, err := o.rangeMask(column, min, max, rangeUnit, inverted)
	if err != nil {
		return nil, err
	}
	t, err := o.Where(mask)
	if err != nil {
		return nil, err
	}
	return &ObservationTable{Table: t}, nil
}

func (o *ObservationTable) rangeMask(column string, min, max float64, rangeUnit string, inverted bool) ([]bool, error) {
	col, err := o.Column(column)
	if err != nil {
		return nil, err
	}
	if col.Floats == nil {
		return nil, fmt.Errorf("data: column %s is not numeric", column)
	}
	f := 1.0
	if rangeUnit != "" && col.Unit != "" && rangeUnit != col.Unit {
		if f, err = quantity.Factor(rangeUnit, col.Unit); err != nil {
			return nil, err
		}
	}
	lo, hi := min*f, max*f
	mask := make([]bool, len(col.Floats))
	for i, v := range col.Floats {
		var in bool
		if lo == hi {
			in = v == lo
		} else {
			in = v >= lo && v < hi
		}
		mask[i] = in != inverted
	}
	return mask, nil
}

// SelectTimeRange selects the rows whose value in the named time
// column falls in the half-open interval [start, stop).  Time columns
// hold mission elapsed times interpreted with the table's time
// reference, unless meta TIME_FORMAT is "absolute", in which case
// they hold modified julian dates.
func (o *ObservationTable) SelectTimeRange(column string, start, stop time.Time, inverted bool) (*ObservationTable, error) {
	mask, err := o.timeMask(column, start, stop, inverted)
	if err != nil {
		return nil, err
	}
	t, err := o.Where(mask)
	if err != nil {
		return nil, err
	}
	return &ObservationTable{Table: t}, nil
}

func (o *ObservationTable) timeMask(column string, start, stop time.Time, inverted bool) ([]bool, error) {
	tv, err := o.Floats(column)
	if err != nil {
		return nil, err
	}

	var lo, hi float64
	if strings.EqualFold(o.Meta["TIME_FORMAT"], "absolute") {
		lo = mjd(start)
		hi = mjd(stop)
	} else {
		ref, err := o.TimeRef()
		if err != nil {
			return nil, err
		}
		if lo, err = ref.Elapsed(start); err != nil {
			return nil, err
		}
		if hi, err = ref.Elapsed(stop); err != nil {
			return nil, err
		}
	}

	mask := make([]bool, len(tv))
	for i, v := range tv {
		in := v >= lo && v < hi
		mask[i] = in != inverted
	}
	return mask, nil
}

func mjd(t time.Time) float64 {
	ref := time.Date(1858, 11, 17, 0, 0, 0, 0, time.UTC)
	return t.Sub(ref).Seconds() / 86400
}

// Summary returns a short human readable description of the table.
func (o *ObservationTable) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "observation table: %d rows\n", o.Len())
	if name, ok := o.Meta["OBSERVATORY_NAME"]; ok {
		fmt.Fprintf(&b, "observatory: %s\n", name)
	}
	fmt.Fprintf(&b, "columns: %s\n", strings.Join(o.Names(), ", "))
	if tstart, err := o.Floats("TSTART"); err == nil && len(tstart) > 0 {
		lo, hi := math.Inf(1), math.Inf(-1)
		tstop, _ := o.Floats("TSTOP")
		for i := range tstart {
			lo = math.Min(lo, tstart[i])
			if tstop != nil {
				hi = math.Max(hi, tstop[i])
			}
		}
		fmt.Fprintf(&b, "time range: %g to %g\n", lo, hi)
	}
	return b.String()
}
