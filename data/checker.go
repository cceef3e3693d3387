package data

import (
	"fmt"

	"github.com/fjhzwl/gammapy/gadf"
)

// check levels
const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// CheckRecord is one finding of the observation table checker.
type CheckRecord struct {
	Level string
	HDU   string
	Msg   string
}

// columns an obs-index table must carry, with their required units
var requiredColumns = []struct {
	name, unit string
}{
	{"OBS_ID", ""},
	{"RA_PNT", "deg"},
	{"DEC_PNT", "deg"},
	{"TSTART", "s"},
	{"TSTOP", "s"},
}

// Check validates the obs-index table against the data format
// conventions.  An empty result means the table passed.
func (o *ObservationTable) Check() []CheckRecord {
	var recs []CheckRecord
	add := func(level, msg string) {
		recs = append(recs, CheckRecord{Level: level, HDU: "obs-index", Msg: msg})
	}

	for _, key := range gadf.MetaRequired {
		if _, ok := o.Meta[key]; !ok {
			add(LevelError, fmt.Sprintf("missing meta key %s", key))
		}
	}
	if o.Meta["HDUCLAS1"] != "INDEX" {
		add(LevelError, "HDUCLAS1 must be INDEX")
	}
	if o.Meta["HDUCLAS2"] != "OBS" {
		add(LevelError, "HDUCLAS2 must be OBS")
	}

	if o.Len() == 0 {
		add(LevelError, "table has no rows")
	}
	for _, rc := range requiredColumns {
		col, err := o.Column(rc.name)
		if err != nil {
			add(LevelError, fmt.Sprintf("missing column %s", rc.name))
			continue
		}
		if col.Unit != rc.unit {
			add(LevelError, fmt.Sprintf("column %s has unit %q, want %q",
				rc.name, col.Unit, rc.unit))
		}
	}

	if tstart, err := o.Floats("TSTART"); err == nil {
		tstop, err := o.Floats("TSTOP")
		if err == nil {
			for i := range tstart {
				if tstop[i] < tstart[i] {
					add(LevelError, fmt.Sprintf("row %d: TSTOP before TSTART", i))
				}
			}
		}
	}
	if ids, err := o.ObsID(); err == nil {
		seen := make(map[float64]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				add(LevelError, fmt.Sprintf("duplicate OBS_ID %v", id))
			}
			seen[id] = true
		}
	}
	if dec, err := o.Floats("DEC_PNT"); err == nil {
		for i, d := range dec {
			if d < -90 || d > 90 {
				add(LevelError, fmt.Sprintf("row %d: DEC_PNT %g out of range", i, d))
			}
		}
	}
	return recs
}
