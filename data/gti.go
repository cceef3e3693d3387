package data

import (
	"fmt"

	"github.com/fjhzwl/gammapy/gadf"
	"github.com/fjhzwl/gammapy/quantity"
	"github.com/fjhzwl/gammapy/table"
)

// GTI is a good time interval table with START and STOP columns in
// seconds of mission elapsed time.
type GTI struct {
	*table.Table
}

// CreateGTI builds a single interval GTI table for one observation,
// carrying the time reference keywords over from the obs-index table.
func (o *ObservationTable) CreateGTI(obsID float64) (*GTI, error) {
	sel, err := o.SelectObsID([]float64{obsID})
	if err != nil {
		return nil, err
	}
	tstart, err := sel.Floats("TSTART")
	if err != nil {
		return nil, err
	}
	tstop, err := sel.Floats("TSTOP")
	if err != nil {
		return nil, err
	}
	ref, err := o.TimeRef()
	if err != nil {
		return nil, err
	}

	// intervals in seconds regardless of the table's time unit
	start := make([]float64, len(tstart))
	stop := make([]float64, len(tstop))
	for i := range tstart {
		if start[i], err = quantity.Convert(tstart[i], ref.TimeUnit, "s"); err != nil {
			return nil, err
		}
		if stop[i], err = quantity.Convert(tstop[i], ref.TimeUnit, "s"); err != nil {
			return nil, err
		}
	}

	t := table.New()
	t.Meta["HDUCLASS"] = gadf.HDUClass
	t.Meta["HDUDOC"] = gadf.HDUDoc
	t.Meta["HDUVERS"] = gadf.HDUVers
	t.Meta["HDUCLAS1"] = "GTI"
	t.Meta["MJDREFI"] = fmt.Sprintf("%g", ref.MJDRefI)
	t.Meta["MJDREFF"] = fmt.Sprintf("%g", ref.MJDRefF)
	t.Meta["TIMEUNIT"] = "s"
	t.Meta["TIMESYS"] = ref.TimeSys
	t.Meta["TIMEREF"] = ref.TimeRef
	if err := t.AddColumn(&table.Column{Name: "START", Unit: "s", Floats: start}); err != nil {
		return nil, err
	}
	if err := t.AddColumn(&table.Column{Name: "STOP", Unit: "s", Floats: stop}); err != nil {
		return nil, err
	}
	return &GTI{Table: t}, nil
}

// TimeSum returns the summed length of all intervals in seconds.
func (g *GTI) TimeSum() (float64, error) {
	start, err := g.Floats("START")
	if err != nil {
		return 0, err
	}
	stop, err := g.Floats("STOP")
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := range start {
		sum += stop[i] - start[i]
	}
	return sum, nil
}
