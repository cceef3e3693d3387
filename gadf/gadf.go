// Package gadf holds header conventions of the gamma-ray astronomy
// data formats specification, in particular the time reference
// keywords shared by observation index and GTI tables.
package gadf

import (
	"fmt"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"

	"github.com/fjhzwl/gammapy/quantity"
)

// standard HDU keywords
const (
	HDUClass = "GADF"
	HDUDoc   = "https://github.com/open-gamma-ray-astro/gamma-astro-data-formats"
	HDUVers  = "0.2"
)

// MetaRequired lists the header keys an obs-index table must carry.
var MetaRequired = []string{
	"HDUCLASS",
	"HDUDOC",
	"HDUVERS",
	"HDUCLAS1",
	"HDUCLAS2",
	"MJDREFI",
	"MJDREFF",
	"TIMEUNIT",
	"TIMESYS",
	"TIMEREF",
	"GEOLON",
	"GEOLAT",
	"ALTITUDE",
}

// TimeRef is the mission time reference of a table.
type TimeRef struct {
	MJDRefI  float64
	MJDRefF  float64
	TimeUnit string // unit of mission elapsed time values, default "s"
	TimeSys  string
	TimeRef  string
}

// TimeRefFromMeta reads the time reference keywords from table meta.
func TimeRefFromMeta(meta map[string]string) (TimeRef, error) {
	var r TimeRef
	var err error
	if r.MJDRefI, err = metaFloat(meta, "MJDREFI"); err != nil {
		return r, err
	}
	if r.MJDRefF, err = metaFloat(meta, "MJDREFF"); err != nil {
		return r, err
	}
	r.TimeUnit = meta["TIMEUNIT"]
	if r.TimeUnit == "" {
		r.TimeUnit = "s"
	}
	r.TimeSys = meta["TIMESYS"]
	r.TimeRef = meta["TIMEREF"]
	return r, nil
}

func metaFloat(meta map[string]string, key string) (float64, error) {
	s, ok := meta[key]
	if !ok {
		return 0, fmt.Errorf("gadf: missing meta key %s", key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("gadf: meta key %s: %w", key, err)
	}
	return v, nil
}

// MJD returns the reference epoch as a modified julian date.
func (r TimeRef) MJD() float64 { return r.MJDRefI + r.MJDRefF }

// Elapsed converts an absolute time into mission elapsed time in the
// reference's time unit.
func (r TimeRef) Elapsed(t time.Time) (float64, error) {
	mjd := julian.TimeToJD(t) - base.JMod
	sec := (mjd - r.MJD()) * 86400
	return quantity.Convert(sec, "s", r.TimeUnit)
}

// Absolute converts mission elapsed time back into an absolute time.
func (r TimeRef) Absolute(met float64) (time.Time, error) {
	sec, err := quantity.Convert(met, r.TimeUnit, "s")
	if err != nil {
		return time.Time{}, err
	}
	jd := r.MJD() + sec/86400 + base.JMod
	return julian.JDToTime(jd), nil
}
