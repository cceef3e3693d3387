// Package sky, celestial positions and circular sky regions.
//
// Positions are stored in the ICRS frame.  Galactic conversions go
// through the meeus coordinate package, which works on the B1950
// equinox, so positions are precessed across before and after.
package sky

import (
	"fmt"
	"math"

	"github.com/soniakeys/coord"
	mcoord "github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/precess"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// besselian epochs used for the galactic conversion round trip
const (
	epochJ2000 = 2000.0
	epochB1950 = 1950.0
)

// Point is a position on the celestial sphere in the ICRS frame.
type Point struct {
	ra  unit.Angle // right ascension
	dec unit.Angle // declination
}

// New returns a point from ICRS right ascension and declination in
// degrees.
func New(raDeg, decDeg float64) Point {
	return Point{unit.AngleFromDeg(raDeg), unit.AngleFromDeg(decDeg)}
}

func (p Point) RADeg() float64  { return p.ra.Deg() }
func (p Point) DecDeg() float64 { return p.dec.Deg() }

func (p Point) String() string {
	return fmt.Sprintf("%v %v",
		sexa.FmtRA(unit.RA(p.ra.Rad())), sexa.FmtAngle(p.dec))
}

// cart returns the unit vector of the point.
func (p Point) cart() coord.Cart {
	sdec, cdec := math.Sincos(p.dec.Rad())
	sra, cra := math.Sincos(p.ra.Rad())
	return coord.Cart{X: cra * cdec, Y: sra * cdec, Z: sdec}
}

// Separation returns the great circle angle between two points.
func (p Point) Separation(q Point) unit.Angle {
	a := p.cart()
	b := q.cart()
	d := a.Dot(&b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return unit.Angle(math.Acos(d))
}

// Galactic returns the galactic longitude and latitude of the point.
func (p Point) Galactic() (lon, lat unit.Angle) {
	eq := &mcoord.Equatorial{RA: unit.RA(p.ra.Rad()), Dec: p.dec}
	eq50 := &mcoord.Equatorial{}
	precess.Position(eq, eq50, epochJ2000, epochB1950, 0, 0)
	g := new(mcoord.Galactic).EqToGal(eq50)
	return g.Lon, g.Lat
}

// FromGalactic returns the ICRS point for galactic coordinates given
// in degrees.
func FromGalactic(lonDeg, latDeg float64) Point {
	g := &mcoord.Galactic{
		Lon: unit.AngleFromDeg(lonDeg),
		Lat: unit.AngleFromDeg(latDeg),
	}
	eq50 := new(mcoord.Equatorial).GalToEq(g)
	eq := &mcoord.Equatorial{}
	precess.Position(eq50, eq, epochB1950, epochJ2000, 0, 0)
	ra := eq.RA.Rad()
	if ra < 0 {
		ra += 2 * math.Pi
	}
	return Point{unit.Angle(ra), eq.Dec}
}

// Circle is a spherical cap region.
type Circle struct {
	Center Point
	Radius unit.Angle
}

// Contains reports whether the point lies inside or on the circle.
func (c Circle) Contains(p Point) bool {
	return c.Center.Separation(p).Rad() <= c.Radius.Rad()
}
