package modeling

import "math"

// Bounded parameters are handed to the minimizer through the same
// internal/external variable transforms minuit uses, so the search
// space itself is unbounded:
//
//	lower bound only:  v = lo - 1 + sqrt(x*x + 1)
//	upper bound only:  v = hi + 1 - sqrt(x*x + 1)
//	two-sided:         v = lo + (hi - lo)/2 * (sin(x) + 1)

func toInternal(v, lo, hi float64) float64 {
	hasLo := !math.IsNaN(lo)
	hasHi := !math.IsNaN(hi)
	switch {
	case hasLo && hasHi:
		u := 2*(v-lo)/(hi-lo) - 1
		if u < -1 {
			u = -1
		} else if u > 1 {
			u = 1
		}
		return math.Asin(u)
	case hasLo:
		if v < lo {
			v = lo
		}
		d := v - lo + 1
		return math.Sqrt(d*d - 1)
	case hasHi:
		if v > hi {
			v = hi
		}
		d := hi - v + 1
		return math.Sqrt(d*d - 1)
	default:
		return v
	}
}

func toExternal(x, lo, hi float64) float64 {
	hasLo := !math.IsNaN(lo)
	hasHi := !math.IsNaN(hi)
	switch {
	case hasLo && hasHi:
		return lo + (hi-lo)/2*(math.Sin(x)+1)
	case hasLo:
		return lo - 1 + math.Sqrt(x*x+1)
	case hasHi:
		return hi + 1 - math.Sqrt(x*x+1)
	default:
		return x
	}
}
