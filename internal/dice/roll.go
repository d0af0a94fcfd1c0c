package dice

import "errors"

var ErrInvalidPercent = errors.New("invalid percentage; must be 0..100")

// Roll draws a uniform integer in [1,100].
func Roll(rng RandomSource) int {
	if rng == nil {
		rng = DefaultRNG()
	}
	return clampRoll(1 + int(rng.Float64()*100))
}

// Between draws a uniform integer in [lo,hi]. Arguments may be given in either order.
func Between(rng RandomSource, lo, hi int) int {
	if rng == nil {
		rng = DefaultRNG()
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo + 1
	n := int(rng.Float64() * float64(span))
	if n >= span {
		n = span - 1
	}
	return lo + n
}

// Chance rolls d100 and reports whether the roll landed at or under pct.
// pct <= 0 never hits, pct >= 100 always hits without consuming a roll.
func Chance(pct float64, rng RandomSource) (bool, error) {
	if err := validatePercent(pct); err != nil {
		return false, err
	}
	if pct <= 0 {
		return false, nil
	}
	if pct >= 100 {
		return true, nil
	}
	return float64(Roll(rng)) <= pct, nil
}

func clampRoll(r int) int {
	if r < 1 {
		return 1
	}
	if r > 100 {
		return 100
	}
	return r
}
