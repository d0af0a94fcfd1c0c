package outcome

import "math"

// winitzkiA is the constant of Winitzki's erf approximation.
var winitzkiA = 8 * (math.Pi - 3) / (3 * math.Pi * (4 - math.Pi))

// maxZ bounds the quantile for degenerate percentiles.
const maxZ = 10.0

// InvNormal approximates the standard-normal quantile through Winitzki's
// closed-form inverse error function. p <= 0 maps to -10 and p >= 1 to +10.
func InvNormal(p float64) float64 {
	if math.IsNaN(p) || p <= 0 {
		return -maxZ
	}
	if p >= 1 {
		return maxZ
	}
	x := 2*p - 1
	ln := math.Log(1 - x*x)
	t := 2/(math.Pi*winitzkiA) + ln/2
	z := math.Sqrt2 * math.Sqrt(math.Sqrt(t*t-ln/winitzkiA)-t)
	if x < 0 {
		return -z
	}
	return z
}

// RollPercentile maps a d100 roll onto [0,1].
func RollPercentile(roll int) float64 {
	return float64(roll-1) / 99
}

// SampleYards converts a roll into yardage for a profile shape: quantile,
// first-order skew-normal correction, then mean + z*sd rounded.
func SampleYards(roll int, mean, sd, skew float64) int {
	z := InvNormal(RollPercentile(roll))
	if skew != 0 {
		z += skew * (z*z - 1) / 6
	}
	return int(math.Round(mean + z*sd))
}
