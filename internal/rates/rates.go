// Package rates turns a coarse advantage/leverage evaluation into outcome
// probabilities for one play.
package rates

import "math"

// PlayType for rate purposes; special teams never reach the rate model.
type PlayType string

const (
	Pass PlayType = "pass"
	Run  PlayType = "run"
)

// Documented fallbacks for missing or malformed evaluator input.
const (
	DefaultSuccess   = 45.0
	DefaultHavoc     = 11.0
	DefaultExplosive = 13.0
)

const (
	goodBase        = 52.0
	goodPerAdvScale = 4.5
	goodMin         = 5.0
	goodMax         = 95.0

	leverageScale = 2.4
	bucketFloor   = 3.0 // reserved to each of explosive and havoc

	successMin  = 3.0
	successMax  = 90.0
	volatileMin = 3.0
	volatileMax = 65.0
)

// baselineVolatile is the explosive+havoc total at zero leverage.
var baselineVolatile = map[PlayType]float64{
	Pass: 26,
	Run:  20,
}

// Vector holds the three sampled buckets as percentages. The unsuccessful
// bucket is implied.
type Vector struct {
	Success   float64 `json:"success-rate"`
	Explosive float64 `json:"explosive-rate"`
	Havoc     float64 `json:"havoc-rate"`
}

// Default is the baseline vector used when no evaluation is available.
func Default() Vector {
	return Vector{Success: DefaultSuccess, Explosive: DefaultExplosive, Havoc: DefaultHavoc}
}

// Unsuccessful is 100 minus the other buckets. It can be negative.
func (v Vector) Unsuccessful() float64 {
	return 100 - v.Success - v.Explosive - v.Havoc
}

// Overcommitted reports whether the buckets sum past 100. Buckets are never
// renormalized; callers may only flag it.
func (v Vector) Overcommitted() bool {
	return v.Unsuccessful() < 0
}

// Boost adds points to the success bucket, taken from the unsuccessful one.
// The boost never pushes the sum past 100; an already overcommitted vector is
// returned unchanged.
func (v Vector) Boost(points float64) Vector {
	if points <= 0 {
		return v
	}
	room := v.Unsuccessful()
	if room <= 0 {
		return v
	}
	v.Success += math.Min(points, room)
	return v
}

// Compute is the rate model. It is pure: identical inputs always produce
// identical vectors. advantage is clamped to [-10,10], leverage to [0,10].
func Compute(pt PlayType, advantage, leverage float64) Vector {
	advantage = clamp(nanTo(advantage, 0), -10, 10)
	leverage = clamp(nanTo(leverage, 0), 0, 10)

	good := clamp(goodBase+advantage*goodPerAdvScale, goodMin, goodMax)

	base, ok := baselineVolatile[pt]
	if !ok {
		base = baselineVolatile[Pass]
	}
	pool := base + leverage*leverageScale
	offense := (advantage + 10) / 20
	free := math.Max(pool-2*bucketFloor, 0)

	explosive := clamp(bucketFloor+free*offense, volatileMin, volatileMax)
	havoc := clamp(bucketFloor+free*(1-offense), volatileMin, volatileMax)
	success := clamp(math.Max(successMin, good-explosive), successMin, successMax)

	return Vector{Success: success, Explosive: explosive, Havoc: havoc}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nanTo(v, d float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return d
	}
	return v
}
