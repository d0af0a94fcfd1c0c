package rating

import (
	"math"

	"github.com/markd315/football-vibes-sub000/internal/rates"
)

// FatigueCurve maps stamina to a rating multiplier in three segments:
// flat at High above HighThreshold, linear between MedThreshold and
// HighThreshold, logarithmic below MedThreshold. Floor is applied last.
type FatigueCurve struct {
	HighThreshold float64 // Thi
	MedThreshold  float64 // Tmed
	High          float64 // Mhi
	Med           float64 // Mmed
	Floor         float64 // Mmin
}

// DefaultFatigueCurve returns the documented thresholds and multipliers.
func DefaultFatigueCurve() FatigueCurve {
	return FatigueCurve{
		HighThreshold: 85,
		MedThreshold:  60,
		High:          0.99,
		Med:           0.80,
		Floor:         0.20,
	}
}

// Raw is the piecewise multiplier before the floor.
func (c FatigueCurve) Raw(stamina float64) float64 {
	switch {
	case stamina >= c.HighThreshold:
		return c.High
	case stamina >= c.MedThreshold:
		t := (stamina - c.MedThreshold) / (c.HighThreshold - c.MedThreshold)
		return c.Med + (c.High-c.Med)*t
	default:
		return (c.Med / math.Log10(c.MedThreshold)) * math.Log10(math.Max(stamina, 1))
	}
}

// Multiplier is Raw floored at Floor.
func (c FatigueCurve) Multiplier(stamina float64) float64 {
	return math.Max(c.Raw(stamina), c.Floor)
}

// FatigueRates drive the post-play stamina update.
type FatigueRates struct {
	OnFieldDrain     float64              // every on-field player
	PositionDrain    map[Position]float64 // added on top of OnFieldDrain
	BallCarrierDrain float64              // extra for the run-play ball carrier
	BenchRecovery    float64              // players not on the field
	TimeoutRecovery  float64              // everyone, when a timeout is called
}

// DefaultFatigueRates returns the stock stamina economy.
func DefaultFatigueRates() FatigueRates {
	return FatigueRates{
		OnFieldDrain: 3,
		PositionDrain: map[Position]float64{
			OL: 1, DL: 2, RB: 1, LB: 1,
		},
		BallCarrierDrain: 3,
		BenchRecovery:    6,
		TimeoutRecovery:  4,
	}
}

// PlayInfo is what the fatigue updater needs to know about the finished play.
type PlayInfo struct {
	PlayType    rates.PlayType
	BallCarrier string // player ID, empty on pass plays
}

// UpdateFatigue drains stamina for on-field players and restores it for the
// bench. Stamina stays within [0,100].
func UpdateFatigue(r *Roster, info PlayInfo, fr FatigueRates) {
	if r == nil {
		return
	}
	for _, p := range r.Players {
		if p.OnField {
			d := fr.OnFieldDrain + fr.PositionDrain[p.Position]
			if info.PlayType == rates.Run && p.ID == info.BallCarrier {
				d += fr.BallCarrierDrain
			}
			p.Stamina = clamp(p.Stamina-d, 0, 100)
			continue
		}
		p.Stamina = clamp(p.Stamina+fr.BenchRecovery, 0, 100)
	}
}

// Recover adds stamina to every rostered player, e.g. during a timeout.
func Recover(r *Roster, amount float64) {
	if r == nil {
		return
	}
	for _, p := range r.Players {
		p.Stamina = clamp(p.Stamina+amount, 0, 100)
	}
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
