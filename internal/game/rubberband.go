package game

import (
	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/rates"
)

// RubberBandConfig holds the late-down catch-up rule.
type RubberBandConfig struct {
	MinDown             int
	MinConsecutive      int
	BigPenaltyMaxRoll   int
	BigPenaltyYards     int
	SmallPenaltyMaxRoll int
	SmallPenaltyYards   int
	PassSuccessBoost    float64
	RunBoostFactor      float64
	// ConversionRate is the success rate on 1st and 2nd down only; the run
	// boost is a fraction of it.
	ConversionRate float64
}

func DefaultRubberBandConfig() RubberBandConfig {
	return RubberBandConfig{
		MinDown:             3,
		MinConsecutive:      2,
		BigPenaltyMaxRoll:   10,
		BigPenaltyYards:     5,
		SmallPenaltyMaxRoll: 18,
		SmallPenaltyYards:   3,
		PassSuccessBoost:    30,
		RunBoostFactor:      0.2,
		ConversionRate:      60,
	}
}

// Adjustment is applied before the category roll.
type Adjustment struct {
	Active       bool    `json:"active"`
	PenaltyYards int     `json:"penaltyYards,omitempty"`
	SuccessBoost float64 `json:"successBoost,omitempty"`
}

// Apply boosts the success bucket of v.
func (a Adjustment) Apply(v rates.Vector) rates.Vector {
	return v.Boost(a.SuccessBoost)
}

// RubberBand evaluates the catch-up rule for the coming play. It consumes a
// roll only for a pass play that qualifies.
func RubberBand(st State, pt rates.PlayType, rng dice.RandomSource, cfg RubberBandConfig) Adjustment {
	if st.Down < cfg.MinDown || st.ConsecutiveUnsuccessfulPlays < cfg.MinConsecutive {
		return Adjustment{}
	}
	switch pt {
	case rates.Pass:
		r := dice.Roll(rng)
		switch {
		case r <= cfg.BigPenaltyMaxRoll:
			return Adjustment{Active: true, PenaltyYards: cfg.BigPenaltyYards}
		case r <= cfg.SmallPenaltyMaxRoll:
			return Adjustment{Active: true, PenaltyYards: cfg.SmallPenaltyYards}
		default:
			return Adjustment{Active: true, SuccessBoost: cfg.PassSuccessBoost}
		}
	case rates.Run:
		return Adjustment{Active: true, SuccessBoost: cfg.RunBoostFactor * cfg.ConversionRate}
	}
	return Adjustment{}
}
