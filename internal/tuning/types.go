package tuning

import (
	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rating"
)

// RawConfig mirrors play-state-machine.json and timing.json. A nil pointer
// means the document left the value unset.
type RawConfig struct {
	Version      string            `yaml:"version"`
	Havoc        *HavocRaw         `yaml:"havoc-outcomes,omitempty"`
	YAC          *YACRaw           `yaml:"yac,omitempty"`
	RubberBand   *RubberBandRaw    `yaml:"rubber-band,omitempty"`
	Fatigue      *FatigueRaw       `yaml:"fatigue,omitempty"`
	SpecialTeams *SpecialTeamsRaw  `yaml:"special-teams,omitempty"`
	OutcomePaths map[string]string `yaml:"outcome-paths,omitempty"`

	ClockRunoff             map[string]RunoffRaw `yaml:"clock-runoff,omitempty"`
	TimeoutIncompleteRunoff *int                 `yaml:"timeout-incomplete-runoff,omitempty"`
}

type HavocRaw struct {
	Sack          *float64 `yaml:"sack"`
	Turnover      *float64 `yaml:"turnover"`
	TackleForLoss *float64 `yaml:"tackle-for-loss"`
}

type YACRaw struct {
	PrimaryThreshold *int `yaml:"primary-threshold"`
}

type RubberBandRaw struct {
	MinDown             *int     `yaml:"min-down"`
	MinConsecutive      *int     `yaml:"min-consecutive-unsuccessful"`
	BigPenaltyMaxRoll   *int     `yaml:"big-penalty-max-roll"`
	BigPenaltyYards     *int     `yaml:"big-penalty-yards"`
	SmallPenaltyMaxRoll *int     `yaml:"small-penalty-max-roll"`
	SmallPenaltyYards   *int     `yaml:"small-penalty-yards"`
	PassSuccessBoost    *float64 `yaml:"pass-success-boost"`
	RunBoostFactor      *float64 `yaml:"run-boost-factor"`
	ConversionRate      *float64 `yaml:"conversion-rate-1st-2nd-down-only"`
}

type FatigueRaw struct {
	HighThreshold    *float64 `yaml:"high-threshold"`
	MedThreshold     *float64 `yaml:"med-threshold"`
	High             *float64 `yaml:"high-multiplier"`
	Med              *float64 `yaml:"med-multiplier"`
	Floor            *float64 `yaml:"min-multiplier"`
	OnFieldDrain     *float64 `yaml:"on-field-drain"`
	BallCarrierDrain *float64 `yaml:"ball-carrier-drain"`
	BenchRecovery    *float64 `yaml:"bench-recovery"`
	TimeoutRecovery  *float64 `yaml:"timeout-recovery"`
}

type SpecialTeamsRaw struct {
	PuntBase       *int     `yaml:"punt-base"`
	PuntSpread     *int     `yaml:"punt-spread"`
	FieldGoalBase  *float64 `yaml:"field-goal-base"`
	FieldGoalSlope *float64 `yaml:"field-goal-slope"`
}

type RunoffRaw struct {
	Winning *int `yaml:"winning"`
	Losing  *int `yaml:"losing"`
}

// Params is the normalized tuning every engine component reads.
type Params struct {
	Version      string
	Sampler      outcome.Config
	RubberBand   game.RubberBandConfig
	SpecialTeams game.SpecialTeamsConfig
	Timing       game.Timing
	Fatigue      rating.FatigueCurve
	Stamina      rating.FatigueRates
}

// Defaults are the built-in values used for anything the files leave unset.
func Defaults() Params {
	return Params{
		Sampler:      outcome.DefaultConfig(),
		RubberBand:   game.DefaultRubberBandConfig(),
		SpecialTeams: game.DefaultSpecialTeamsConfig(),
		Timing:       game.DefaultTiming(),
		Fatigue:      rating.DefaultFatigueCurve(),
		Stamina:      rating.DefaultFatigueRates(),
	}
}
