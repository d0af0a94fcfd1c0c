package tuning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
)

var ErrInvalidConfig = errors.New("invalid tuning config")

func pct(v *float64) bool { return v == nil || (*v >= 0 && *v <= 100) }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ValidateRaw checks semantic constraints of a merged RawConfig and reports
// every violation at once.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if h := cfg.Havoc; h != nil {
		if !pct(h.Sack) || !pct(h.Turnover) || !pct(h.TackleForLoss) {
			errs = append(errs, "havoc-outcomes values must be in [0,100]")
		}
		if deref(h.Sack)+deref(h.Turnover)+deref(h.TackleForLoss) > 100 {
			errs = append(errs, "havoc-outcomes must sum to at most 100")
		}
	}

	if cfg.YAC != nil && cfg.YAC.PrimaryThreshold != nil {
		if t := *cfg.YAC.PrimaryThreshold; t < 1 || t > 100 {
			errs = append(errs, "yac.primary-threshold must be in [1,100]")
		}
	}

	if r := cfg.RubberBand; r != nil {
		if r.MinDown != nil && (*r.MinDown < 1 || *r.MinDown > 4) {
			errs = append(errs, "rubber-band.min-down must be in [1,4]")
		}
		if r.MinConsecutive != nil && *r.MinConsecutive < 0 {
			errs = append(errs, "rubber-band.min-consecutive-unsuccessful must be >= 0")
		}
		for name, v := range map[string]*int{
			"big-penalty-max-roll":   r.BigPenaltyMaxRoll,
			"small-penalty-max-roll": r.SmallPenaltyMaxRoll,
		} {
			if v != nil && (*v < 0 || *v > 100) {
				errs = append(errs, fmt.Sprintf("rubber-band.%s must be in [0,100]", name))
			}
		}
		if r.BigPenaltyMaxRoll != nil && r.SmallPenaltyMaxRoll != nil && *r.SmallPenaltyMaxRoll < *r.BigPenaltyMaxRoll {
			errs = append(errs, "rubber-band.small-penalty-max-roll must be >= big-penalty-max-roll")
		}
		if (r.BigPenaltyYards != nil && *r.BigPenaltyYards < 0) || (r.SmallPenaltyYards != nil && *r.SmallPenaltyYards < 0) {
			errs = append(errs, "rubber-band penalty yards must be >= 0")
		}
		if (r.PassSuccessBoost != nil && *r.PassSuccessBoost < 0) || (r.RunBoostFactor != nil && *r.RunBoostFactor < 0) {
			errs = append(errs, "rubber-band boosts must be >= 0")
		}
		if !pct(r.ConversionRate) {
			errs = append(errs, "rubber-band.conversion-rate-1st-2nd-down-only must be in [0,100]")
		}
	}

	if f := cfg.Fatigue; f != nil {
		if f.MedThreshold != nil && *f.MedThreshold <= 1 {
			errs = append(errs, "fatigue.med-threshold must be > 1")
		}
		if f.HighThreshold != nil && f.MedThreshold != nil && *f.HighThreshold <= *f.MedThreshold {
			errs = append(errs, "fatigue.high-threshold must be > med-threshold")
		}
		for name, v := range map[string]*float64{
			"high-multiplier": f.High,
			"med-multiplier":  f.Med,
			"min-multiplier":  f.Floor,
		} {
			if v != nil && (*v < 0 || *v > 1) {
				errs = append(errs, fmt.Sprintf("fatigue.%s must be in [0,1]", name))
			}
		}
		if f.High != nil && f.Med != nil && *f.Med > *f.High {
			errs = append(errs, "fatigue.med-multiplier must be <= high-multiplier")
		}
		for _, v := range []*float64{f.OnFieldDrain, f.BallCarrierDrain, f.BenchRecovery, f.TimeoutRecovery} {
			if v != nil && *v < 0 {
				errs = append(errs, "fatigue drain and recovery values must be >= 0")
				break
			}
		}
	}

	if s := cfg.SpecialTeams; s != nil {
		if s.PuntBase != nil && *s.PuntBase <= 0 {
			errs = append(errs, "special-teams.punt-base must be > 0")
		}
		if s.PuntSpread != nil && *s.PuntSpread < 0 {
			errs = append(errs, "special-teams.punt-spread must be >= 0")
		}
		if s.PuntBase != nil && s.PuntSpread != nil && *s.PuntSpread >= *s.PuntBase {
			errs = append(errs, "special-teams.punt-spread must be < punt-base")
		}
		if !pct(s.FieldGoalBase) {
			errs = append(errs, "special-teams.field-goal-base must be in [0,100]")
		}
		if s.FieldGoalSlope != nil && *s.FieldGoalSlope < 0 {
			errs = append(errs, "special-teams.field-goal-slope must be >= 0")
		}
	}

	known := make(map[outcome.Bucket]bool, len(outcome.AllBuckets))
	for _, b := range outcome.AllBuckets {
		known[b] = true
	}
	for k, v := range cfg.OutcomePaths {
		if !known[outcome.Bucket(k)] {
			errs = append(errs, fmt.Sprintf("outcome-paths: unknown bucket %q", k))
		} else if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Sprintf("outcome-paths.%s must not be empty", k))
		}
	}

	for k, v := range cfg.ClockRunoff {
		if _, err := game.ParsePlayType(k); err != nil {
			errs = append(errs, fmt.Sprintf("clock-runoff: unknown play type %q", k))
			continue
		}
		if (v.Winning != nil && *v.Winning < 0) || (v.Losing != nil && *v.Losing < 0) {
			errs = append(errs, fmt.Sprintf("clock-runoff.%s must be >= 0", k))
		}
	}
	if cfg.TimeoutIncompleteRunoff != nil && *cfg.TimeoutIncompleteRunoff < 0 {
		errs = append(errs, "timeout-incomplete-runoff must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
