// Package outcome draws one play's outcome: a category from the rate vector,
// then a profile, completion, yardage and turnover.
package outcome

import (
	"context"
	"fmt"

	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/rates"
)

// Category is the coarse result bucket.
type Category string

const (
	Havoc        Category = "havoc"
	Explosive    Category = "explosive"
	Success      Category = "success"
	Unsuccessful Category = "unsuccessful"
)

// Bucket names one outcome profile.
type Bucket string

const (
	HavocSack          Bucket = "havoc-sack"
	HavocTurnover      Bucket = "havoc-turnover"
	HavocTackleForLoss Bucket = "havoc-tackle-for-loss"
	HavocStuffedRun    Bucket = "havoc-stuffed-run"
	ExplosivePass      Bucket = "explosive-pass"
	ExplosiveRun       Bucket = "explosive-run"
	SuccessfulPass     Bucket = "successful-pass"
	SuccessfulRun      Bucket = "successful-run"
	YACCatch           Bucket = "yac-catch"
	YACRun             Bucket = "yac-run"
	UnsuccessfulPass   Bucket = "unsuccessful-pass"
	UnsuccessfulRun    Bucket = "unsuccessful-run"
)

// AllBuckets lists every profile the sampler can select.
var AllBuckets = []Bucket{
	HavocSack, HavocTurnover, HavocTackleForLoss, HavocStuffedRun,
	ExplosivePass, ExplosiveRun,
	SuccessfulPass, SuccessfulRun, YACCatch, YACRun,
	UnsuccessfulPass, UnsuccessfulRun,
}

// HavocSplit is the percentage of havoc plays going to each sub-outcome;
// the remainder is a stuffed run.
type HavocSplit struct {
	Sack          float64
	Turnover      float64
	TackleForLoss float64
}

// Config tunes the sampler.
type Config struct {
	Havoc HavocSplit
	// PrimaryThreshold: a success-bucket roll at or under it uses the primary
	// profile, above it the narrower YAC profile.
	PrimaryThreshold int
	// Paths overrides profile locations; missing buckets use DefaultPath.
	Paths map[Bucket]string
}

// DefaultConfig returns the stock havoc split and YAC threshold.
func DefaultConfig() Config {
	return Config{
		Havoc:            HavocSplit{Sack: 35, Turnover: 15, TackleForLoss: 30},
		PrimaryThreshold: 72,
	}
}

// DefaultPath is where a bucket's profile lives unless overridden.
func DefaultPath(b Bucket) string {
	return "outcomes/" + string(b) + ".json"
}

func (c Config) path(b Bucket) string {
	if p, ok := c.Paths[b]; ok && p != "" {
		return p
	}
	return DefaultPath(b)
}

// Result is one sampled play.
type Result struct {
	Category     Category `json:"category"`
	Bucket       Bucket   `json:"bucket"`
	Yards        int      `json:"yards"`
	Turnover     bool     `json:"turnover"`
	TurnoverType string   `json:"turnoverType,omitempty"`
	Description  string   `json:"description"`
	Complete     bool     `json:"isComplete"`
}

// RollCategory places a d100 roll into the cumulative ranges
// havoc, explosive, success, unsuccessful. A roll exactly on a boundary
// belongs to the earlier bucket.
func RollCategory(roll int, v rates.Vector) Category {
	r := float64(roll)
	switch {
	case r <= v.Havoc:
		return Havoc
	case r <= v.Havoc+v.Explosive:
		return Explosive
	case r <= v.Havoc+v.Explosive+v.Success:
		return Success
	default:
		return Unsuccessful
	}
}

// Sampler runs the per-play sampling sequence.
type Sampler struct {
	profiles Repository
	cfg      Config
	rng      dice.RandomSource
}

// NewSampler wires a sampler. A nil rng uses the default crypto source.
func NewSampler(profiles Repository, cfg Config, rng dice.RandomSource) *Sampler {
	if rng == nil {
		rng = dice.DefaultRNG()
	}
	if cfg.PrimaryThreshold <= 0 {
		cfg.PrimaryThreshold = DefaultConfig().PrimaryThreshold
	}
	return &Sampler{profiles: profiles, cfg: cfg, rng: rng}
}

// Sample draws the category from v and resolves the rest of the play.
func (s *Sampler) Sample(ctx context.Context, pt rates.PlayType, v rates.Vector) (Result, error) {
	return s.SampleCategory(ctx, pt, RollCategory(dice.Roll(s.rng), v))
}

// SampleCategory resolves a play whose category is already known.
func (s *Sampler) SampleCategory(ctx context.Context, pt rates.PlayType, cat Category) (Result, error) {
	bucket := s.bucket(pt, cat)
	res := Result{Category: cat, Bucket: bucket}

	prof, err := s.profiles.Load(ctx, s.cfg.path(bucket))
	if err != nil {
		return res, fmt.Errorf("resolve %s profile: %w", bucket, err)
	}

	res.Complete = true
	if pt == rates.Pass && prof.CompletionPercentage != nil {
		ok, err := dice.Chance(*prof.CompletionPercentage, s.rng)
		if err != nil {
			return res, fmt.Errorf("completion roll: %w", err)
		}
		res.Complete = ok
	}
	if res.Complete {
		res.Yards = SampleYards(dice.Roll(s.rng), prof.AverageYardsGained, prof.StandardDeviation, prof.Skewness)
	}

	to, err := dice.Chance(prof.TurnoverProbability, s.rng)
	if err != nil {
		return res, fmt.Errorf("turnover roll: %w", err)
	}
	if to {
		res.Turnover = true
		res.TurnoverType = prof.TurnoverType
	}

	if res.Complete {
		res.Description = prof.Describe(res.Yards)
	} else {
		res.Description = "Pass falls incomplete."
	}
	return res, nil
}

// bucket picks the profile for a category, consuming the havoc sub-roll or
// the YAC roll where the category has one.
func (s *Sampler) bucket(pt rates.PlayType, cat Category) Bucket {
	pass := pt == rates.Pass
	switch cat {
	case Havoc:
		r := float64(dice.Roll(s.rng))
		h := s.cfg.Havoc
		switch {
		case r <= h.Sack:
			return HavocSack
		case r <= h.Sack+h.Turnover:
			return HavocTurnover
		case r <= h.Sack+h.Turnover+h.TackleForLoss:
			return HavocTackleForLoss
		default:
			return HavocStuffedRun
		}
	case Explosive:
		if pass {
			return ExplosivePass
		}
		return ExplosiveRun
	case Success:
		primary := dice.Roll(s.rng) <= s.cfg.PrimaryThreshold
		switch {
		case pass && primary:
			return SuccessfulPass
		case pass:
			return YACCatch
		case primary:
			return SuccessfulRun
		default:
			return YACRun
		}
	default:
		if pass {
			return UnsuccessfulPass
		}
		return UnsuccessfulRun
	}
}
