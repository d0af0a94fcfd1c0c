// Package sim is the validation harness: large-N runs of the sampler and the
// state machine, summarized with gonum.
package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rates"
)

// Stats summarizes a sample.
type Stats struct {
	Trials int     `json:"trials"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	P10    float64 `json:"p10"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

func calcStats(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if n == 1 {
		std = 0
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	return Stats{
		Trials: n,
		Mean:   mean,
		StdDev: std,
		P10:    stat.Quantile(0.10, stat.Empirical, cp, nil),
		P50:    stat.Quantile(0.50, stat.Empirical, cp, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, cp, nil),
		Min:    cp[0],
		Max:    cp[n-1],
	}
}

// RunYardsPerPlay samples trials plays of type pt at vector v and summarizes
// the yardage.
func RunYardsPerPlay(ctx context.Context, s *outcome.Sampler, pt rates.PlayType, v rates.Vector, trials int) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	samples := make([]float64, trials)
	for i := range samples {
		res, err := s.Sample(ctx, pt, v)
		if err != nil {
			return Stats{}, fmt.Errorf("trial %d: %w", i, err)
		}
		samples[i] = float64(res.Yards)
	}
	return calcStats(samples), nil
}

// ForcedSequence forces the category of every play in a series and asks how
// often the offense moves the chains.
type ForcedSequence struct {
	PlayType   rates.PlayType
	Category   outcome.Category
	Plays      int        // plays per trial; 0 means 3
	Start      game.State // zero value means game.Default
	RubberBand game.RubberBandConfig
}

// SequenceStats reports how often a forced sequence reached a first down.
type SequenceStats struct {
	Trials     int     `json:"trials"`
	FirstDowns int     `json:"firstDowns"`
	Turnovers  int     `json:"turnovers"`
	Rate       float64 `json:"rate"` // percentage of trials
}

// RunForcedSequence replays fs trials times. A trial succeeds on a first down
// or touchdown and fails on a turnover or safety. The rubber band applies as
// it would in a game, so its penalty roll is drawn from rng before each play.
func RunForcedSequence(ctx context.Context, s *outcome.Sampler, rng dice.RandomSource, fs ForcedSequence, trials int) (SequenceStats, error) {
	if fs.Plays <= 0 {
		fs.Plays = 3
	}
	if fs.Start == (game.State{}) {
		fs.Start = game.Default()
	}
	out := SequenceStats{Trials: trials}
	for i := 0; i < trials; i++ {
		st := fs.Start
	series:
		for p := 0; p < fs.Plays; p++ {
			adj := game.RubberBand(st, fs.PlayType, rng, fs.RubberBand)
			res, err := s.SampleCategory(ctx, fs.PlayType, fs.Category)
			if err != nil {
				return SequenceStats{}, fmt.Errorf("trial %d: %w", i, err)
			}
			tr := game.Advance(&st, game.Outcome{
				PlayType: fs.PlayType,
				Category: res.Category,
				Yards:    res.Yards + adj.PenaltyYards,
				Turnover: res.Turnover,
			})
			switch {
			case tr.Turnover:
				out.Turnovers++
				break series
			case tr.FirstDown || tr.Touchdown:
				out.FirstDowns++
				break series
			case tr.Safety || tr.TurnoverOnDowns:
				break series
			}
		}
	}
	if trials > 0 {
		out.Rate = 100 * float64(out.FirstDowns) / float64(trials)
	}
	return out, nil
}

// QuantileGap compares the engine's inverse-normal approximation with
// gonum's reference quantile at one percentile.
type QuantileGap struct {
	P         float64 `json:"p"`
	Engine    float64 `json:"engine"`
	Reference float64 `json:"reference"`
	Diff      float64 `json:"diff"`
}

// CompareQuantiles evaluates both functions at every interior roll
// percentile (r-1)/99, r in [2,99], and returns the gaps and the largest
// absolute one. The two are not numerically identical.
func CompareQuantiles() ([]QuantileGap, float64) {
	var gaps []QuantileGap
	worst := 0.0
	for r := 2; r <= 99; r++ {
		p := float64(r-1) / 99
		g := QuantileGap{P: p, Engine: outcome.InvNormal(p), Reference: distuv.UnitNormal.Quantile(p)}
		g.Diff = g.Engine - g.Reference
		worst = math.Max(worst, math.Abs(g.Diff))
		gaps = append(gaps, g)
	}
	return gaps, worst
}
