package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/markd315/football-vibes-sub000/data"
	"github.com/markd315/football-vibes-sub000/internal/config"
	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rates"
	"github.com/markd315/football-vibes-sub000/internal/sim"
	"github.com/markd315/football-vibes-sub000/internal/tuning"
)

type yardsRow struct {
	PlayType rates.PlayType `json:"playType"`
	sim.Stats
}

type sequenceRow struct {
	Name string `json:"name"`
	sim.SequenceStats
}

type report struct {
	Yards         []yardsRow    `json:"yardsPerPlay"`
	Sequences     []sequenceRow `json:"forcedSequences"`
	WorstQuantile float64       `json:"worstQuantileGap"`
}

func main() {
	// flags default to the service config
	defaults := config.Config{SimTrials: 300000}
	if cfg, err := config.LoadConfig(); err == nil {
		defaults = *cfg
	} else {
		fmt.Fprintf(os.Stderr, "config: %v; using built-in defaults\n", err)
	}

	trials := flag.Int("trials", defaults.SimTrials, "plays per yards-per-play run")
	seqTrials := flag.Int("sequence-trials", 100000, "series per forced-sequence run")
	seed := flag.Uint64("seed", defaults.RNGSeed, "PCG seed; 0 uses the crypto source")
	dataDir := flag.String("data", defaults.DataDir, "directory with outcomes/ and tuning files; empty uses the embedded set")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *trials <= 0 || *seqTrials <= 0 {
		fmt.Fprintln(os.Stderr, "usage: simulate [--trials N] [--sequence-trials N] [--seed S] [--data dir] [--json]")
		os.Exit(2)
	}

	var (
		fsys   fs.FS = data.FS
		loader       = tuning.NewLoader(data.FS, tuning.DefaultPaths())
	)
	if *dataDir != "" {
		fsys = os.DirFS(*dataDir)
		loader = tuning.NewDirLoader(*dataDir)
	}
	params, err := loader.Params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load tuning: %v\n", err)
		os.Exit(1)
	}

	rng := dice.DefaultRNG()
	if *seed != 0 {
		rng = dice.NewSeededRNG(*seed)
	}

	rep, err := run(context.Background(), outcome.NewSampler(outcome.NewFileRepository(fsys), params.Sampler, rng), rng, params, *trials, *seqTrials)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
		return
	}
	printTable(rep)
}

func run(ctx context.Context, s *outcome.Sampler, rng dice.RandomSource, params tuning.Params, trials, seqTrials int) (report, error) {
	var rep report
	v := rates.Default()
	for _, pt := range []rates.PlayType{rates.Pass, rates.Run} {
		st, err := sim.RunYardsPerPlay(ctx, s, pt, v, trials)
		if err != nil {
			return rep, fmt.Errorf("%s yards: %w", pt, err)
		}
		rep.Yards = append(rep.Yards, yardsRow{PlayType: pt, Stats: st})
	}

	sequences := []struct {
		name string
		pt   rates.PlayType
		cat  outcome.Category
	}{
		{"3x unsuccessful run", rates.Run, outcome.Unsuccessful},
		{"3x successful pass", rates.Pass, outcome.Success},
	}
	for _, sq := range sequences {
		st, err := sim.RunForcedSequence(ctx, s, rng, sim.ForcedSequence{
			PlayType:   sq.pt,
			Category:   sq.cat,
			RubberBand: params.RubberBand,
		}, seqTrials)
		if err != nil {
			return rep, fmt.Errorf("%s: %w", sq.name, err)
		}
		rep.Sequences = append(rep.Sequences, sequenceRow{Name: sq.name, SequenceStats: st})
	}

	_, rep.WorstQuantile = sim.CompareQuantiles()
	return rep, nil
}

func printTable(rep report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAY\tTRIALS\tMEAN\tSTDDEV\tP10\tP50\tP90\tMIN\tMAX")
	for _, r := range rep.Yards {
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\n",
			r.PlayType, r.Trials, r.Mean, r.StdDev, r.P10, r.P50, r.P90, r.Min, r.Max)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SEQUENCE\tTRIALS\tFIRST DOWNS\tTURNOVERS\tRATE")
	for _, r := range rep.Sequences {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.2f%%\n", r.Name, r.Trials, r.FirstDowns, r.Turnovers, r.Rate)
	}
	_ = w.Flush()
	fmt.Printf("\nworst inverse-normal gap vs reference: %.5f\n", rep.WorstQuantile)
}
