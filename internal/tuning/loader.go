package tuning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rates"
)

// Paths names the tuning documents inside the loader's filesystem.
type Paths struct {
	StateMachine string
	Timing       string
}

func DefaultPaths() Paths {
	return Paths{StateMachine: "play-state-machine.json", Timing: "timing.json"}
}

// OnDisk resolves the documents under dir, for the file watcher.
func (p Paths) OnDisk(dir string) []string {
	return []string{filepath.Join(dir, p.StateMachine), filepath.Join(dir, p.Timing)}
}

const mergedKey = "$merged"

// Loader reads the tuning documents and merges built-in defaults ←
// state-machine ← timing. Both documents are optional.
type Loader struct {
	fsys  fs.FS
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS, paths Paths) *Loader {
	return &Loader{
		fsys:  fsys,
		paths: paths,
		cache: make(map[string]RawConfig),
	}
}

// NewDirLoader is NewLoader over a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), DefaultPaths())
}

// LoadMerged returns the merged, unvalidated document.
func (l *Loader) LoadMerged() (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[mergedKey]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	sm, err := l.read(l.paths.StateMachine)
	if err != nil {
		return RawConfig{}, fmt.Errorf("read %s: %w", l.paths.StateMachine, err)
	}
	tm, err := l.read(l.paths.Timing)
	if err != nil {
		return RawConfig{}, fmt.Errorf("read %s: %w", l.paths.Timing, err)
	}
	merged := mergeRaw(sm, tm)

	l.mu.Lock()
	l.cache[l.paths.StateMachine] = sm
	l.cache[l.paths.Timing] = tm
	l.cache[mergedKey] = merged
	l.mu.Unlock()
	return merged, nil
}

// Params loads, validates and normalizes the tuning.
func (l *Loader) Params() (Params, error) {
	raw, err := l.LoadMerged()
	if err != nil {
		return Params{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Params{}, err
	}
	return Normalize(raw), nil
}

// Invalidate clears the cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// read decodes one document. JSON is valid YAML. A missing file is an empty
// document.
func (l *Loader) read(name string) (RawConfig, error) {
	var cfg RawConfig
	if name == "" {
		return cfg, nil
	}
	b, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

// mergeRaw overlays b on a field by field; set values in b win.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}

	if b.Havoc != nil {
		h := HavocRaw{}
		if a.Havoc != nil {
			h = *a.Havoc
		}
		h.Sack = pick(h.Sack, b.Havoc.Sack)
		h.Turnover = pick(h.Turnover, b.Havoc.Turnover)
		h.TackleForLoss = pick(h.TackleForLoss, b.Havoc.TackleForLoss)
		out.Havoc = &h
	}

	if b.YAC != nil {
		y := YACRaw{}
		if a.YAC != nil {
			y = *a.YAC
		}
		y.PrimaryThreshold = pick(y.PrimaryThreshold, b.YAC.PrimaryThreshold)
		out.YAC = &y
	}

	if b.RubberBand != nil {
		r := RubberBandRaw{}
		if a.RubberBand != nil {
			r = *a.RubberBand
		}
		br := b.RubberBand
		r.MinDown = pick(r.MinDown, br.MinDown)
		r.MinConsecutive = pick(r.MinConsecutive, br.MinConsecutive)
		r.BigPenaltyMaxRoll = pick(r.BigPenaltyMaxRoll, br.BigPenaltyMaxRoll)
		r.BigPenaltyYards = pick(r.BigPenaltyYards, br.BigPenaltyYards)
		r.SmallPenaltyMaxRoll = pick(r.SmallPenaltyMaxRoll, br.SmallPenaltyMaxRoll)
		r.SmallPenaltyYards = pick(r.SmallPenaltyYards, br.SmallPenaltyYards)
		r.PassSuccessBoost = pick(r.PassSuccessBoost, br.PassSuccessBoost)
		r.RunBoostFactor = pick(r.RunBoostFactor, br.RunBoostFactor)
		r.ConversionRate = pick(r.ConversionRate, br.ConversionRate)
		out.RubberBand = &r
	}

	if b.Fatigue != nil {
		f := FatigueRaw{}
		if a.Fatigue != nil {
			f = *a.Fatigue
		}
		bf := b.Fatigue
		f.HighThreshold = pick(f.HighThreshold, bf.HighThreshold)
		f.MedThreshold = pick(f.MedThreshold, bf.MedThreshold)
		f.High = pick(f.High, bf.High)
		f.Med = pick(f.Med, bf.Med)
		f.Floor = pick(f.Floor, bf.Floor)
		f.OnFieldDrain = pick(f.OnFieldDrain, bf.OnFieldDrain)
		f.BallCarrierDrain = pick(f.BallCarrierDrain, bf.BallCarrierDrain)
		f.BenchRecovery = pick(f.BenchRecovery, bf.BenchRecovery)
		f.TimeoutRecovery = pick(f.TimeoutRecovery, bf.TimeoutRecovery)
		out.Fatigue = &f
	}

	if b.SpecialTeams != nil {
		s := SpecialTeamsRaw{}
		if a.SpecialTeams != nil {
			s = *a.SpecialTeams
		}
		s.PuntBase = pick(s.PuntBase, b.SpecialTeams.PuntBase)
		s.PuntSpread = pick(s.PuntSpread, b.SpecialTeams.PuntSpread)
		s.FieldGoalBase = pick(s.FieldGoalBase, b.SpecialTeams.FieldGoalBase)
		s.FieldGoalSlope = pick(s.FieldGoalSlope, b.SpecialTeams.FieldGoalSlope)
		out.SpecialTeams = &s
	}

	if len(b.OutcomePaths) > 0 {
		paths := make(map[string]string, len(a.OutcomePaths)+len(b.OutcomePaths))
		for k, v := range a.OutcomePaths {
			paths[k] = v
		}
		for k, v := range b.OutcomePaths {
			paths[k] = v
		}
		out.OutcomePaths = paths
	}

	if len(b.ClockRunoff) > 0 {
		runoff := make(map[string]RunoffRaw, len(a.ClockRunoff)+len(b.ClockRunoff))
		for k, v := range a.ClockRunoff {
			runoff[k] = v
		}
		for k, v := range b.ClockRunoff {
			cur := runoff[k]
			cur.Winning = pick(cur.Winning, v.Winning)
			cur.Losing = pick(cur.Losing, v.Losing)
			runoff[k] = cur
		}
		out.ClockRunoff = runoff
	}
	out.TimeoutIncompleteRunoff = pick(a.TimeoutIncompleteRunoff, b.TimeoutIncompleteRunoff)

	return out
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Normalize lays a validated RawConfig over Defaults.
func Normalize(raw RawConfig) Params {
	p := Defaults()
	p.Version = raw.Version

	if h := raw.Havoc; h != nil {
		set(&p.Sampler.Havoc.Sack, h.Sack)
		set(&p.Sampler.Havoc.Turnover, h.Turnover)
		set(&p.Sampler.Havoc.TackleForLoss, h.TackleForLoss)
	}
	if raw.YAC != nil {
		set(&p.Sampler.PrimaryThreshold, raw.YAC.PrimaryThreshold)
	}
	if len(raw.OutcomePaths) > 0 {
		p.Sampler.Paths = make(map[outcome.Bucket]string, len(raw.OutcomePaths))
		for k, v := range raw.OutcomePaths {
			p.Sampler.Paths[outcome.Bucket(k)] = v
		}
	}

	if r := raw.RubberBand; r != nil {
		rb := &p.RubberBand
		set(&rb.MinDown, r.MinDown)
		set(&rb.MinConsecutive, r.MinConsecutive)
		set(&rb.BigPenaltyMaxRoll, r.BigPenaltyMaxRoll)
		set(&rb.BigPenaltyYards, r.BigPenaltyYards)
		set(&rb.SmallPenaltyMaxRoll, r.SmallPenaltyMaxRoll)
		set(&rb.SmallPenaltyYards, r.SmallPenaltyYards)
		set(&rb.PassSuccessBoost, r.PassSuccessBoost)
		set(&rb.RunBoostFactor, r.RunBoostFactor)
		set(&rb.ConversionRate, r.ConversionRate)
	}

	if f := raw.Fatigue; f != nil {
		set(&p.Fatigue.HighThreshold, f.HighThreshold)
		set(&p.Fatigue.MedThreshold, f.MedThreshold)
		set(&p.Fatigue.High, f.High)
		set(&p.Fatigue.Med, f.Med)
		set(&p.Fatigue.Floor, f.Floor)
		set(&p.Stamina.OnFieldDrain, f.OnFieldDrain)
		set(&p.Stamina.BallCarrierDrain, f.BallCarrierDrain)
		set(&p.Stamina.BenchRecovery, f.BenchRecovery)
		set(&p.Stamina.TimeoutRecovery, f.TimeoutRecovery)
	}

	if s := raw.SpecialTeams; s != nil {
		set(&p.SpecialTeams.PuntBase, s.PuntBase)
		set(&p.SpecialTeams.PuntSpread, s.PuntSpread)
		set(&p.SpecialTeams.FieldGoalBase, s.FieldGoalBase)
		set(&p.SpecialTeams.FieldGoalSlope, s.FieldGoalSlope)
	}

	for k, v := range raw.ClockRunoff {
		pt := rates.PlayType(k)
		ro := p.Timing.Runoff[pt]
		set(&ro.Winning, v.Winning)
		set(&ro.Losing, v.Losing)
		p.Timing.Runoff[pt] = ro
	}
	set(&p.Timing.TimeoutIncompleteRunoff, raw.TimeoutIncompleteRunoff)

	return p
}
