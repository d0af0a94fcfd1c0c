// Package engine resolves plays against one game session: rates, rubber band,
// sampling, state transition, clock, persistence and fatigue, in that order.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/logger"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rates"
	"github.com/markd315/football-vibes-sub000/internal/rating"
	"github.com/markd315/football-vibes-sub000/internal/store"
	"github.com/markd315/football-vibes-sub000/internal/tuning"
)

// OutcomeError is the outcome label of a play that could not be resolved.
const OutcomeError = "error"

var ErrNoProfiles = errors.New("engine: profile repository is required")

// PlayCall is one play as submitted by the front end.
type PlayCall struct {
	PlayType   string      `json:"play-type"`
	Evaluation rates.Input `json:"evaluation"`
	// BallCarrier is the offensive player ID that carries on a run.
	BallCarrier string `json:"ballCarrier,omitempty"`
}

// PlayResult is what the front end renders.
type PlayResult struct {
	PlayID       string           `json:"playId,omitempty"`
	Outcome      string           `json:"outcome"`
	PlayType     string           `json:"playType"`
	Category     outcome.Category `json:"category,omitempty"`
	Yards        int              `json:"yards"`
	PenaltyYards int              `json:"penaltyYards,omitempty"`
	Turnover     bool             `json:"turnover"`
	TurnoverType string           `json:"turnoverType,omitempty"`
	Complete     bool             `json:"isComplete"`
	Description  string           `json:"description"`
	Rates        *rates.Vector    `json:"rates,omitempty"`
	RubberBand   game.Adjustment  `json:"rubberBand"`
	Transition   game.Transition  `json:"transition"`
	State        game.State       `json:"state"`
}

// Options configures a session. Profiles is required; a nil Store keeps the
// state in memory only.
type Options struct {
	SessionID string
	Profiles  outcome.Repository
	Store     store.Store
	Params    *tuning.Params
	RNG       dice.RandomSource
	Log       *logrus.Entry
}

// SimulationContext owns everything one session mutates. It is not safe for
// concurrent use; callers serialize access.
type SimulationContext struct {
	SessionID string
	State     game.State
	Rosters   map[game.Side]*rating.Roster

	profiles outcome.Repository
	sampler  *outcome.Sampler
	params   tuning.Params
	rng      dice.RandomSource
	store    store.Store
	log      *logrus.Entry
}

// New opens a session, loading the persisted state from opts.Store.
func New(ctx context.Context, opts Options) (*SimulationContext, error) {
	if opts.Profiles == nil {
		return nil, ErrNoProfiles
	}
	sc := &SimulationContext{
		SessionID: opts.SessionID,
		Rosters:   map[game.Side]*rating.Roster{game.Home: {}, game.Away: {}},
		profiles:  opts.Profiles,
		rng:       opts.RNG,
		store:     opts.Store,
		log:       opts.Log,
	}
	if sc.SessionID == "" {
		sc.SessionID = uuid.New().String()
	}
	if sc.rng == nil {
		sc.rng = dice.DefaultRNG()
	}
	if sc.log == nil {
		sc.log = logger.Discard()
	}
	sc.log = sc.log.WithField("session_id", sc.SessionID)

	params := tuning.Defaults()
	if opts.Params != nil {
		params = *opts.Params
	}
	sc.SetTuning(params)

	sc.State = game.Default()
	if sc.store != nil {
		st, err := sc.store.Current(ctx)
		if err != nil {
			return nil, fmt.Errorf("load game state: %w", err)
		}
		sc.State = st
	}
	return sc, nil
}

// SetTuning swaps the tuning from the next play on. The profile cache is left
// alone.
func (sc *SimulationContext) SetTuning(p tuning.Params) {
	sc.params = p
	sc.sampler = outcome.NewSampler(sc.profiles, p.Sampler, sc.rng)
}

func (sc *SimulationContext) Tuning() tuning.Params { return sc.params }

// SetRoster replaces a side's roster after checking every assignment.
func (sc *SimulationContext) SetRoster(side game.Side, r *rating.Roster) error {
	if side != game.Home && side != game.Away {
		return game.ErrUnknownSide
	}
	if r == nil {
		r = &rating.Roster{}
	}
	for _, p := range r.Players {
		if p.Assignment == nil {
			continue
		}
		if err := rating.ValidateAssignment(p.Position, *p.Assignment); err != nil {
			return fmt.Errorf("player %s: %w", p.ID, err)
		}
	}
	sc.Rosters[side] = r
	return nil
}

// Ratings returns the effective percentile of every on-field player of side,
// the snapshot the external evaluator scores.
func (sc *SimulationContext) Ratings(side game.Side, pt rates.PlayType) []rating.Result {
	return rating.EvaluateOnField(sc.Rosters[side], pt, sc.params.Fatigue)
}

// Resolve runs one play. On any error the result's Outcome is "error" with
// zero yards, and neither the state, the rosters nor the store are touched.
func (sc *SimulationContext) Resolve(ctx context.Context, call PlayCall) (PlayResult, error) {
	pt, err := game.ParsePlayType(call.PlayType)
	if err != nil {
		return sc.failed(call, fmt.Errorf("%q: %w", call.PlayType, err))
	}

	prev := sc.State
	next := prev
	res := PlayResult{PlayID: uuid.New().String(), PlayType: string(pt), Complete: true}

	switch pt {
	case game.PuntPlay:
		res.Transition = game.Punt(&next, sc.rng, sc.params.SpecialTeams)
		res.Outcome = string(pt)
		res.Yards = res.Transition.Yards
	case game.FieldGoalPlay:
		tr, err := game.FieldGoal(&next, sc.rng, sc.params.SpecialTeams)
		if err != nil {
			return sc.failed(call, err)
		}
		res.Transition = tr
		res.Outcome = string(pt)
		res.Complete = tr.Event == game.EventFieldGoal
	default:
		v := call.Evaluation.Vector(pt)
		res.RubberBand = game.RubberBand(prev, pt, sc.rng, sc.params.RubberBand)
		v = res.RubberBand.Apply(v)
		res.Rates = &v
		if v.Overcommitted() {
			sc.log.WithFields(logrus.Fields{
				"success":   v.Success,
				"explosive": v.Explosive,
				"havoc":     v.Havoc,
			}).Warn("rate buckets exceed 100; implied unsuccessful rate is negative")
		}

		sampled, err := sc.sampler.Sample(ctx, pt, v)
		if err != nil {
			sc.log.WithError(err).WithField("play_type", pt).Error("play resolution failed")
			return sc.failed(call, err)
		}
		res.Outcome = string(sampled.Bucket)
		res.Category = sampled.Category
		res.Complete = sampled.Complete
		res.Turnover = sampled.Turnover
		res.TurnoverType = sampled.TurnoverType
		res.PenaltyYards = res.RubberBand.PenaltyYards
		res.Yards = sampled.Yards + res.PenaltyYards
		res.Description = sampled.Description

		res.Transition = game.Advance(&next, game.Outcome{
			PlayType: pt,
			Category: sampled.Category,
			Yards:    res.Yards,
			Turnover: sampled.Turnover,
		})
		game.Settle(&next, &res.Transition)
	}

	stopped := pt == rates.Pass && !res.Complete
	next.RunClock(sc.params.Timing.Seconds(prev, pt, stopped))
	res.Description = describe(res)

	if sc.store != nil {
		rec := &store.PlayRecord{
			ID:          res.PlayID,
			PlayType:    res.PlayType,
			Category:    string(res.Category),
			Yards:       res.Yards,
			Turnover:    res.Turnover,
			Event:       string(res.Transition.Event),
			Description: res.Description,
			CreatedAt:   time.Now().UTC(),
		}
		if err := sc.store.Commit(ctx, next, rec); err != nil {
			return sc.failed(call, fmt.Errorf("persist game state: %w", err))
		}
	}

	offense := prev.Possession
	sc.State = next
	res.State = next
	rating.UpdateFatigue(sc.Rosters[offense], rating.PlayInfo{PlayType: pt, BallCarrier: call.BallCarrier}, sc.params.Stamina)
	rating.UpdateFatigue(sc.Rosters[offense.Other()], rating.PlayInfo{PlayType: pt}, sc.params.Stamina)

	sc.log.WithFields(logrus.Fields{
		"play_id":      res.PlayID,
		"play_type":    pt,
		"category":     res.Category,
		"yards":        res.Yards,
		"turnover":     res.Turnover,
		"down":         next.Down,
		"distance":     next.Distance,
		"opp_yardline": next.OppYardline,
	}).Debug("play resolved")
	return res, nil
}

// CallTimeout spends a timeout for side and rests every rostered player.
func (sc *SimulationContext) CallTimeout(ctx context.Context, side game.Side) error {
	next := sc.State
	if err := next.CallTimeout(side); err != nil {
		return err
	}
	if sc.store != nil {
		if err := sc.store.Commit(ctx, next, nil); err != nil {
			return fmt.Errorf("persist game state: %w", err)
		}
	}
	sc.State = next
	for _, r := range sc.Rosters {
		rating.Recover(r, sc.params.Stamina.TimeoutRecovery)
	}
	return nil
}

// Reset starts a new game.
func (sc *SimulationContext) Reset(ctx context.Context) error {
	next := game.Default()
	if sc.store != nil {
		if err := sc.store.Commit(ctx, next, nil); err != nil {
			return fmt.Errorf("persist game state: %w", err)
		}
	}
	sc.State = next
	return nil
}

func (sc *SimulationContext) failed(call PlayCall, err error) (PlayResult, error) {
	return PlayResult{
		Outcome:     OutcomeError,
		PlayType:    call.PlayType,
		Description: err.Error(),
		State:       sc.State,
	}, err
}

func describe(res PlayResult) string {
	var b strings.Builder
	if res.PenaltyYards > 0 {
		fmt.Fprintf(&b, "Defensive penalty, %d yards. ", res.PenaltyYards)
	}
	switch rates.PlayType(res.PlayType) {
	case game.PuntPlay:
		fmt.Fprintf(&b, "Punt of %d yards.", res.Transition.Yards)
	case game.FieldGoalPlay:
		b.WriteString("Field goal attempt.")
	default:
		b.WriteString(res.Description)
	}
	if res.Turnover {
		kind := res.TurnoverType
		if kind == "" || kind == "none" {
			kind = "turnover"
		}
		fmt.Fprintf(&b, " Turnover: %s!", kind)
	}
	switch res.Transition.Event {
	case game.EventTouchdown:
		b.WriteString(" Touchdown!")
	case game.EventDefensiveScore:
		b.WriteString(" Returned for a defensive touchdown!")
	case game.EventSafety:
		b.WriteString(" Safety!")
	case game.EventFirstDown:
		b.WriteString(" First down.")
	case game.EventTurnoverOnDowns:
		b.WriteString(" Turnover on downs.")
	case game.EventTouchback:
		b.WriteString(" Touchback.")
	case game.EventFieldGoal:
		b.WriteString(" It's good!")
	case game.EventMissedFieldGoal:
		b.WriteString(" No good.")
	}
	return strings.TrimSpace(b.String())
}
