package game

import (
	"fmt"

	"github.com/markd315/football-vibes-sub000/internal/dice"
)

// SpecialTeamsConfig tunes punts and field goals.
type SpecialTeamsConfig struct {
	PuntBase       int     // average punt distance
	PuntSpread     int     // uniform +/- around PuntBase
	FieldGoalBase  float64 // make percentage at the goal line
	FieldGoalSlope float64 // percentage lost per yard of opp-yardline
}

func DefaultSpecialTeamsConfig() SpecialTeamsConfig {
	return SpecialTeamsConfig{PuntBase: 45, PuntSpread: 5, FieldGoalBase: 95, FieldGoalSlope: 1.81}
}

// Punt kicks the ball away. A punt that would carry past the goal line is a
// touchback; otherwise the receiving team takes over where it lands.
func Punt(st *State, rng dice.RandomSource, cfg SpecialTeamsConfig) Transition {
	dist := cfg.PuntBase + dice.Between(rng, -cfg.PuntSpread, cfg.PuntSpread)
	tr := Transition{Yards: dist, Event: EventPunt}

	landing := st.OppYardline - dist
	if landing < 0 {
		tr.Event = EventTouchback
		st.FlipPossession(touchbackYardline)
		return tr
	}
	st.FlipPossession(100 - landing)
	return tr
}

// FieldGoalProbability is the make percentage from oppYardline, in [0,100].
func FieldGoalProbability(oppYardline int, cfg SpecialTeamsConfig) float64 {
	p := cfg.FieldGoalBase - cfg.FieldGoalSlope*float64(oppYardline)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FieldGoal attempts a kick. A make scores and the opponent receives; a miss
// turns the ball over at the spot.
func FieldGoal(st *State, rng dice.RandomSource, cfg SpecialTeamsConfig) (Transition, error) {
	made, err := dice.Chance(FieldGoalProbability(st.OppYardline, cfg), rng)
	if err != nil {
		return Transition{}, fmt.Errorf("field goal roll: %w", err)
	}
	if !made {
		tr := Transition{Event: EventMissedFieldGoal, TurnoverOnDowns: true}
		st.FlipPossession(100 - st.OppYardline)
		return tr, nil
	}
	offense := st.Possession
	st.AddScore(offense, fieldGoalPoints)
	st.FlipPossession(kickoffYardline)
	return Transition{Event: EventFieldGoal, ScoringSide: offense, Points: fieldGoalPoints}, nil
}
