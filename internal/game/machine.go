package game

import (
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rates"
)

// Special-teams play types. They bypass the rate model and the sampler.
const (
	PuntPlay      rates.PlayType = "punt"
	FieldGoalPlay rates.PlayType = "field-goal"
)

// ParsePlayType accepts pass, run, punt and field-goal.
func ParsePlayType(s string) (rates.PlayType, error) {
	switch pt := rates.PlayType(s); pt {
	case rates.Pass, rates.Run, PuntPlay, FieldGoalPlay:
		return pt, nil
	}
	return "", ErrUnknownPlayType
}

// Outcome is the part of a sampled play the state machine consumes.
type Outcome struct {
	PlayType rates.PlayType
	Category outcome.Category
	Yards    int
	Turnover bool
}

// Event names what a play did to the series.
type Event string

const (
	EventNone            Event = ""
	EventFirstDown       Event = "first-down"
	EventTouchdown       Event = "touchdown"
	EventSafety          Event = "safety"
	EventTurnover        Event = "turnover"
	EventDefensiveScore  Event = "defensive-touchdown"
	EventTurnoverOnDowns Event = "turnover-on-downs"
	EventPunt            Event = "punt"
	EventTouchback       Event = "touchback"
	EventFieldGoal       Event = "field-goal"
	EventMissedFieldGoal Event = "missed-field-goal"
)

// Transition reports what Advance (and Settle) did.
type Transition struct {
	Yards           int   `json:"yards"`
	FirstDown       bool  `json:"firstDown"`
	Touchdown       bool  `json:"touchdown"`
	Safety          bool  `json:"safety"`
	Turnover        bool  `json:"turnover"`
	TurnoverOnDowns bool  `json:"turnoverOnDowns"`
	Event           Event `json:"event,omitempty"`
	ScoringSide     Side  `json:"scoringSide,omitempty"`
	Points          int   `json:"points,omitempty"`
}

// Advance applies one scrimmage play to st: down and distance, field
// position, and the consecutive-unsuccessful counter. Scoring and possession
// are left to Settle.
func Advance(st *State, o Outcome) Transition {
	tr := Transition{Yards: o.Yards, Turnover: o.Turnover}

	st.Down++
	opp := st.OppYardline - o.Yards
	if opp >= 100 {
		opp = 100
		tr.Safety = true
	}
	if opp <= 0 {
		opp = 0
		tr.Touchdown = true
	}
	st.OppYardline = opp

	if o.Category == outcome.Unsuccessful || (o.Yards < 3 && o.Category != outcome.Explosive) {
		st.ConsecutiveUnsuccessfulPlays++
	}

	switch {
	case tr.Touchdown:
		st.resetSeries()
	case o.Yards >= st.Distance:
		tr.FirstDown = true
		st.resetSeries()
	default:
		st.Distance -= o.Yards
		if st.Down > 4 {
			tr.TurnoverOnDowns = true
			st.resetSeries()
		}
	}
	return tr
}

// Settle applies the scoring and possession consequences of a transition.
// A turnover takes precedence: a ball lost in the opponent's end zone is a
// touchback, one lost in the offense's own end zone is a defensive score.
func Settle(st *State, tr *Transition) {
	offense := st.Possession
	defense := offense.Other()

	switch {
	case tr.Turnover && tr.Touchdown:
		tr.Event = EventTouchback
		st.FlipPossession(touchbackYardline)
	case tr.Turnover && tr.Safety:
		tr.Event = EventDefensiveScore
		tr.ScoringSide, tr.Points = defense, touchdownPoints
		st.AddScore(defense, touchdownPoints)
		st.OppYardline = kickoffYardline
		st.resetSeries()
	case tr.Turnover:
		tr.Event = EventTurnover
		st.FlipPossession(100 - st.OppYardline)
	case tr.Safety:
		tr.Event = EventSafety
		tr.ScoringSide, tr.Points = defense, safetyPoints
		st.AddScore(defense, safetyPoints)
		st.FlipPossession(kickoffYardline)
	case tr.Touchdown:
		tr.Event = EventTouchdown
		tr.ScoringSide, tr.Points = offense, touchdownPoints
		st.AddScore(offense, touchdownPoints)
		st.FlipPossession(kickoffYardline)
	case tr.TurnoverOnDowns:
		tr.Event = EventTurnoverOnDowns
		st.FlipPossession(100 - st.OppYardline)
	case tr.FirstDown:
		tr.Event = EventFirstDown
	}
}
