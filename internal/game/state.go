// Package game holds the persistent down/distance/possession/clock state and
// the transitions a resolved play applies to it.
package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoTimeouts      = errors.New("no timeouts remaining")
	ErrUnknownSide     = errors.New("unknown side")
	ErrUnknownPlayType = errors.New("unknown play type")
)

// Side identifies a team.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

func (s Side) valid() bool { return s == Home || s == Away }

// ParseSide accepts "home" or "away" in any case.
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToLower(strings.TrimSpace(s)))
	if !side.valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
	return side, nil
}

// Score is points per side.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Timeouts remaining per side.
type Timeouts struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

const (
	firstDownDistance = 10
	kickoffYardline   = 75
	touchbackYardline = 80
	quarterClock      = "15:00"
	timeoutsPerHalf   = 3
	touchdownPoints   = 7
	fieldGoalPoints   = 3
	safetyPoints      = 2
)

// State is the persistent game state. OppYardline is the distance from the
// offense's target goal line.
type State struct {
	Possession                   Side     `json:"possession"`
	Quarter                      int      `json:"quarter"`
	Down                         int      `json:"down"`
	Distance                     int      `json:"distance"`
	OppYardline                  int      `json:"opp-yardline"`
	Score                        Score    `json:"score"`
	Time                         string   `json:"time"`
	Timeouts                     Timeouts `json:"timeouts"`
	TimeoutCalled                bool     `json:"timeoutCalled"`
	ConsecutiveUnsuccessfulPlays int      `json:"consecutiveUnsuccessfulPlays"`
}

// Default is the opening state: home ball, 1st and 10 at their own 25.
func Default() State {
	return State{
		Possession:  Home,
		Quarter:     1,
		Down:        1,
		Distance:    firstDownDistance,
		OppYardline: kickoffYardline,
		Time:        quarterClock,
		Timeouts:    Timeouts{Home: timeoutsPerHalf, Away: timeoutsPerHalf},
	}
}

// Normalize repairs fields a hand-edited or truncated document may be missing.
func (s *State) Normalize() {
	d := Default()
	if !s.Possession.valid() {
		s.Possession = d.Possession
	}
	if s.Quarter < 1 {
		s.Quarter = 1
	}
	if s.Down < 1 || s.Down > 4 {
		s.Down = 1
	}
	if s.Distance <= 0 {
		s.Distance = firstDownDistance
	}
	if s.OppYardline < 0 {
		s.OppYardline = 0
	}
	if s.OppYardline > 100 {
		s.OppYardline = 100
	}
	if _, err := parseClock(s.Time); err != nil {
		s.Time = d.Time
	}
}

// resetSeries starts a fresh set of downs.
func (s *State) resetSeries() {
	s.Down = 1
	s.Distance = firstDownDistance
	s.ConsecutiveUnsuccessfulPlays = 0
}

// FlipPossession hands the ball to the other side at oppYardline, measured
// from the new offense's target goal line.
func (s *State) FlipPossession(oppYardline int) {
	s.Possession = s.Possession.Other()
	s.OppYardline = clampInt(oppYardline, 0, 100)
	s.resetSeries()
}

// AddScore credits points to a side.
func (s *State) AddScore(side Side, pts int) {
	switch side {
	case Home:
		s.Score.Home += pts
	case Away:
		s.Score.Away += pts
	}
}

// Lead is the possessing side's margin.
func (s State) Lead() int {
	if s.Possession == Home {
		return s.Score.Home - s.Score.Away
	}
	return s.Score.Away - s.Score.Home
}

func (s State) timeoutsFor(side Side) int {
	if side == Home {
		return s.Timeouts.Home
	}
	return s.Timeouts.Away
}

// CallTimeout spends one of side's timeouts.
func (s *State) CallTimeout(side Side) error {
	if !side.valid() {
		return ErrUnknownSide
	}
	if s.timeoutsFor(side) <= 0 {
		return ErrNoTimeouts
	}
	if side == Home {
		s.Timeouts.Home--
	} else {
		s.Timeouts.Away--
	}
	s.TimeoutCalled = true
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
