package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/markd315/football-vibes-sub000/internal/rates"
)

const quarterSeconds = 15 * 60

// Runoff is seconds off the clock for the offense leading (or tied) vs trailing.
type Runoff struct {
	Winning int
	Losing  int
}

// Timing is the clock model.
type Timing struct {
	Runoff map[rates.PlayType]Runoff
	// TimeoutIncompleteRunoff replaces the runoff after an incompletion or a
	// called timeout.
	TimeoutIncompleteRunoff int
}

func DefaultTiming() Timing {
	return Timing{
		Runoff: map[rates.PlayType]Runoff{
			rates.Pass:    {Winning: 35, Losing: 18},
			rates.Run:     {Winning: 40, Losing: 25},
			PuntPlay:      {Winning: 12, Losing: 12},
			FieldGoalPlay: {Winning: 5, Losing: 5},
		},
		TimeoutIncompleteRunoff: 6,
	}
}

// Seconds is the runoff for a play of type pt run from st. stopped marks an
// incomplete pass.
func (t Timing) Seconds(st State, pt rates.PlayType, stopped bool) int {
	if stopped || st.TimeoutCalled {
		return t.TimeoutIncompleteRunoff
	}
	ro := t.Runoff[pt]
	if st.Lead() < 0 {
		return ro.Losing
	}
	return ro.Winning
}

// RunClock takes seconds off the game clock and clears the timeout flag. It
// reports whether the quarter ended; timeouts reset at halftime.
func (s *State) RunClock(seconds int) bool {
	s.TimeoutCalled = false
	left, err := parseClock(s.Time)
	if err != nil {
		left = quarterSeconds
	}
	left -= seconds
	if left > 0 {
		s.Time = formatClock(left)
		return false
	}
	s.Quarter++
	s.Time = formatClock(quarterSeconds)
	if s.Quarter == 3 {
		s.Timeouts = Timeouts{Home: timeoutsPerHalf, Away: timeoutsPerHalf}
	}
	return true
}

func parseClock(v string) (int, error) {
	mm, ss, ok := strings.Cut(v, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: want MM:SS", v)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("clock %q: %w", v, err)
	}
	sec, err := strconv.Atoi(ss)
	if err != nil {
		return 0, fmt.Errorf("clock %q: %w", v, err)
	}
	if m < 0 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("clock %q: out of range", v)
	}
	return m*60 + sec, nil
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
