package game

import (
	"errors"
	"testing"

	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultState(t *testing.T) {
	st := Default()
	if st.Possession != Home || st.Down != 1 || st.Distance != 10 || st.OppYardline != 75 {
		t.Fatalf("unexpected opening state: %+v", st)
	}
	if st.Time != "15:00" || st.Timeouts.Home != 3 || st.Timeouts.Away != 3 {
		t.Fatalf("unexpected clock/timeouts: %+v", st)
	}
}

func TestAdvanceFirstDownResetsSeries(t *testing.T) {
	st := Default()
	st.Down, st.Distance, st.ConsecutiveUnsuccessfulPlays = 3, 4, 2

	tr := Advance(&st, Outcome{PlayType: rates.Run, Category: outcome.Success, Yards: 6})
	assert.True(t, tr.FirstDown)
	assert.Equal(t, 1, st.Down)
	assert.Equal(t, 10, st.Distance)
	assert.Equal(t, 0, st.ConsecutiveUnsuccessfulPlays)
	assert.Equal(t, 69, st.OppYardline)
}

func TestAdvanceShortGainCountsAsUnsuccessful(t *testing.T) {
	cases := []struct {
		name  string
		cat   outcome.Category
		yards int
		want  int
	}{
		{"unsuccessful category", outcome.Unsuccessful, 4, 1},
		{"short success", outcome.Success, 2, 1},
		{"success of three", outcome.Success, 3, 0},
		{"short explosive", outcome.Explosive, 2, 0},
		{"havoc loss", outcome.Havoc, -7, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := Default()
			Advance(&st, Outcome{PlayType: rates.Pass, Category: tc.cat, Yards: tc.yards})
			assert.Equal(t, tc.want, st.ConsecutiveUnsuccessfulPlays)
			assert.Equal(t, 2, st.Down)
			assert.Equal(t, 10-tc.yards, st.Distance)
		})
	}
}

func TestAdvanceTurnoverOnDowns(t *testing.T) {
	st := Default()
	st.Down, st.Distance, st.OppYardline = 4, 5, 40

	tr := Advance(&st, Outcome{PlayType: rates.Run, Category: outcome.Unsuccessful, Yards: 1})
	require.True(t, tr.TurnoverOnDowns)
	assert.Equal(t, 1, st.Down)
	assert.Equal(t, 10, st.Distance)
	assert.Equal(t, 0, st.ConsecutiveUnsuccessfulPlays)

	Settle(&st, &tr)
	assert.Equal(t, EventTurnoverOnDowns, tr.Event)
	assert.Equal(t, Away, st.Possession)
	assert.Equal(t, 61, st.OppYardline)
}

func TestTouchdownScoresAndKicksOff(t *testing.T) {
	st := Default()
	st.Down, st.Distance, st.OppYardline = 2, 5, 5

	tr := Advance(&st, Outcome{PlayType: rates.Pass, Category: outcome.Success, Yards: 9})
	require.True(t, tr.Touchdown)
	assert.Equal(t, 0, st.OppYardline)
	assert.Equal(t, 1, st.Down)

	Settle(&st, &tr)
	assert.Equal(t, EventTouchdown, tr.Event)
	assert.Equal(t, 7, st.Score.Home)
	assert.Equal(t, Away, st.Possession)
	assert.Equal(t, 75, st.OppYardline)
}

func TestSafetyScoresForDefense(t *testing.T) {
	st := Default()
	st.OppYardline = 98

	tr := Advance(&st, Outcome{PlayType: rates.Pass, Category: outcome.Havoc, Yards: -6})
	require.True(t, tr.Safety)
	Settle(&st, &tr)
	assert.Equal(t, EventSafety, tr.Event)
	assert.Equal(t, 2, st.Score.Away)
	assert.Equal(t, Away, st.Possession)
	assert.Equal(t, 75, st.OppYardline)
}

func TestTurnoverFlipsAtTheSpot(t *testing.T) {
	st := Default()
	tr := Advance(&st, Outcome{PlayType: rates.Run, Category: outcome.Success, Yards: 4, Turnover: true})
	Settle(&st, &tr)
	assert.Equal(t, EventTurnover, tr.Event)
	assert.Equal(t, Away, st.Possession)
	assert.Equal(t, 29, st.OppYardline)
	assert.Equal(t, 1, st.Down)

	st = Default()
	st.OppYardline = 3
	tr = Advance(&st, Outcome{PlayType: rates.Run, Category: outcome.Success, Yards: 5, Turnover: true})
	Settle(&st, &tr)
	assert.Equal(t, EventTouchback, tr.Event)
	assert.Equal(t, 80, st.OppYardline)
	assert.Equal(t, 0, st.Score.Home)
}

func TestRubberBandPass(t *testing.T) {
	st := Default()
	st.Down, st.ConsecutiveUnsuccessfulPlays = 3, 2
	cfg := DefaultRubberBandConfig()

	cases := []struct {
		roll    int
		penalty int
		boost   float64
	}{
		{1, 5, 0},
		{10, 5, 0},
		{11, 3, 0},
		{18, 3, 0},
		{19, 0, 30},
		{100, 0, 30},
	}
	for _, tc := range cases {
		adj := RubberBand(st, rates.Pass, dice.Fixed(tc.roll), cfg)
		assert.True(t, adj.Active)
		assert.Equal(t, tc.penalty, adj.PenaltyYards, "roll=%d", tc.roll)
		assert.Equal(t, tc.boost, adj.SuccessBoost, "roll=%d", tc.roll)
	}
}

func TestRubberBandRunDoesNotRoll(t *testing.T) {
	st := Default()
	st.Down, st.ConsecutiveUnsuccessfulPlays = 4, 3
	rng := dice.Fixed(7, 42)

	adj := RubberBand(st, rates.Run, rng, DefaultRubberBandConfig())
	assert.InDelta(t, 12.0, adj.SuccessBoost, 1e-12)
	assert.Equal(t, 0, adj.PenaltyYards)
	assert.Equal(t, 7, dice.Roll(rng), "run adjustment must not consume a roll")

	v := adj.Apply(rates.Default())
	assert.InDelta(t, 57.0, v.Success, 1e-12)
}

func TestRubberBandInactive(t *testing.T) {
	cfg := DefaultRubberBandConfig()
	st := Default()
	st.Down, st.ConsecutiveUnsuccessfulPlays = 2, 5
	assert.Equal(t, Adjustment{}, RubberBand(st, rates.Pass, dice.Fixed(1), cfg))

	st.Down, st.ConsecutiveUnsuccessfulPlays = 3, 1
	assert.Equal(t, Adjustment{}, RubberBand(st, rates.Pass, dice.Fixed(1), cfg))

	st.ConsecutiveUnsuccessfulPlays = 2
	assert.Equal(t, Adjustment{}, RubberBand(st, PuntPlay, dice.Fixed(1), cfg))
}

func TestFieldGoalProbability(t *testing.T) {
	cfg := DefaultSpecialTeamsConfig()
	assert.InDelta(t, 49.75, FieldGoalProbability(25, cfg), 1e-9)
	assert.Equal(t, 95.0, FieldGoalProbability(0, cfg))
	assert.Equal(t, 0.0, FieldGoalProbability(60, cfg))
}

func TestFieldGoal(t *testing.T) {
	cfg := DefaultSpecialTeamsConfig()

	st := Default()
	st.OppYardline = 25
	tr, err := FieldGoal(&st, dice.Fixed(49), cfg)
	require.NoError(t, err)
	assert.Equal(t, EventFieldGoal, tr.Event)
	assert.Equal(t, 3, st.Score.Home)
	assert.Equal(t, Away, st.Possession)
	assert.Equal(t, 75, st.OppYardline)

	st = Default()
	st.OppYardline = 30
	tr, err = FieldGoal(&st, dice.Fixed(50), cfg)
	require.NoError(t, err)
	assert.Equal(t, EventMissedFieldGoal, tr.Event)
	assert.Equal(t, 0, st.Score.Home)
	assert.Equal(t, Away, st.Possession)
	assert.Equal(t, 70, st.OppYardline)
}

func TestPunt(t *testing.T) {
	cfg := DefaultSpecialTeamsConfig()

	st := Default()
	tr := Punt(&st, dice.Fixed(50), cfg)
	assert.Equal(t, 45, tr.Yards)
	assert.Equal(t, EventPunt, tr.Event)
	assert.Equal(t, Away, st.Possession)
	assert.Equal(t, 70, st.OppYardline)

	st = Default()
	st.OppYardline = 40
	tr = Punt(&st, dice.Fixed(100), cfg)
	assert.Equal(t, 50, tr.Yards)
	assert.Equal(t, EventTouchback, tr.Event)
	assert.Equal(t, 80, st.OppYardline)

	rng := dice.NewSeededRNG(9)
	for i := 0; i < 1000; i++ {
		st := Default()
		tr := Punt(&st, rng, cfg)
		if tr.Yards < 40 || tr.Yards > 50 {
			t.Fatalf("punt distance %d outside 45±5", tr.Yards)
		}
	}
}

func TestClockRunoff(t *testing.T) {
	tm := DefaultTiming()
	st := Default()
	assert.Equal(t, 35, tm.Seconds(st, rates.Pass, false), "tied uses the winning runoff")
	assert.Equal(t, 6, tm.Seconds(st, rates.Pass, true), "incomplete pass")

	st.Score.Away = 7
	assert.Equal(t, 25, tm.Seconds(st, rates.Run, false))

	st.TimeoutCalled = true
	assert.Equal(t, 6, tm.Seconds(st, rates.Run, false))
}

func TestRunClockAdvancesQuarter(t *testing.T) {
	st := Default()
	st.TimeoutCalled = true
	assert.False(t, st.RunClock(35))
	assert.Equal(t, "14:25", st.Time)
	assert.False(t, st.TimeoutCalled)

	st.Quarter, st.Time = 2, "0:20"
	st.Timeouts = Timeouts{Home: 0, Away: 1}
	assert.True(t, st.RunClock(40))
	assert.Equal(t, 3, st.Quarter)
	assert.Equal(t, "15:00", st.Time)
	assert.Equal(t, Timeouts{Home: 3, Away: 3}, st.Timeouts, "halftime restores timeouts")
}

func TestCallTimeout(t *testing.T) {
	st := Default()
	for i := 0; i < 3; i++ {
		require.NoError(t, st.CallTimeout(Away))
	}
	assert.True(t, st.TimeoutCalled)
	assert.Equal(t, 0, st.Timeouts.Away)
	assert.Equal(t, 3, st.Timeouts.Home)

	err := st.CallTimeout(Away)
	if !errors.Is(err, ErrNoTimeouts) {
		t.Fatalf("want ErrNoTimeouts, got %v", err)
	}
	assert.ErrorIs(t, st.CallTimeout("visitors"), ErrUnknownSide)
}

func TestParsePlayType(t *testing.T) {
	for _, s := range []string{"pass", "run", "punt", "field-goal"} {
		pt, err := ParsePlayType(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(pt))
	}
	_, err := ParsePlayType("kneel")
	assert.ErrorIs(t, err, ErrUnknownPlayType)
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide(" Away")
	require.NoError(t, err)
	assert.Equal(t, Away, side)
	_, err = ParseSide("visitors")
	assert.ErrorIs(t, err, ErrUnknownSide)
}

func TestNormalizeRepairsState(t *testing.T) {
	st := State{Possession: "nobody", Down: 7, Distance: -2, OppYardline: 140, Time: "late"}
	st.Normalize()
	assert.Equal(t, Home, st.Possession)
	assert.Equal(t, 1, st.Quarter)
	assert.Equal(t, 1, st.Down)
	assert.Equal(t, 10, st.Distance)
	assert.Equal(t, 100, st.OppYardline)
	assert.Equal(t, "15:00", st.Time)
}
