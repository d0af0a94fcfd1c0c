package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/rating"
	"github.com/markd315/football-vibes-sub000/internal/tuning"
)

func TestSessionSerializesPlays(t *testing.T) {
	s := NewSession(newSession(t, dice.NewSeededRNG(3), nil))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := s.Resolve(context.Background(), PlayCall{PlayType: "run"})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	st := s.State()
	assert.GreaterOrEqual(t, st.Quarter, 1)
	assert.True(t, st.Down >= 1 && st.Down <= 4)
}

func TestSessionRosterIsCopied(t *testing.T) {
	s := NewSession(newSession(t, nil, nil))
	require.NoError(t, s.SetRoster(game.Home, &rating.Roster{Players: []*rating.Player{
		{ID: "qb1", Position: rating.QB, Stamina: 90},
	}}))
	r := s.Roster(game.Home)
	r.Players[0].Stamina = 1
	assert.Equal(t, 90.0, s.Roster(game.Home).Players[0].Stamina)
}

func TestSessionSetTuningAppliesToNextPlay(t *testing.T) {
	s := NewSession(newSession(t, dice.Fixed(50, 10, 50, 100), nil))
	p := tuning.Defaults()
	p.Timing.Runoff["run"] = game.Runoff{Winning: 10, Losing: 10}
	s.SetTuning(p)

	_, err := s.Resolve(context.Background(), PlayCall{PlayType: "run"})
	require.NoError(t, err)
	assert.Equal(t, "14:50", s.State().Time)

	st, err := s.CallTimeout(context.Background(), game.Away)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Timeouts.Away)

	st, err = s.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Default(), st)
}
