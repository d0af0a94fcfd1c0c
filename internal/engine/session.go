package engine

import (
	"context"
	"sync"

	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/rates"
	"github.com/markd315/football-vibes-sub000/internal/rating"
	"github.com/markd315/football-vibes-sub000/internal/tuning"
)

// Session serializes access to a SimulationContext so one play resolves at a
// time no matter how many transports share it.
type Session struct {
	mu sync.Mutex
	sc *SimulationContext
}

func NewSession(sc *SimulationContext) *Session {
	return &Session{sc: sc}
}

func (s *Session) ID() string { return s.sc.SessionID }

func (s *Session) Resolve(ctx context.Context, call PlayCall) (PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sc.Resolve(ctx, call)
}

func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sc.State
}

// CallTimeout returns the state after the timeout.
func (s *Session) CallTimeout(ctx context.Context, side game.Side) (game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.sc.CallTimeout(ctx, side)
	return s.sc.State, err
}

func (s *Session) Reset(ctx context.Context) (game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.sc.Reset(ctx)
	return s.sc.State, err
}

func (s *Session) SetRoster(side game.Side, r *rating.Roster) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sc.SetRoster(side, r)
}

// Roster returns a copy of side's roster.
func (s *Session) Roster(side game.Side) rating.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.sc.Rosters[side]
	if r == nil {
		return rating.Roster{}
	}
	out := rating.Roster{Players: make([]*rating.Player, len(r.Players))}
	for i, p := range r.Players {
		cp := *p
		out.Players[i] = &cp
	}
	return out
}

func (s *Session) Ratings(side game.Side, pt rates.PlayType) []rating.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sc.Ratings(side, pt)
}

// SetTuning is safe to call from a file-watcher goroutine.
func (s *Session) SetTuning(p tuning.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sc.SetTuning(p)
}
