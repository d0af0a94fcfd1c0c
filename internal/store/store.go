// Package store persists the game state between plays.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/markd315/football-vibes-sub000/internal/game"
)

// PlayRecord is one resolved play, as kept in the play log.
type PlayRecord struct {
	ID          string    `json:"id"`
	PlayType    string    `json:"playType"`
	Category    string    `json:"category,omitempty"`
	Yards       int       `json:"yards"`
	Turnover    bool      `json:"turnover"`
	Event       string    `json:"event,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store loads the current game state and commits the state after each play.
type Store interface {
	// Current returns the persisted state, or game.Default when nothing has
	// been committed yet.
	Current(ctx context.Context) (game.State, error)
	// Commit persists st. play may be nil for non-play changes such as a
	// timeout.
	Commit(ctx context.Context, st game.State, play *PlayRecord) error
	Close() error
}

// Historian is implemented by stores that keep a play log.
type Historian interface {
	History(ctx context.Context, limit int) ([]PlayRecord, error)
}

// Open picks a backend by name.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", "json":
		return NewJSONStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("unknown state store %q", kind)
}
