package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/markd315/football-vibes-sub000/internal/game"
)

// JSONStore keeps the state as a single JSON document, rewritten after every
// commit. It has no play log.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Current(ctx context.Context) (game.State, error) {
	if err := ctx.Err(); err != nil {
		return game.State{}, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return game.Default(), nil
		}
		return game.State{}, fmt.Errorf("read state: %w", err)
	}
	st := game.Default()
	if err := json.Unmarshal(b, &st); err != nil {
		return game.State{}, fmt.Errorf("decode state %s: %w", s.path, err)
	}
	st.Normalize()
	return st, nil
}

// Commit writes to a temporary file and renames it over the document.
func (s *JSONStore) Commit(ctx context.Context, st game.State, _ *PlayRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
