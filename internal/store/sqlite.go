package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/markd315/football-vibes-sub000/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS state_versions (
	version_id  TEXT PRIMARY KEY,
	parent_id   TEXT,
	state_json  TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES state_versions(version_id)
);

CREATE TABLE IF NOT EXISTS active_state (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	version_id  TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES state_versions(version_id)
);

CREATE TABLE IF NOT EXISTS play_log (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	play_id      TEXT NOT NULL UNIQUE,
	version_id   TEXT NOT NULL,
	play_type    TEXT NOT NULL,
	category     TEXT,
	yards        INTEGER NOT NULL,
	turnover     INTEGER NOT NULL,
	event        TEXT,
	description  TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES state_versions(version_id)
);
`

// SQLiteStore keeps every committed state as a version and moves an active
// pointer, with plays logged against the version they produced.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) activeVersion(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, `SELECT version_id FROM active_state WHERE id = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// Current reads the active version.
func (s *SQLiteStore) Current(ctx context.Context) (game.State, error) {
	id, err := s.activeVersion(ctx, s.db)
	if err != nil {
		return game.State{}, fmt.Errorf("get active: %w", err)
	}
	if id == "" {
		return game.Default(), nil
	}
	var raw string
	err = s.db.QueryRowContext(ctx,
		`SELECT state_json FROM state_versions WHERE version_id = ?`, id,
	).Scan(&raw)
	if err != nil {
		return game.State{}, fmt.Errorf("get version %s: %w", id, err)
	}
	st := game.Default()
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return game.State{}, fmt.Errorf("decode version %s: %w", id, err)
	}
	st.Normalize()
	return st, nil
}

// Commit inserts a new version, points the active state at it and logs the
// play, all in one transaction.
func (s *SQLiteStore) Commit(ctx context.Context, st game.State, play *PlayRecord) error {
	stateJSON, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	parent, err := s.activeVersion(ctx, tx)
	if err != nil {
		return fmt.Errorf("get active: %w", err)
	}
	var parentPtr any
	if parent != "" {
		parentPtr = parent
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO state_versions (version_id, parent_id, state_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, parentPtr, string(stateJSON), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO active_state (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		id,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	if play != nil {
		if play.ID == "" {
			play.ID = uuid.New().String()
		}
		if play.CreatedAt.IsZero() {
			play.CreatedAt = now
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO play_log (play_id, version_id, play_type, category, yards, turnover, event, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			play.ID, id, play.PlayType, play.Category, play.Yards, play.Turnover,
			play.Event, play.Description, play.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert play: %w", err)
		}
	}

	return tx.Commit()
}

// History returns up to limit plays, newest first.
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]PlayRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT play_id, play_type, category, yards, turnover, event, description, created_at
		 FROM play_log ORDER BY seq DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	defer rows.Close()

	var plays []PlayRecord
	for rows.Next() {
		var rec PlayRecord
		var category, event sql.NullString
		var created string
		if err := rows.Scan(&rec.ID, &rec.PlayType, &category, &rec.Yards, &rec.Turnover, &event, &rec.Description, &created); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		rec.Category = category.String
		rec.Event = event.String
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		plays = append(plays, rec)
	}
	return plays, rows.Err()
}
