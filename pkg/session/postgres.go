package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements EventStore on PostgreSQL. Unlike the other stores it is
// a durable audit trail: the MaxEvents cap still bounds what queries return,
// but rows are only pruned per session, never globally expired.
type PGStore struct {
	pool *pgxpool.Pool
}

// Schema creates the crisis event table. Run at deploy time or via
// EnsureSchema for development setups.
const Schema = `
CREATE TABLE IF NOT EXISTS crisis_events (
    id           UUID PRIMARY KEY,
    session_id   TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    crisis_level INT NOT NULL,
    crisis_type  TEXT NOT NULL,
    categories   TEXT[] NOT NULL DEFAULT '{}',
    intervention BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS crisis_events_session_idx
    ON crisis_events (session_id, created_at);
`

// NewPGStore connects a pool to the given DSN and verifies the connection.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// EnsureSchema applies the event table schema.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PGStore) AppendEvent(ctx context.Context, event CrisisEvent) error {
	if event.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	categories := event.Categories
	if categories == nil {
		categories = []string{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO crisis_events (id, session_id, created_at, crisis_level, crisis_type, categories, intervention)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.SessionID, event.Timestamp, event.Level, event.Type, categories, event.Intervened)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	// Prune beyond the retained window.
	_, err = s.pool.Exec(ctx,
		`DELETE FROM crisis_events
		 WHERE session_id = $1 AND id NOT IN (
		     SELECT id FROM crisis_events
		     WHERE session_id = $1
		     ORDER BY created_at DESC, id DESC
		     LIMIT $2)`,
		event.SessionID, MaxEvents)
	if err != nil {
		return fmt.Errorf("prune events: %w", err)
	}
	return nil
}

func (s *PGStore) RecentEvents(ctx context.Context, sessionID string, n int) ([]CrisisEvent, error) {
	limit := MaxEvents
	if n > 0 && n < MaxEvents {
		limit = n
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, created_at, crisis_level, crisis_type, categories, intervention
		 FROM crisis_events
		 WHERE session_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var newestFirst []CrisisEvent
	for rows.Next() {
		var ev CrisisEvent
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Timestamp, &ev.Level, &ev.Type, &ev.Categories, &ev.Intervened); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		newestFirst = append(newestFirst, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	events := make([]CrisisEvent, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		events = append(events, newestFirst[i])
	}
	return events, nil
}

func (s *PGStore) EventCount(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM crisis_events WHERE session_id = $1`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	if count > MaxEvents {
		count = MaxEvents
	}
	return count, nil
}

func (s *PGStore) EndSession(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM crisis_events WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}

var _ EventStore = (*PGStore)(nil)
