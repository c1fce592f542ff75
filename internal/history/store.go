package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/slideai/internal/db"
)

// Store persists generation events.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts an event. If ev.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_events (
			id, session_id, kind, model, status, status_code,
			prompt_tokens, output_chars, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID,
		ev.SessionID,
		string(ev.Kind),
		ev.Model,
		string(ev.Status),
		ev.StatusCode,
		ev.PromptTokens,
		ev.OutputChars,
		ev.DurationMS,
		ev.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting generation event: %w", err)
	}
	return nil
}

// QueryFilter controls which events Query returns.
type QueryFilter struct {
	SessionID string
	Kind      Kind
	Status    Status
	Since     *time.Time
	Limit     int
	Offset    int
}

// Query returns events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, session_id, kind, model, status, status_code, prompt_tokens, output_chars, duration_ms, error, created_at FROM generation_events"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying generation events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			ev           Event
			kind, status string
			ts           string
		)
		err := rows.Scan(&ev.ID, &ev.SessionID, &kind, &ev.Model, &status, &ev.StatusCode,
			&ev.PromptTokens, &ev.OutputChars, &ev.DurationMS, &ev.Error, &ts)
		if err != nil {
			return nil, fmt.Errorf("scanning generation event: %w", err)
		}
		ev.Kind = Kind(kind)
		ev.Status = Status(status)
		ev.CreatedAt = parseTime(ts)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Stats aggregates all events by kind.
func (s *Store) Stats(ctx context.Context) ([]KindStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind,
		       COUNT(*),
		       SUM(CASE WHEN status = 'succeeded' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END),
		       AVG(duration_ms)
		FROM generation_events
		GROUP BY kind
		ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("querying generation stats: %w", err)
	}
	defer rows.Close()

	var stats []KindStats
	for rows.Next() {
		var (
			ks   KindStats
			kind string
		)
		if err := rows.Scan(&kind, &ks.Total, &ks.Succeeded, &ks.Failed, &ks.AvgDurationMS); err != nil {
			return nil, fmt.Errorf("scanning generation stats: %w", err)
		}
		ks.Kind = Kind(kind)
		stats = append(stats, ks)
	}
	return stats, rows.Err()
}

// DeleteBefore removes events older than before and returns how many were
// removed.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM generation_events WHERE created_at < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old generation events: %w", err)
	}
	return res.RowsAffected()
}

func parseTime(ts string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
