// Package sqlite provides the SQLite-backed event and suggestion stores.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/event"
	sqlitemigrate "github.com/Fordjour12/seila/internal/platform/storage/sqlitemigrate"
	"github.com/Fordjour12/seila/internal/storage"
	"github.com/Fordjour12/seila/internal/storage/sqlite/migrations"
	"github.com/Fordjour12/seila/internal/suggestion"
	_ "modernc.org/sqlite"
)

// Store persists the event log and active suggestions in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvents atomically appends a decision's events. The idempotency key
// check and the inserts share one transaction, so a raced retry observes
// either all events or the conflict, never a partial batch.
func (s *Store) AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("at least one event is required")
	}
	userID := events[0].UserID
	key := events[0].IdempotencyKey
	for _, evt := range events {
		if evt.UserID != userID || evt.IdempotencyKey != key {
			return nil, fmt.Errorf("events in one append must share user id and idempotency key")
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var used int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM events WHERE user_id = ? AND idempotency_key = ? LIMIT 1`,
		userID, key,
	).Scan(&used)
	if err == nil {
		return nil, storage.ErrIdempotencyConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check idempotency key: %w", err)
	}

	var latest sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM events WHERE user_id = ?`, userID,
	).Scan(&latest); err != nil {
		return nil, fmt.Errorf("latest seq: %w", err)
	}

	seq := uint64(latest.Int64)
	appended := make([]event.Event, 0, len(events))
	for _, evt := range events {
		seq++
		evt.Seq = seq
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events (
			   user_id, seq, type, occurred_at, idempotency_key,
			   entity_type, entity_id, payload_json, meta_json
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			evt.UserID,
			evt.Seq,
			string(evt.Type),
			toMillis(evt.OccurredAt),
			evt.IdempotencyKey,
			evt.EntityType,
			evt.EntityID,
			string(evt.PayloadJSON),
			string(evt.MetaJSON),
		); err != nil {
			return nil, fmt.Errorf("insert event %s: %w", evt.Type, err)
		}
		appended = append(appended, evt)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit append: %w", err)
	}
	return appended, nil
}

// FindByIdempotencyKey returns the events previously appended under a key.
func (s *Store) FindByIdempotencyKey(ctx context.Context, userID, key string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		eventColumns+` WHERE user_id = ? AND idempotency_key = ? ORDER BY seq ASC`,
		userID, key,
	)
	if err != nil {
		return nil, fmt.Errorf("find by idempotency key: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("find by idempotency key: %w", err)
	}
	if len(events) == 0 {
		return nil, storage.ErrNotFound
	}
	return events, nil
}

// ListEvents returns up to limit events with Seq greater than afterSeq.
func (s *Store) ListEvents(ctx context.Context, userID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		eventColumns+` WHERE user_id = ? AND seq > ? ORDER BY seq ASC LIMIT ?`,
		userID, afterSeq, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// LatestSeq returns the highest assigned sequence for the user.
func (s *Store) LatestSeq(ctx context.Context, userID string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var latest sql.NullInt64
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM events WHERE user_id = ?`, userID,
	).Scan(&latest); err != nil {
		return 0, fmt.Errorf("latest seq: %w", err)
	}
	return uint64(latest.Int64), nil
}

const eventColumns = `SELECT user_id, seq, type, occurred_at, idempotency_key,
        entity_type, entity_id, payload_json, meta_json
   FROM events`

func scanEvents(rows *sql.Rows) ([]event.Event, error) {
	var events []event.Event
	for rows.Next() {
		var evt event.Event
		var eventType string
		var occurredAt int64
		var payloadJSON, metaJSON string
		if err := rows.Scan(
			&evt.UserID,
			&evt.Seq,
			&eventType,
			&occurredAt,
			&evt.IdempotencyKey,
			&evt.EntityType,
			&evt.EntityID,
			&payloadJSON,
			&metaJSON,
		); err != nil {
			return nil, err
		}
		evt.Type = event.Type(eventType)
		evt.OccurredAt = fromMillis(occurredAt)
		evt.PayloadJSON = []byte(payloadJSON)
		if metaJSON != "" {
			evt.MetaJSON = []byte(metaJSON)
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}

var _ storage.EventStore = (*Store)(nil)
var _ storage.SuggestionStore = (*Store)(nil)

// ListActive returns the user's active suggestions ordered by policy id.
func (s *Store) ListActive(ctx context.Context, userID string) ([]suggestion.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, user_id, policy_id, headline, subtext, action, priority,
		        created_at, updated_at
		   FROM suggestions
		  WHERE user_id = ? AND dismissed_at = 0
		  ORDER BY policy_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list active suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []suggestion.Suggestion
	for rows.Next() {
		var sug suggestion.Suggestion
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&sug.ID,
			&sug.UserID,
			&sug.PolicyID,
			&sug.Headline,
			&sug.Subtext,
			&sug.Action,
			&sug.Priority,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("list active suggestions: %w", err)
		}
		sug.CreatedAt = fromMillis(createdAt)
		sug.UpdatedAt = fromMillis(updatedAt)
		suggestions = append(suggestions, sug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active suggestions: %w", err)
	}
	return suggestions, nil
}

// Put inserts or replaces a suggestion by id.
func (s *Store) Put(ctx context.Context, sug suggestion.Suggestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(sug.ID) == "" {
		return fmt.Errorf("suggestion id is required")
	}
	if strings.TrimSpace(sug.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(sug.PolicyID) == "" {
		return fmt.Errorf("policy id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO suggestions (
		   id, user_id, policy_id, headline, subtext, action, priority,
		   created_at, updated_at, dismissed_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		 ON CONFLICT(id) DO UPDATE SET
		   headline = excluded.headline,
		   subtext = excluded.subtext,
		   action = excluded.action,
		   priority = excluded.priority,
		   updated_at = excluded.updated_at,
		   dismissed_at = 0`,
		sug.ID,
		sug.UserID,
		sug.PolicyID,
		sug.Headline,
		sug.Subtext,
		sug.Action,
		sug.Priority,
		toMillis(sug.CreatedAt),
		toMillis(sug.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put suggestion: %w", err)
	}
	return nil
}

// Dismiss marks a suggestion inactive.
func (s *Store) Dismiss(ctx context.Context, userID, suggestionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE suggestions SET dismissed_at = ?
		  WHERE user_id = ? AND id = ? AND dismissed_at = 0`,
		toMillis(time.Now()),
		userID,
		suggestionID,
	)
	if err != nil {
		return fmt.Errorf("dismiss suggestion: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("dismiss suggestion: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
