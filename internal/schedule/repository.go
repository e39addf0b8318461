package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// recordTimestampFormat matches the feedback log's stored encoding: UTC
// with fixed-width milliseconds.
const recordTimestampFormat = "2006-01-02T15:04:05.000Z"

// Logger is the minimal logging interface the completion store needs.
type Logger interface {
	Warn(msg string, args ...any)
}

// CompletionStore defines persistence for slot completion records.
//
// Records are append-only. A (zoneID, slotID, date) triple appears at most
// once in correct operation, but the store does not enforce uniqueness:
// the session controller is the guard, and duplicate rows are harmless to
// the set-based reads here.
type CompletionStore interface {
	// MarkDone appends a completion record for the given zone and slot,
	// dated with the supplied reference-timezone date.
	MarkDone(ctx context.Context, zoneID, slotID, date string, now time.Time) error

	// CompletedOn returns the set of slot ids completed by the zone on the
	// given reference-timezone date.
	CompletedOn(ctx context.Context, zoneID, date string) (map[string]struct{}, error)

	// PruneBefore deletes records dated strictly before the cutoff date,
	// returning how many rows were removed.
	PruneBefore(ctx context.Context, cutoffDate string) (int64, error)
}

// SQLiteCompletionStore implements CompletionStore using SQLite.
type SQLiteCompletionStore struct {
	db     *sql.DB
	logger Logger
}

// NewSQLiteCompletionStore creates a new SQLite-backed completion store.
func NewSQLiteCompletionStore(db *sql.DB) *SQLiteCompletionStore {
	return &SQLiteCompletionStore{db: db, logger: noopLogger{}}
}

// SetLogger sets the logger for degraded-read warnings.
func (s *SQLiteCompletionStore) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// MarkDone appends a completion record.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - zoneID, slotID: The completed (zone, slot) pair
//   - date: Civil date in the reference timezone (YYYY-MM-DD)
//   - now: Timestamp for the record
//
// Returns:
//   - error: nil on success, otherwise the underlying database error
func (s *SQLiteCompletionStore) MarkDone(ctx context.Context, zoneID, slotID, date string, now time.Time) error {
	if zoneID == "" || slotID == "" || date == "" {
		return fmt.Errorf("zone id, slot id, and date are required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slot_completions (id, date, zone_id, slot_id, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), date, zoneID, slotID,
		now.UTC().Format(recordTimestampFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting slot completion: %w", err)
	}
	return nil
}

// CompletedOn returns the slot ids the zone completed on the given date.
//
// A storage failure degrades to the empty set with a logged warning, in
// line with the feedback log's read behaviour.
func (s *SQLiteCompletionStore) CompletedOn(ctx context.Context, zoneID, date string) (map[string]struct{}, error) {
	done := make(map[string]struct{})

	rows, err := s.db.QueryContext(ctx,
		`SELECT slot_id FROM slot_completions WHERE zone_id = ? AND date = ?`,
		zoneID, date,
	)
	if err != nil {
		s.logger.Warn("slot completion read degraded to empty", "error", err)
		return done, nil
	}
	defer rows.Close()

	for rows.Next() {
		var slotID string
		if err := rows.Scan(&slotID); err != nil {
			s.logger.Warn("slot completion read degraded to empty", "error", err)
			return map[string]struct{}{}, nil
		}
		done[slotID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("slot completion read degraded to empty", "error", err)
		return map[string]struct{}{}, nil
	}

	return done, nil
}

// PruneBefore deletes records dated strictly before the cutoff date.
//
// The completion log would otherwise grow without bound; completions only
// matter for "today", so anything older than the retention window is dead
// weight. YYYY-MM-DD strings compare correctly with plain string ordering.
func (s *SQLiteCompletionStore) PruneBefore(ctx context.Context, cutoffDate string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM slot_completions WHERE date < ?`,
		cutoffDate,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning slot completions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// noopLogger discards all log output.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}
