package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timestampFormat is the stored encoding for entry timestamps: UTC with
// fixed-width milliseconds, so lexicographic order equals chronological order.
const timestampFormat = "2006-01-02T15:04:05.000Z"

// Logger is the minimal logging interface the store needs.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Store defines the event log operations for comfort submissions.
//
// Reads degrade to an empty log when the underlying storage is unavailable
// or corrupted: the log is a best-effort local record, not a system of
// record, and a broken medium must never take the session surface down.
type Store interface {
	// Append records a new submission and trims the log to its cap.
	Append(ctx context.Context, storeID, zoneID string, fb Type) (*Entry, error)

	// LatestFor returns the feedback value of the most recent entry for
	// (storeID, zoneID), or ok=false when none exists.
	LatestFor(ctx context.Context, storeID, zoneID string) (fb Type, ok bool)

	// CooldownRemaining computes how long until (storeID, zoneID) may submit
	// again: window − (now − latest entry), clamped to zero. Zero when no
	// prior entry exists.
	CooldownRemaining(ctx context.Context, storeID, zoneID string, now time.Time, window time.Duration) time.Duration

	// Entries returns the full log, oldest first.
	Entries(ctx context.Context) ([]Entry, error)

	// Count returns the current log length.
	Count(ctx context.Context) (int, error)
}

// SQLiteStore implements Store using SQLite.
//
// The log is capped system-wide, not per zone or store: a busy store can
// evict older history from quieter zones. Keyed lookups scan through an
// index on (store_id, zone_id, timestamp); with the cap at 1000 rows and
// UI-tick-driven read rates, nothing here is hot-path.
type SQLiteStore struct {
	db         *sql.DB
	maxEntries int
	now        func() time.Time
	logger     Logger
}

// NewSQLiteStore creates a new SQLite-backed feedback log.
//
// Parameters:
//   - db: Open SQLite connection
//   - maxEntries: System-wide cap; oldest entries are trimmed past it
//
// Returns:
//   - *SQLiteStore: Store ready for use
func NewSQLiteStore(db *sql.DB, maxEntries int) *SQLiteStore {
	return &SQLiteStore{
		db:         db,
		maxEntries: maxEntries,
		now:        time.Now,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for degraded-read warnings.
func (s *SQLiteStore) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetClock overrides the time source. Tests use this to inject a
// synthetic clock; production code leaves it at time.Now.
func (s *SQLiteStore) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Append records a new submission.
//
// It generates a unique id and timestamp, inserts the entry, and trims the
// log from the oldest end until it is back at the cap. Insert and trim run
// in one transaction so a reader never observes an over-cap log.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - storeID, zoneID: Keys into the static catalog (not validated here)
//   - fb: Feedback value from the closed set
//
// Returns:
//   - *Entry: The recorded entry
//   - error: ErrInvalidType / ErrMissingKeys on bad input, otherwise the
//     underlying database error
func (s *SQLiteStore) Append(ctx context.Context, storeID, zoneID string, fb Type) (*Entry, error) {
	if storeID == "" || zoneID == "" {
		return nil, ErrMissingKeys
	}
	if !ValidType(string(fb)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, fb)
	}

	entry := &Entry{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		ZoneID:    zoneID,
		Feedback:  fb,
		Timestamp: s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting append transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO feedback_entries (id, store_id, zone_id, feedback, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.StoreID, entry.ZoneID, string(entry.Feedback),
		entry.Timestamp.Format(timestampFormat),
	); err != nil {
		return nil, fmt.Errorf("inserting feedback entry: %w", err)
	}

	// Trim oldest entries past the cap. Ties on timestamp break by insert
	// order (rowid), so the entry just written always survives.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM feedback_entries WHERE rowid NOT IN (
			SELECT rowid FROM feedback_entries
			ORDER BY timestamp DESC, rowid DESC
			LIMIT ?
		)`,
		s.maxEntries,
	); err != nil {
		return nil, fmt.Errorf("trimming feedback log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing append: %w", err)
	}

	return entry, nil
}

// LatestFor returns the most recent feedback value for (storeID, zoneID).
//
// Most recent means highest timestamp, ties broken by insert order. A
// storage failure degrades to "no entry" with a logged warning.
func (s *SQLiteStore) LatestFor(ctx context.Context, storeID, zoneID string) (Type, bool) {
	entry, ok := s.latestEntry(ctx, storeID, zoneID)
	if !ok {
		return "", false
	}
	return entry.Feedback, true
}

// CooldownRemaining computes the remaining cooldown for (storeID, zoneID).
//
// Returns window − (now − latest entry timestamp), clamped to zero, or
// zero when no prior entry exists (including degraded reads).
func (s *SQLiteStore) CooldownRemaining(ctx context.Context, storeID, zoneID string, now time.Time, window time.Duration) time.Duration {
	entry, ok := s.latestEntry(ctx, storeID, zoneID)
	if !ok {
		return 0
	}
	remaining := window - now.Sub(entry.Timestamp)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// latestEntry fetches the newest entry for the key pair.
func (s *SQLiteStore) latestEntry(ctx context.Context, storeID, zoneID string) (*Entry, bool) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, store_id, zone_id, feedback, timestamp
		 FROM feedback_entries
		 WHERE store_id = ? AND zone_id = ?
		 ORDER BY timestamp DESC, rowid DESC
		 LIMIT 1`,
		storeID, zoneID,
	)

	entry, err := scanEntry(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("feedback log read degraded to empty", "error", err)
		}
		return nil, false
	}
	return entry, true
}

// Entries returns the full log, oldest first.
func (s *SQLiteStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, store_id, zone_id, feedback, timestamp
		 FROM feedback_entries
		 ORDER BY timestamp ASC, rowid ASC`,
	)
	if err != nil {
		s.logger.Warn("feedback log read degraded to empty", "error", err)
		return []Entry{}, nil
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			s.logger.Warn("feedback log read degraded to empty", "error", err)
			return []Entry{}, nil
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("feedback log read degraded to empty", "error", err)
		return []Entry{}, nil
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Count returns the current log length.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM feedback_entries",
	).Scan(&n); err != nil {
		s.logger.Warn("feedback log count degraded to zero", "error", err)
		return 0, nil
	}
	return n, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanEntry.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry scans one feedback entry row.
func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var fb, ts string

	if err := row.Scan(&entry.ID, &entry.StoreID, &entry.ZoneID, &fb, &ts); err != nil {
		return nil, err
	}

	entry.Feedback = Type(fb)

	parsed, err := time.Parse(timestampFormat, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing entry timestamp %q: %w", ts, err)
	}
	entry.Timestamp = parsed

	return &entry, nil
}

// noopLogger discards all log output.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
