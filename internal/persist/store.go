// Package persist owns the storage boundary of the difficulty manager: a
// SQLite-backed snapshot store keyed by an opaque user identifier, plus a
// per-round audit log. The controller only produces and consumes snapshots;
// it never touches storage mid-round.
package persist

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS adm_snapshots (
	user_id        TEXT PRIMARY KEY,
	snapshot_id    TEXT NOT NULL,
	schema_version INTEGER NOT NULL,
	payload        TEXT NOT NULL,
	saved_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS round_log (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	round_id   TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	strategy   TEXT NOT NULL,
	score      REAL NOT NULL,
	arousal    REAL NOT NULL,
	signal     REAL NOT NULL,
	decision   TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_round_log_user
ON round_log(user_id, created_at);
`

// #endregion schema

// ErrCorruptSnapshot marks a stored snapshot that could not be decoded.
// Callers log it and start from fresh defaults; it is never fatal.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// #region store

// Store manages snapshots and the round audit log in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for inspection tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region load

// Load reads and migrates a user's snapshot. A missing snapshot returns
// (nil, nil); an undecodable one returns (nil, ErrCorruptSnapshot) so the
// caller can log and degrade to fresh defaults.
func (s *Store) Load(userID string) (*Snapshot, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM adm_snapshots WHERE user_id = ?`, userID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", userID, err)
	}

	snap, err := decodeSnapshot([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return snap, nil
}

// #endregion load

// #region save

// Save upserts a user's snapshot atomically. The snapshot is stamped with
// the current schema version and save time.
func (s *Store) Save(snap Snapshot, userID string) error {
	snap.SchemaVersion = SchemaVersion
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO adm_snapshots (user_id, snapshot_id, schema_version, payload, saved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			snapshot_id = excluded.snapshot_id,
			schema_version = excluded.schema_version,
			payload = excluded.payload,
			saved_at = excluded.saved_at`,
		userID, uuid.New().String(), snap.SchemaVersion, string(payload),
		snap.SavedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save snapshot for %s: %w", userID, err)
	}
	return nil
}

// #endregion save

// #region clear

// Clear removes a user's snapshot and round log rows.
func (s *Store) Clear(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM adm_snapshots WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM round_log WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear round log: %w", err)
	}
	return tx.Commit()
}

// Users lists user ids with a stored snapshot.
func (s *Store) Users() ([]string, error) {
	rows, err := s.db.Query(`SELECT user_id FROM adm_snapshots ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

// #endregion clear

// #region round-log

// RoundEntry is one audit row of the round log.
type RoundEntry struct {
	RoundID   string
	UserID    string
	Strategy  string
	Score     float64
	Arousal   float64
	Signal    float64
	Decision  string
	CreatedAt time.Time
}

// LogRound writes one audit row.
func (s *Store) LogRound(e RoundEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO round_log (round_id, user_id, strategy, score, arousal, signal, decision, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RoundID, e.UserID, e.Strategy, e.Score, e.Arousal, e.Signal, e.Decision,
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log round: %w", err)
	}
	return nil
}

// RecentRounds returns the most recent audit rows for a user, newest first.
func (s *Store) RecentRounds(userID string, limit int) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT round_id, user_id, strategy, score, arousal, signal, decision, created_at
		 FROM round_log WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var createdStr string
		if err := rows.Scan(&e.RoundID, &e.UserID, &e.Strategy, &e.Score, &e.Arousal, &e.Signal, &e.Decision, &createdStr); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion round-log
