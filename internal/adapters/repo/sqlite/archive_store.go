// Package sqlite provides a SQLite-backed round archive.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS rounds (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	round_id TEXT NOT NULL,
	digit INTEGER NOT NULL,
	category TEXT NOT NULL,
	color TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	recorded_at INTEGER NOT NULL,
	UNIQUE (run_id, round_id)
)`

// Store persists archived rounds in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ ports.RoundArchive = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the archive database at path and creates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create rounds table: %w", err)
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

// Append inserts rounds in order inside one transaction, ignoring rounds
// already recorded for the same run.
func (s *Store) Append(ctx context.Context, rounds []domain.ArchivedRound) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return domain.ErrArchiveUnavailable
	}
	if len(rounds) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO rounds (run_id, round_id, digit, category, color, started_at, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare archive insert: %w", err)
	}
	defer stmt.Close()

	for _, archived := range rounds {
		if _, err := stmt.ExecContext(ctx,
			archived.RunID,
			archived.Round.ID.String(),
			archived.Round.Outcome.Digit,
			string(archived.Round.Outcome.Category),
			string(archived.Round.Outcome.Color),
			toMillis(archived.Round.StartedAt),
			toMillis(archived.RecordedAt),
		); err != nil {
			return fmt.Errorf("insert archived round %s: %w", archived.Round.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

// List returns up to limit rounds, most recently inserted first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.ArchivedRound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, domain.ErrArchiveUnavailable
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT run_id, round_id, digit, category, color, started_at, recorded_at
		 FROM rounds ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query archived rounds: %w", err)
	}
	defer rows.Close()

	var rounds []domain.ArchivedRound
	for rows.Next() {
		var (
			archived   domain.ArchivedRound
			roundID    string
			category   string
			color      string
			startedAt  int64
			recordedAt int64
		)
		if err := rows.Scan(&archived.RunID, &roundID, &archived.Round.Outcome.Digit, &category, &color, &startedAt, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan archived round: %w", err)
		}
		archived.Round.ID = domain.RoundID(roundID)
		archived.Round.Outcome.Category = domain.Category(category)
		archived.Round.Outcome.Color = domain.Color(color)
		archived.Round.StartedAt = fromMillis(startedAt)
		archived.RecordedAt = fromMillis(recordedAt)
		rounds = append(rounds, archived)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archived rounds: %w", err)
	}

	return rounds, nil
}
