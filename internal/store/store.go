// Package store persists weekly extraction results in SQLite so that monthly
// rollups can be computed from previously processed weeks.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fyrsmithlabs/retro/internal/extract"
)

// Label layouts.
const (
	WeekLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var (
	// ErrNotFound is returned when no week matches a lookup.
	ErrNotFound = errors.New("week not found")

	// ErrInvalidLabel is returned for week or month labels that do not parse.
	ErrInvalidLabel = errors.New("invalid week or month label")
)

// WeekRecord is one saved weekly result.
type WeekRecord struct {
	ID        string         `json:"id"`
	Week      string         `json:"week"`
	Mode      extract.Mode   `json:"mode"`
	Result    extract.Result `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SQLiteStore stores weekly results keyed by (week, mode).
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the database at dsn. A file path is created with
// owner-only permissions.
func Open(dsn string) (*SQLiteStore, error) {
	if filePath, onDisk := sqliteFilePathFromDSN(dsn); onDisk {
		if dir := filepath.Dir(filePath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		if err := ensurePrivateSQLiteFile(filePath); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func sqliteFilePathFromDSN(dsn string) (string, bool) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" || dsn == ":memory:" {
		return "", false
	}
	if strings.HasPrefix(dsn, "file:") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", false
		}
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		if path == "" || path == ":memory:" {
			return "", false
		}
		return path, true
	}
	return dsn, true
}

func ensurePrivateSQLiteFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat db path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("create db file: %w", err)
	}
	return f.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS weeks (
		id TEXT NOT NULL,
		week TEXT NOT NULL,
		mode TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (week, mode)
	);

	CREATE INDEX IF NOT EXISTS idx_weeks_week ON weeks(week);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ValidateWeek checks a YYYY-MM-DD week label.
func ValidateWeek(week string) error {
	if _, err := time.Parse(WeekLayout, week); err != nil {
		return fmt.Errorf("%w: week %q", ErrInvalidLabel, week)
	}
	return nil
}

// ValidateMonth checks a YYYY-MM month label.
func ValidateMonth(month string) error {
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return fmt.Errorf("%w: month %q", ErrInvalidLabel, month)
	}
	return nil
}

// SaveWeek inserts rec or replaces the result already stored for its
// (week, mode). The original ID and creation time are kept on replace.
func (s *SQLiteStore) SaveWeek(ctx context.Context, rec WeekRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateWeek(rec.Week); err != nil {
		return err
	}
	if !rec.Mode.Valid() {
		return fmt.Errorf("save week %s: unknown mode %q", rec.Week, rec.Mode)
	}

	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal week result: %w", err)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO weeks (id, week, mode, result, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(week, mode) DO UPDATE SET
			result = excluded.result,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Week, string(rec.Mode), string(resultJSON), rec.CreatedAt.UTC(), now)
	if err != nil {
		return fmt.Errorf("save week %s/%s: %w", rec.Week, rec.Mode, err)
	}
	return nil
}

// GetWeek loads the result saved for (week, mode).
func (s *SQLiteStore) GetWeek(ctx context.Context, week string, mode extract.Mode) (WeekRecord, error) {
	if err := ctx.Err(); err != nil {
		return WeekRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, week, mode, result, created_at, updated_at
		FROM weeks
		WHERE week = ? AND mode = ?
	`, week, string(mode))

	rec, err := scanWeek(row)
	if errors.Is(err, sql.ErrNoRows) {
		return WeekRecord{}, fmt.Errorf("%w: %s/%s", ErrNotFound, week, mode)
	}
	if err != nil {
		return WeekRecord{}, err
	}
	return rec, nil
}

// ListMonth returns the weeks of month (YYYY-MM) saved for mode, oldest first.
// A week belongs to the month its start date falls in.
func (s *SQLiteStore) ListMonth(ctx context.Context, month string, mode extract.Mode) ([]WeekRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, week, mode, result, created_at, updated_at
		FROM weeks
		WHERE substr(week, 1, 7) = ? AND mode = ?
		ORDER BY week ASC
	`, month, string(mode))
	if err != nil {
		return nil, fmt.Errorf("query month %s: %w", month, err)
	}
	defer rows.Close()

	var out []WeekRecord
	for rows.Next() {
		rec, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

// DeleteWeek removes every mode saved for week.
func (s *SQLiteStore) DeleteWeek(ctx context.Context, week string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM weeks WHERE week = ?`, week); err != nil {
		return fmt.Errorf("delete week %s: %w", week, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWeek(row scanner) (WeekRecord, error) {
	var (
		rec        WeekRecord
		mode       string
		resultJSON string
	)
	if err := row.Scan(&rec.ID, &rec.Week, &mode, &resultJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return WeekRecord{}, fmt.Errorf("scan week: %w", err)
	}
	rec.Mode = extract.Mode(mode)
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return WeekRecord{}, fmt.Errorf("unmarshal week result: %w", err)
	}
	return rec, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
