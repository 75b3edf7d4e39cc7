// Package sqlite provides a SQLite-backed statistics sink.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oriumgames/arena"
	"github.com/oriumgames/arena/stats/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const migrationTable = "schema_migrations"

// ErrBusy is returned when the database stayed locked past the busy timeout.
var ErrBusy = errors.New("statistics database is busy")

// Store persists statistics in SQLite. Deltas are added to the stored totals.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite statistics store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
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

// RecordStatistics adds a delta to the participant's totals for the arena.
func (s *Store) RecordStatistics(ctx context.Context, arenaName string, id uuid.UUID, delta arena.StatDelta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(arenaName) == "" {
		return fmt.Errorf("arena name is required")
	}
	if delta.IsZero() {
		return nil
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO player_stats (
		   arena, player_id, kills, deaths, wins, losses, played, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (arena, player_id) DO UPDATE SET
		   kills = kills + excluded.kills,
		   deaths = deaths + excluded.deaths,
		   wins = wins + excluded.wins,
		   losses = losses + excluded.losses,
		   played = played + excluded.played,
		   updated_at = excluded.updated_at`,
		arenaName,
		id.String(),
		delta.Kills,
		delta.Deaths,
		delta.Wins,
		delta.Losses,
		delta.Played,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		if isBusy(err) {
			return fmt.Errorf("record statistics: %w", ErrBusy)
		}
		return fmt.Errorf("record statistics: %w", err)
	}
	return nil
}

// Load returns the totals of a participant for an arena. Unknown
// participants have zero totals.
func (s *Store) Load(ctx context.Context, arenaName string, id uuid.UUID) (arena.StatDelta, error) {
	var d arena.StatDelta
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT kills, deaths, wins, losses, played
		 FROM player_stats WHERE arena = ? AND player_id = ?`,
		arenaName,
		id.String(),
	).Scan(&d.Kills, &d.Deaths, &d.Wins, &d.Losses, &d.Played)
	if errors.Is(err, sql.ErrNoRows) {
		return arena.StatDelta{}, nil
	}
	if err != nil {
		return arena.StatDelta{}, fmt.Errorf("load statistics: %w", err)
	}
	return d, nil
}

// Total returns the totals of a participant across every arena.
func (s *Store) Total(ctx context.Context, id uuid.UUID) (arena.StatDelta, error) {
	var d arena.StatDelta
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(kills), 0), COALESCE(SUM(deaths), 0), COALESCE(SUM(wins), 0),
		        COALESCE(SUM(losses), 0), COALESCE(SUM(played), 0)
		 FROM player_stats WHERE player_id = ?`,
		id.String(),
	).Scan(&d.Kills, &d.Deaths, &d.Wins, &d.Losses, &d.Played)
	if err != nil {
		return arena.StatDelta{}, fmt.Errorf("total statistics: %w", err)
	}
	return d, nil
}

func isBusy(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return true
		}
	}
	return false
}

// applyMigrations executes every embedded migration at most once.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
	    name TEXT PRIMARY KEY,
	    applied_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var found int
		err := sqlDB.QueryRow("SELECT 1 FROM "+migrationTable+" WHERE name = ?", file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		up := upSection(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}

		tx, err := sqlDB.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration transaction %s: %w", file, err)
		}
		if _, err := tx.Exec(up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
			file,
			time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// upSection returns the SQL in the -- +migrate Up section.
func upSection(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	i := strings.Index(content, up)
	if i == -1 {
		return content
	}
	content = content[i+len(up):]
	if j := strings.Index(content, down); j != -1 {
		content = content[:j]
	}
	return content
}

var _ arena.StatsSink = (*Store)(nil)
