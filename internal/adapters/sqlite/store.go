// Package sqlite stores finished simulation runs so they can be compared
// across modes and seeds.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dripsim/internal/domain"
	"dripsim/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.RunExporter using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements RunExporter
var _ ports.RunExporter = (*Store)(nil)

// RunSummary is one row of the runs table
type RunSummary struct {
	ID         int64
	Program    string
	Mode       domain.BehaviorMode
	Speed      domain.Speed
	Day        int
	Branches   domain.BranchCounters
	InboxStats domain.InboxStats
	CreatedAt  time.Time
}

// Open opens or creates the database at path. An empty path uses the
// default location under the XDG data directory.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path != ":memory:" {
		if len(path) > 0 && path[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			path = filepath.Join(home, path[1:])
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			program TEXT NOT NULL,
			mode TEXT NOT NULL,
			speed INTEGER NOT NULL,
			day INTEGER NOT NULL,
			branch_main INTEGER NOT NULL,
			branch_reminder INTEGER NOT NULL,
			branch_conversion INTEGER NOT NULL,
			branch_cold_leads INTEGER NOT NULL,
			total INTEGER NOT NULL,
			opened INTEGER NOT NULL,
			clicked INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS messages (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			instance_id TEXT NOT NULL,
			email_id TEXT NOT NULL,
			sent_on_day INTEGER NOT NULL,
			status TEXT NOT NULL,
			opened_on_day INTEGER,
			clicked_on_day INTEGER,
			PRIMARY KEY (run_id, instance_id)
		);
		CREATE TABLE IF NOT EXISTS timeline (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			day INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
		CREATE TABLE IF NOT EXISTS daily_stats (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			day INTEGER NOT NULL,
			sent INTEGER NOT NULL,
			opened INTEGER NOT NULL,
			clicked INTEGER NOT NULL,
			PRIMARY KEY (run_id, day)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_program ON runs(program, mode);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, dbPath: path}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file
func (s *Store) Path() string {
	return s.dbPath
}

// DefaultPath returns $XDG_DATA_HOME/dripsim/runs.db
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "dripsim", "runs.db")
}

// PathFor returns a per-catalog database path so runs over different
// catalogs do not mix
func PathFor(catalogPath string) string {
	h := sha256.Sum256([]byte(catalogPath))
	return filepath.Join(filepath.Dir(DefaultPath()), hex.EncodeToString(h[:8])+".db")
}

// ExportRun stores snap with all its rows in one transaction
func (s *Store) ExportRun(ctx context.Context, snap domain.Snapshot) (int64, error) {
	var id int64
	err := retryOnContention(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		rtx := &runTx{tx: tx}
		id, err = rtx.insertRun(ctx, snap)
		if err != nil {
			_ = rtx.Rollback()
			return err
		}
		if err := rtx.insertRows(ctx, id, snap); err != nil {
			_ = rtx.Rollback()
			return err
		}
		return rtx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("failed to export run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first. An empty program
// lists every program.
func (s *Store) ListRuns(ctx context.Context, program string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, program, mode, speed, day,
			branch_main, branch_reminder, branch_conversion, branch_cold_leads,
			total, opened, clicked, created_at
		FROM runs
		WHERE ? = '' OR program = ?
		ORDER BY id DESC
		LIMIT ?
	`, program, program, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var mode string
		var created int64
		if err := rows.Scan(&r.ID, &r.Program, &mode, &r.Speed, &r.Day,
			&r.Branches.Main, &r.Branches.Reminder, &r.Branches.Conversion, &r.Branches.ColdLeads,
			&r.InboxStats.Total, &r.InboxStats.Opened, &r.InboxStats.Clicked, &created); err != nil {
			return nil, err
		}
		r.Mode = domain.BehaviorMode(mode)
		r.CreatedAt = time.Unix(created, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DailyStats returns the per-day tallies of a stored run
func (s *Store) DailyStats(ctx context.Context, runID int64) ([]domain.DayStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, sent, opened, clicked FROM daily_stats
		WHERE run_id = ? ORDER BY day
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to read daily stats: %w", err)
	}
	defer rows.Close()

	var days []domain.DayStats
	for rows.Next() {
		var d domain.DayStats
		if err := rows.Scan(&d.Day, &d.Sent, &d.Opened, &d.Clicked); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
