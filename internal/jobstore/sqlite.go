package jobstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteFileName is the database file created inside the store directory.
const SQLiteFileName = "jobs.db"

// SQLiteOptions configures SQLiteStore behavior.
type SQLiteOptions struct {
	// CreateIfNotExists creates the directory and database file if needed.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultSQLiteOptions returns the default database options.
func DefaultSQLiteOptions() SQLiteOptions {
	return SQLiteOptions{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// SQLiteStore keeps jobs in a SQLite table. Rows past their expires_at
// are invisible to Get and removed by Sweep.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	ttl    time.Duration
	now    func() time.Time
}

// OpenSQLite opens or creates the job database in dir.
func OpenSQLite(dir string, ttl time.Duration, opts SQLiteOptions) (*SQLiteStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	dbPath := filepath.Join(dir, SQLiteFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		ttl:    ttl,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		status TEXT NOT NULL,
		job_json TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_expires_at ON jobs(expires_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Put implements Store. expires_at is stored as Unix nanoseconds.
func (s *SQLiteStore) Put(ctx context.Context, job *Job) error {
	if job == nil || job.ID == "" {
		return ErrInvalidJob
	}

	jobJSON, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to serialize job: %w", err)
	}

	query := `
	INSERT INTO jobs (id, url, status, job_json, expires_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		url = excluded.url,
		status = excluded.status,
		job_json = excluded.job_json,
		expires_at = excluded.expires_at
	`

	_, err = s.db.ExecContext(ctx, query,
		job.ID,
		job.URL,
		string(job.Status),
		string(jobJSON),
		s.now().Add(s.ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Job, error) {
	query := `
	SELECT job_json FROM jobs
	WHERE id = ? AND expires_at > ?
	`

	var jobJSON string
	err := s.db.QueryRowContext(ctx, query, id, s.now().UnixNano()).Scan(&jobJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job Job
	if err := json.Unmarshal([]byte(jobJSON), &job); err != nil {
		return nil, fmt.Errorf("failed to parse job: %w", err)
	}
	return &job, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// Sweep implements Sweeper.
func (s *SQLiteStore) Sweep(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE expires_at <= ?", s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep jobs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept jobs: %w", err)
	}
	return int(n), nil
}
