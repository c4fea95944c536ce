package jobstore

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL is how long a job is kept after its last update.
const DefaultTTL = time.Hour

// Store persists jobs for a limited time.
type Store interface {
	// Put inserts or replaces the job and restarts its TTL.
	Put(ctx context.Context, job *Job) error

	// Get returns the job, or ErrJobNotFound when it is missing or expired.
	Get(ctx context.Context, id string) (*Job, error)

	// Delete removes the job. Deleting a missing job is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases the store's resources.
	Close() error
}

// Sweeper is implemented by stores that need expired jobs removed
// explicitly. Redis expires keys on its own and does not implement it.
type Sweeper interface {
	// Sweep deletes every expired job and returns how many were removed.
	Sweep(ctx context.Context) (int, error)
}

// Backend names a Store implementation.
type Backend string

// Supported backends.
const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend returns the backend named by s, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendMemory, BackendRedis, BackendSQLite:
		return b, nil
	case "":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Config selects and configures a backend.
type Config struct {
	Backend Backend

	// TTL is the job lifetime. Zero means DefaultTTL.
	TTL time.Duration

	// Redis connection settings.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SQLiteDir is the directory holding jobs.db.
	SQLiteDir string
}

// Open builds the store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(ttl), nil
	case BackendRedis:
		s := NewRedisStore(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, ttl)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return s, nil
	case BackendSQLite:
		return OpenSQLite(cfg.SQLiteDir, ttl, DefaultSQLiteOptions())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
