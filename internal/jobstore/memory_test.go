package jobstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("shared behavior", func(t *testing.T) {
		t.Parallel()
		exerciseStore(t, NewMemoryStore(time.Minute))
	})

	t.Run("returned jobs are copies", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := NewMemoryStore(time.Minute)
		job := NewJob("https://acme.com")
		if err := s.Put(ctx, job); err != nil {
			t.Fatalf("failed to put job: %v", err)
		}

		job.Status = StatusFailed
		got, err := s.Get(ctx, job.ID)
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}
		if got.Status != StatusPending {
			t.Errorf("expected stored job to stay pending, got %q", got.Status)
		}
	})

	t.Run("expired jobs are dropped on read", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		s := NewMemoryStore(time.Minute)
		s.now = func() time.Time { return now }

		job := NewJob("https://acme.com")
		if err := s.Put(ctx, job); err != nil {
			t.Fatalf("failed to put job: %v", err)
		}

		now = now.Add(59 * time.Second)
		if _, err := s.Get(ctx, job.ID); err != nil {
			t.Errorf("expected job before ttl, got %v", err)
		}

		now = now.Add(time.Second)
		if _, err := s.Get(ctx, job.ID); !errors.Is(err, ErrJobNotFound) {
			t.Errorf("expected ErrJobNotFound at ttl, got %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("expected expired job to be removed, got %d jobs", s.Len())
		}
	})

	t.Run("put restarts the ttl", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		s := NewMemoryStore(time.Minute)
		s.now = func() time.Time { return now }

		job := NewJob("https://acme.com")
		_ = s.Put(ctx, job)
		now = now.Add(50 * time.Second)
		_ = s.Put(ctx, job)
		now = now.Add(50 * time.Second)

		if _, err := s.Get(ctx, job.ID); err != nil {
			t.Errorf("expected job to survive after update, got %v", err)
		}
	})

	t.Run("sweep removes only expired jobs", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		s := NewMemoryStore(time.Minute)
		s.now = func() time.Time { return now }

		old := NewJob("https://old.com")
		_ = s.Put(ctx, old)
		now = now.Add(45 * time.Second)
		fresh := NewJob("https://fresh.com")
		_ = s.Put(ctx, fresh)
		now = now.Add(30 * time.Second)

		removed, err := s.Sweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}
		if _, err := s.Get(ctx, fresh.ID); err != nil {
			t.Errorf("expected fresh job to remain, got %v", err)
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := NewMemoryStore(time.Minute)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				job := NewJob("https://acme.com")
				_ = s.Put(ctx, job)
				_, _ = s.Get(ctx, job.ID)
				_, _ = s.Sweep(ctx)
			}()
		}
		wg.Wait()

		if s.Len() != 20 {
			t.Errorf("expected 20 jobs, got %d", s.Len())
		}
	})

	t.Run("close drops jobs", func(t *testing.T) {
		t.Parallel()

		s := NewMemoryStore(0)
		_ = s.Put(context.Background(), NewJob("https://acme.com"))
		if err := s.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("expected 0 jobs after close, got %d", s.Len())
		}
		if s.ttl != DefaultTTL {
			t.Errorf("expected default ttl, got %v", s.ttl)
		}
	})
}
