package jobstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// redisAddr returns the Redis server used by the tests, skipping the test
// when none is configured.
func redisAddr(t *testing.T) string {
	t.Helper()

	addr := os.Getenv("CONTACT_EXTRACTOR_TEST_REDIS")
	if addr == "" {
		t.Skip("CONTACT_EXTRACTOR_TEST_REDIS is not set")
	}
	return addr
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	t.Run("shared behavior", func(t *testing.T) {
		t.Parallel()

		s := NewRedisStore(RedisOptions{Addr: redisAddr(t)}, time.Minute)
		defer s.Close()

		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("failed to ping redis: %v", err)
		}
		exerciseStore(t, s)
	})

	t.Run("keys expire with the ttl", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := NewRedisStore(RedisOptions{Addr: redisAddr(t)}, time.Second)
		defer s.Close()

		job := NewJob("https://acme.com")
		if err := s.Put(ctx, job); err != nil {
			t.Fatalf("failed to put job: %v", err)
		}

		ttl, err := s.client.TTL(ctx, jobKey(job.ID)).Result()
		if err != nil {
			t.Fatalf("failed to read ttl: %v", err)
		}
		if ttl <= 0 || ttl > time.Second {
			t.Errorf("expected ttl in (0, 1s], got %v", ttl)
		}

		time.Sleep(1500 * time.Millisecond)
		if _, err := s.Get(ctx, job.ID); !errors.Is(err, ErrJobNotFound) {
			t.Errorf("expected ErrJobNotFound after expiry, got %v", err)
		}
	})
}

func TestJobKey(t *testing.T) {
	t.Parallel()

	if got := jobKey("abc"); got != "contact-extractor:job:abc" {
		t.Errorf("expected contact-extractor:job:abc, got %q", got)
	}
}
