package jobstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps jobs in process memory. Expired jobs are dropped when
// read and by Sweep.
type MemoryStore struct {
	mu   sync.Mutex
	jobs map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

type memoryEntry struct {
	job       Job
	expiresAt time.Time
}

// NewMemoryStore returns an empty MemoryStore with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		jobs: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Put implements Store. The job is copied.
func (s *MemoryStore) Put(_ context.Context, job *Job) error {
	if job == nil || job.ID == "" {
		return ErrInvalidJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.ID] = memoryEntry{
		job:       *job,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Get implements Store. The returned job is a copy.
func (s *MemoryStore) Get(_ context.Context, id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.jobs, id)
		return nil, ErrJobNotFound
	}

	job := entry.job
	return &job, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.jobs, id)
	return nil
}

// Sweep implements Sweeper.
func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.jobs {
		if !now.Before(entry.expiresAt) {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored jobs, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Close implements Store. It drops every job.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = make(map[string]memoryEntry)
	return nil
}
