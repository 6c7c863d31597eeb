package generation

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps runs in process memory
type InMemoryStore struct {
	runs map[uuid.UUID]*Run
	mu   sync.RWMutex
	now  func() time.Time
}

// NewInMemoryStore creates an empty store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		runs: make(map[uuid.UUID]*Run),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *InMemoryStore) Create(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run %s already exists", run.ID)
	}

	now := s.now()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	copied := *run
	s.runs[run.ID] = &copied
	return nil
}

func (s *InMemoryStore) Update(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.runs[run.ID]
	if !exists {
		return ErrNotFound
	}

	run.CreatedAt = existing.CreatedAt
	run.UpdatedAt = s.now()

	copied := *run
	s.runs[run.ID] = &copied
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, ErrNotFound
	}

	copied := *run
	return &copied, nil
}

func (s *InMemoryStore) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	runs := s.filter(func(*Run) bool { return true })
	slices.Reverse(runs)

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *InMemoryStore) ListByStatus(ctx context.Context, status Status) ([]*Run, error) {
	return s.filter(func(r *Run) bool { return r.Status == status }), nil
}

// filter returns copies of matching runs, oldest first
func (s *InMemoryStore) filter(match func(*Run) bool) []*Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		if match(run) {
			copied := *run
			runs = append(runs, &copied)
		}
	}

	slices.SortFunc(runs, func(a, b *Run) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return runs
}
