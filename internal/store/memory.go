package store

import (
	"context"
	"sync"

	"github.com/spec-kit/staff-roster/internal/domain"
)

// MemoryStore is an in-process driver used by tests and dev setups
// without a backing database.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []*domain.StaffMember
	saved    bool
}

// NewMemoryStore instantiates the in-memory driver.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]*domain.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, ErrNotFound
	}
	return cloneRoster(s.snapshot), nil
}

func (s *MemoryStore) Save(ctx context.Context, roster []*domain.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = cloneRoster(roster)
	s.saved = true
	return nil
}

func cloneRoster(roster []*domain.StaffMember) []*domain.StaffMember {
	out := make([]*domain.StaffMember, 0, len(roster))
	for _, member := range roster {
		out = append(out, member.Clone())
	}
	return out
}
