package roster

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/staff-roster/internal/domain"
)

// slowStore blocks saves until released so tests can pile up snapshots
// behind an in-flight write.
type slowStore struct {
	mu      sync.Mutex
	block   chan struct{}
	saves   [][]*domain.StaffMember
	saveErr error
}

func newSlowStore() *slowStore {
	return &slowStore{block: make(chan struct{})}
}

func (s *slowStore) Load(ctx context.Context) ([]*domain.StaffMember, error) {
	return nil, nil
}

func (s *slowStore) Save(ctx context.Context, roster []*domain.StaffMember) error {
	<-s.block
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, roster)
	return nil
}

func (s *slowStore) recorded() [][]*domain.StaffMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]*domain.StaffMember, len(s.saves))
	copy(out, s.saves)
	return out
}

func member(code string) *domain.StaffMember {
	return &domain.StaffMember{ID: code, Code: code}
}

func TestSaveQueuePersistsLatestSnapshot(t *testing.T) {
	st := newSlowStore()
	q := NewSaveQueue(st, nil, nil, time.Second)

	q.Enqueue([]*domain.StaffMember{member("A1")})
	q.Enqueue([]*domain.StaffMember{member("A1"), member("B1")})
	q.Enqueue([]*domain.StaffMember{member("A1"), member("B1"), member("C1")})
	close(st.block)
	q.Close()

	saves := st.recorded()
	if len(saves) == 0 {
		t.Fatal("expected at least one save")
	}
	last := saves[len(saves)-1]
	if len(last) != 3 {
		t.Fatalf("expected latest snapshot (3 members), got %d", len(last))
	}
}

func TestSaveQueueCoalescesWhileSaveInFlight(t *testing.T) {
	st := newSlowStore()
	q := NewSaveQueue(st, nil, nil, time.Second)

	q.Enqueue([]*domain.StaffMember{member("A1")})
	// while the first save is blocked, later snapshots replace each other
	time.Sleep(10 * time.Millisecond)
	q.Enqueue([]*domain.StaffMember{member("A1"), member("B1")})
	q.Enqueue([]*domain.StaffMember{member("C1")})
	close(st.block)
	q.Close()

	saves := st.recorded()
	if len(saves) > 2 {
		t.Fatalf("expected coalesced saves, got %d", len(saves))
	}
	last := saves[len(saves)-1]
	if len(last) != 1 || last[0].Code != "C1" {
		t.Fatalf("expected final snapshot, got %+v", last)
	}
}

func TestSaveQueueSurvivesSaveFailures(t *testing.T) {
	st := newSlowStore()
	st.saveErr = errors.New("write refused")
	close(st.block)
	q := NewSaveQueue(st, nil, nil, time.Second)

	q.Enqueue([]*domain.StaffMember{member("A1")})
	q.Close()

	// failure is logged, not surfaced; a later queue keeps working
	st.saveErr = nil
	q2 := NewSaveQueue(st, nil, nil, time.Second)
	q2.Enqueue([]*domain.StaffMember{member("B1")})
	q2.Close()

	saves := st.recorded()
	if len(saves) != 1 || saves[0][0].Code != "B1" {
		t.Fatalf("unexpected saves: %d", len(saves))
	}
}

func TestSaveQueueIgnoresEnqueueAfterClose(t *testing.T) {
	st := newSlowStore()
	close(st.block)
	q := NewSaveQueue(st, nil, nil, time.Second)
	q.Close()

	q.Enqueue([]*domain.StaffMember{member("A1")})
	time.Sleep(10 * time.Millisecond)

	if len(st.recorded()) != 0 {
		t.Fatal("save after close")
	}
}
