package roster

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-roster/internal/domain"
	"github.com/spec-kit/staff-roster/internal/observability"
	"github.com/spec-kit/staff-roster/internal/store"
)

// SaveQueue serializes roster persistence. Snapshots enqueued while a save
// is in flight coalesce to the latest one, so rapid successive edits never
// race each other on the wire and the store only needs last-write-wins.
// Failures are logged, not surfaced; local state stays authoritative.
type SaveQueue struct {
	store   store.RosterStore
	logger  *zap.Logger
	metrics *observability.Metrics
	timeout time.Duration

	mu      sync.Mutex
	latest  []*domain.StaffMember
	dirty   bool
	closed  bool
	kick    chan struct{}
	stopped chan struct{}
}

// NewSaveQueue starts the background writer. metrics may be nil.
func NewSaveQueue(st store.RosterStore, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) *SaveQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	q := &SaveQueue{
		store:   st,
		logger:  logger,
		metrics: metrics,
		timeout: timeout,
		kick:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue schedules the snapshot for persistence, replacing any snapshot
// still waiting to be written.
func (q *SaveQueue) Enqueue(snapshot []*domain.StaffMember) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.latest = snapshot
	q.dirty = true
	q.mu.Unlock()

	select {
	case q.kick <- struct{}{}:
	default:
	}
}

// Close flushes any pending snapshot and stops the writer.
func (q *SaveQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.kick <- struct{}{}:
	default:
	}
	<-q.stopped
}

func (q *SaveQueue) run() {
	defer close(q.stopped)
	for {
		<-q.kick

		for {
			q.mu.Lock()
			snapshot, dirty := q.latest, q.dirty
			q.dirty = false
			closed := q.closed
			q.mu.Unlock()

			if !dirty {
				if closed {
					return
				}
				break
			}
			q.save(snapshot)
		}
	}
}

func (q *SaveQueue) save(snapshot []*domain.StaffMember) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	if err := q.store.Save(ctx, snapshot); err != nil {
		q.metrics.RecordSaveFailure()
		q.logger.Error("background roster save failed",
			zap.Int("members", len(snapshot)), zap.Error(err))
		return
	}
	q.logger.Debug("roster saved", zap.Int("members", len(snapshot)))
}
