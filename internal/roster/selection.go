package roster

import "sync"

// SelectionKind enumerates the pending-action selections of the
// management screen. Each kind backs one modal or panel.
type SelectionKind string

const (
	SelectionEditing            SelectionKind = "editing"
	SelectionViewingHistory     SelectionKind = "viewing_history"
	SelectionAddingDiscount     SelectionKind = "adding_discount"
	SelectionCancellingDiscount SelectionKind = "cancelling_discount"
	SelectionDeleting           SelectionKind = "deleting"
	SelectionClearingHistory    SelectionKind = "clearing_history"
)

// Valid reports whether the kind names a known selection.
func (k SelectionKind) Valid() bool {
	switch k {
	case SelectionEditing, SelectionViewingHistory, SelectionAddingDiscount,
		SelectionCancellingDiscount, SelectionDeleting, SelectionClearingHistory:
		return true
	}
	return false
}

// Selection records the target of a pending action plus any transient
// error shown inline in its modal.
type Selection struct {
	MemberID   string `json:"member_id"`
	DiscountID string `json:"discount_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SelectionTracker holds the open selections for one operator session.
// Opening one kind does not close the others; closing a kind clears both
// the selection and its transient error.
type SelectionTracker struct {
	mu     sync.RWMutex
	active map[SelectionKind]*Selection
}

// NewSelectionTracker creates an empty tracker.
func NewSelectionTracker() *SelectionTracker {
	return &SelectionTracker{active: make(map[SelectionKind]*Selection)}
}

// Open sets the selection for a kind, replacing any previous one and
// dropping its stale error.
func (t *SelectionTracker) Open(kind SelectionKind, memberID, discountID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active[kind] = &Selection{MemberID: memberID, DiscountID: discountID}
}

// Get returns the selection for a kind, if set.
func (t *SelectionTracker) Get(kind SelectionKind) (Selection, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sel, ok := t.active[kind]
	if !ok {
		return Selection{}, false
	}
	return *sel, true
}

// SetError attaches a transient error to an open selection. A no-op when
// the selection is not set.
func (t *SelectionTracker) SetError(kind SelectionKind, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sel, ok := t.active[kind]; ok {
		sel.Error = message
	}
}

// Close clears the selection and any error attached to it.
func (t *SelectionTracker) Close(kind SelectionKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, kind)
}

// Snapshot returns all open selections.
func (t *SelectionTracker) Snapshot() map[SelectionKind]Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[SelectionKind]Selection, len(t.active))
	for kind, sel := range t.active {
		out[kind] = *sel
	}
	return out
}

// SelectionRegistry hands out one tracker per operator session.
type SelectionRegistry struct {
	mu       sync.Mutex
	trackers map[string]*SelectionTracker
}

// NewSelectionRegistry creates an empty registry.
func NewSelectionRegistry() *SelectionRegistry {
	return &SelectionRegistry{trackers: make(map[string]*SelectionTracker)}
}

// ForSession returns the tracker for a session key, creating it on first
// use.
func (r *SelectionRegistry) ForSession(key string) *SelectionTracker {
	r.mu.Lock()
	defer r.mu.Unlock()
	tracker, ok := r.trackers[key]
	if !ok {
		tracker = NewSelectionTracker()
		r.trackers[key] = tracker
	}
	return tracker
}
