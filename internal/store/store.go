// Package store defines the roster persistence port and its drivers. The
// roster is always moved as a whole: Load returns every member, Save
// replaces the stored set. Drivers only need last-write-wins semantics;
// write ordering is the caller's concern.
package store

import (
	"context"
	"errors"

	"github.com/spec-kit/staff-roster/internal/domain"
)

// ErrNotFound reports that no roster has been persisted yet.
var ErrNotFound = errors.New("roster not found")

// ErrMalformed reports that the persisted payload does not decode to a
// member list. Callers treat this as an empty roster.
var ErrMalformed = errors.New("persisted roster is malformed")

// RosterStore persists the full staff roster.
type RosterStore interface {
	Load(ctx context.Context) ([]*domain.StaffMember, error)
	Save(ctx context.Context, roster []*domain.StaffMember) error
}
