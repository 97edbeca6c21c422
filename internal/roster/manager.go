// Package roster holds the authoritative in-memory staff roster and the
// state transitions driven by the management screen: member CRUD, discount
// add/cancel, commission toggles, and history clearing. Every mutation
// derives a new roster slice replacing exactly the affected member, so
// untouched members stay referentially unchanged for change detection.
package roster

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-roster/internal/domain"
	"github.com/spec-kit/staff-roster/internal/events"
	"github.com/spec-kit/staff-roster/internal/store"
	apperrors "github.com/spec-kit/staff-roster/pkg/util"
)

// PasswordValidator gates destructive operations.
type PasswordValidator interface {
	Validate(password string) bool
}

// Manager owns the roster and coordinates persistence and events.
type Manager struct {
	mu      sync.RWMutex
	members []*domain.StaffMember

	store      store.RosterStore
	saves      *SaveQueue
	gate       PasswordValidator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles collaborators for the manager.
type Dependencies struct {
	Store      store.RosterStore
	Saves      *SaveQueue
	Gate       PasswordValidator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// MemberInput carries the form-submitted profile fields. ID, sales and
// discounts are never supplied by the form.
type MemberInput struct {
	Name  string
	Code  string
	Email string
	Phone string
	Role  string
}

// NewManager constructs the manager with an empty roster.
func NewManager(deps Dependencies) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:      deps.Store,
		saves:      deps.Saves,
		gate:       deps.Gate,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Load fetches the persisted roster. Any failure falls back to an empty
// roster: a missing snapshot silently, everything else with a log. Local
// state stays authoritative either way.
func (m *Manager) Load(ctx context.Context) {
	roster, err := m.store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		roster = nil
	case errors.Is(err, store.ErrMalformed):
		m.logger.Warn("persisted roster is malformed; starting empty", zap.Error(err))
		roster = nil
	default:
		m.logger.Error("failed to load roster; starting empty", zap.Error(err))
		roster = nil
	}

	m.mu.Lock()
	m.members = roster
	m.mu.Unlock()
}

// Members returns the current roster snapshot.
func (m *Manager) Members() []*domain.StaffMember {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.StaffMember, len(m.members))
	copy(out, m.members)
	return out
}

// MemberByID returns the member with the given id.
func (m *Manager) MemberByID(id string) (*domain.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.ID == id {
			return member, nil
		}
	}
	return nil, apperrors.NewNotFound("staff member", map[string]any{"id": id})
}

// UsedCodes returns every staff code in play, excluding the given member.
// The form uses this set for client-side uniqueness validation.
func (m *Manager) UsedCodes(excludeID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	codes := make([]string, 0, len(m.members))
	for _, member := range m.members {
		if member.ID == excludeID {
			continue
		}
		codes = append(codes, member.Code)
	}
	return codes
}

// AddMember creates a roster member from form input. The id is assigned
// here; sales and discounts start empty.
func (m *Manager) AddMember(ctx context.Context, input MemberInput) (*domain.StaffMember, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.StaffMember{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Code:      strings.TrimSpace(input.Code),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Role:      strings.TrimSpace(input.Role),
		Sales:     []domain.Sale{},
		Discounts: []domain.Discount{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	if taken(m.members, member.Code, "") {
		m.mu.Unlock()
		return nil, apperrors.NewConflict("staff code already in use", map[string]any{"code": member.Code})
	}
	next := make([]*domain.StaffMember, len(m.members), len(m.members)+1)
	copy(next, m.members)
	m.members = append(next, member)
	snapshot := m.members
	m.mu.Unlock()

	m.enqueueSave(snapshot)
	m.publish(ctx, events.EventMemberAdded, member.ID, events.MemberPayload{
		Name: member.Name,
		Code: member.Code,
		Role: member.Role,
	})
	return member, nil
}

// UpdateMember merges form input into the matching member. ID, sales and
// discounts are preserved; every other member keeps its original pointer.
func (m *Manager) UpdateMember(ctx context.Context, id string, input MemberInput) (*domain.StaffMember, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *domain.StaffMember
	m.mu.Lock()
	if taken(m.members, strings.TrimSpace(input.Code), id) {
		m.mu.Unlock()
		return nil, apperrors.NewConflict("staff code already in use", map[string]any{"code": input.Code})
	}
	next, found := replace(m.members, id, func(member *domain.StaffMember) *domain.StaffMember {
		cp := member.Clone()
		cp.Name = strings.TrimSpace(input.Name)
		cp.Code = strings.TrimSpace(input.Code)
		cp.Email = strings.TrimSpace(input.Email)
		cp.Phone = strings.TrimSpace(input.Phone)
		cp.Role = strings.TrimSpace(input.Role)
		cp.UpdatedAt = time.Now().UTC()
		updated = cp
		return cp
	})
	if !found {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("staff member", map[string]any{"id": id})
	}
	m.members = next
	snapshot := m.members
	m.mu.Unlock()

	m.enqueueSave(snapshot)
	m.publish(ctx, events.EventMemberUpdated, id, events.MemberPayload{
		Name: updated.Name,
		Code: updated.Code,
		Role: updated.Role,
	})
	return updated, nil
}

// DeleteMember removes a member after validating the admin password. The
// shrunken roster is persisted synchronously; if that fails the local
// state is rolled back and the failure surfaced to the caller.
func (m *Manager) DeleteMember(ctx context.Context, id, password string) error {
	if !m.gate.Validate(password) {
		return apperrors.NewInvalidPassword()
	}

	m.mu.Lock()
	prev := m.members
	next := make([]*domain.StaffMember, 0, len(prev))
	found := false
	for _, member := range prev {
		if member.ID == id {
			found = true
			continue
		}
		next = append(next, member)
	}
	if !found {
		m.mu.Unlock()
		return apperrors.NewNotFound("staff member", map[string]any{"id": id})
	}
	m.members = next
	m.mu.Unlock()

	if err := m.store.Save(ctx, next); err != nil {
		m.mu.Lock()
		m.members = prev
		m.mu.Unlock()
		m.logger.Error("failed to persist roster after deletion; rolled back",
			zap.String("member_id", id), zap.Error(err))
		return apperrors.NewStorageFailure(err)
	}

	m.publish(ctx, events.EventMemberDeleted, id, nil)
	return nil
}

// ClearHistory resets a member's sales and discounts to empty. Gated by
// the admin password like deletion, and surfacing the same error when the
// password is wrong.
func (m *Manager) ClearHistory(ctx context.Context, id, password string) (*domain.StaffMember, error) {
	if !m.gate.Validate(password) {
		return nil, apperrors.NewInvalidPassword()
	}

	var (
		cleared *domain.StaffMember
		payload events.HistoryClearedPayload
	)
	m.mu.Lock()
	next, found := replace(m.members, id, func(member *domain.StaffMember) *domain.StaffMember {
		payload = events.HistoryClearedPayload{
			SalesDropped:     len(member.Sales),
			DiscountsDropped: len(member.Discounts),
		}
		cp := member.Clone()
		cp.Sales = []domain.Sale{}
		cp.Discounts = []domain.Discount{}
		cp.UpdatedAt = time.Now().UTC()
		cleared = cp
		return cp
	})
	if !found {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("staff member", map[string]any{"id": id})
	}
	m.members = next
	snapshot := m.members
	m.mu.Unlock()

	m.enqueueSave(snapshot)
	m.publish(ctx, events.EventHistoryCleared, id, payload)
	return cleared, nil
}

// AddDiscount appends an active discount to the member. The discount id
// and timestamp are assigned here, not by the caller.
func (m *Manager) AddDiscount(ctx context.Context, memberID string, amount float64, reason string) (*domain.Discount, error) {
	reason = strings.TrimSpace(reason)
	if amount <= 0 || reason == "" {
		return nil, apperrors.NewValidationError("discount requires a positive amount and a reason", nil)
	}

	discount := domain.Discount{
		ID:     uuid.NewString(),
		Date:   time.Now().UTC(),
		Amount: amount,
		Reason: reason,
		Status: domain.DiscountStatusActive,
	}

	m.mu.Lock()
	next, found := replace(m.members, memberID, func(member *domain.StaffMember) *domain.StaffMember {
		cp := member.Clone()
		cp.Discounts = append(cp.Discounts, discount)
		cp.UpdatedAt = discount.Date
		return cp
	})
	if !found {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("staff member", map[string]any{"id": memberID})
	}
	m.members = next
	snapshot := m.members
	m.mu.Unlock()

	m.enqueueSave(snapshot)
	m.publish(ctx, events.EventDiscountAdded, memberID, events.DiscountAddedPayload{
		DiscountID: discount.ID,
		Amount:     discount.Amount,
		Reason:     discount.Reason,
	})
	return &discount, nil
}

// CancelDiscount flips one of the member's discounts to cancelled with the
// given reason. Date, amount and original reason are left untouched.
func (m *Manager) CancelDiscount(ctx context.Context, memberID, discountID, reason string) (*domain.Discount, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("cancellation requires a reason", nil)
	}

	var cancelled *domain.Discount
	m.mu.Lock()
	next, found := replace(m.members, memberID, func(member *domain.StaffMember) *domain.StaffMember {
		cp := member.Clone()
		for i := range cp.Discounts {
			if cp.Discounts[i].ID != discountID {
				continue
			}
			cp.Discounts[i].Status = domain.DiscountStatusCancelled
			cp.Discounts[i].CancellationReason = &reason
			cancelled = &cp.Discounts[i]
			break
		}
		return cp
	})
	if !found {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("staff member", map[string]any{"id": memberID})
	}
	if cancelled == nil {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("discount", map[string]any{"id": discountID})
	}
	m.members = next
	snapshot := m.members
	m.mu.Unlock()

	m.enqueueSave(snapshot)
	m.publish(ctx, events.EventDiscountCancelled, memberID, events.DiscountCancelledPayload{
		DiscountID:         discountID,
		CancellationReason: reason,
	})
	return cancelled, nil
}

// SetCommissionPaid toggles the commission flag on one of the member's
// sales.
func (m *Manager) SetCommissionPaid(ctx context.Context, memberID, saleID string, paid bool) (*domain.Sale, error) {
	var toggled *domain.Sale
	m.mu.Lock()
	next, found := replace(m.members, memberID, func(member *domain.StaffMember) *domain.StaffMember {
		cp := member.Clone()
		for i := range cp.Sales {
			if cp.Sales[i].ID != saleID {
				continue
			}
			cp.Sales[i].CommissionPaid = paid
			if paid {
				now := time.Now().UTC()
				cp.Sales[i].CommissionPaidAt = &now
			} else {
				cp.Sales[i].CommissionPaidAt = nil
			}
			toggled = &cp.Sales[i]
			break
		}
		return cp
	})
	if !found {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("staff member", map[string]any{"id": memberID})
	}
	if toggled == nil {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("sale", map[string]any{"id": saleID})
	}
	m.members = next
	snapshot := m.members
	m.mu.Unlock()

	m.enqueueSave(snapshot)
	m.publish(ctx, events.EventCommissionToggled, memberID, events.CommissionToggledPayload{
		SaleID: saleID,
		Paid:   paid,
	})
	return toggled, nil
}

// RecordSale appends a sale to the member. Sales normally arrive from the
// checkout flow; the roster API exposes this for back-office corrections.
func (m *Manager) RecordSale(ctx context.Context, memberID string, amount float64, soldAt time.Time) (*domain.Sale, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("sale requires a positive amount", nil)
	}
	if soldAt.IsZero() {
		soldAt = time.Now().UTC()
	}

	sale := domain.Sale{
		ID:     uuid.NewString(),
		Amount: amount,
		SoldAt: soldAt,
	}

	m.mu.Lock()
	next, found := replace(m.members, memberID, func(member *domain.StaffMember) *domain.StaffMember {
		cp := member.Clone()
		cp.Sales = append(cp.Sales, sale)
		cp.UpdatedAt = time.Now().UTC()
		return cp
	})
	if !found {
		m.mu.Unlock()
		return nil, apperrors.NewNotFound("staff member", map[string]any{"id": memberID})
	}
	m.members = next
	snapshot := m.members
	m.mu.Unlock()

	m.enqueueSave(snapshot)
	return &sale, nil
}

// enqueueSave hands the snapshot to the background save queue. Empty
// rosters are not persisted by this path; only explicit actions like
// deletion write an empty set.
func (m *Manager) enqueueSave(snapshot []*domain.StaffMember) {
	if len(snapshot) == 0 || m.saves == nil {
		return
	}
	m.saves.Enqueue(snapshot)
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, memberID string, payload interface{}) {
	if m.dispatcher == nil {
		return
	}
	_ = m.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MemberID:  memberID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// replace derives a new roster slice with the matching member swapped for
// the result of mutate. Untouched members keep their original pointers.
func replace(members []*domain.StaffMember, id string, mutate func(*domain.StaffMember) *domain.StaffMember) ([]*domain.StaffMember, bool) {
	for i, member := range members {
		if member.ID != id {
			continue
		}
		next := make([]*domain.StaffMember, len(members))
		copy(next, members)
		next[i] = mutate(member)
		return next, true
	}
	return members, false
}

func taken(members []*domain.StaffMember, code, excludeID string) bool {
	for _, member := range members {
		if member.ID != excludeID && member.Code == code {
			return true
		}
	}
	return false
}

func validateInput(input MemberInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Code) == "" {
		return apperrors.NewValidationError("name and code are required", nil)
	}
	return nil
}
