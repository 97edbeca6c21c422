package dto

import (
	"time"

	"github.com/spec-kit/staff-roster/internal/domain"
)

// MemberRequest carries form-submitted profile fields for add and edit.
// The form never submits id, sales or discounts.
type MemberRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// MemberResponse is the list-view shape of a roster member.
type MemberResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
	SalesCount     int       `json:"sales_count"`
	DiscountsCount int       `json:"discounts_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SaleResponse is the history-view shape of a sale.
type SaleResponse struct {
	ID               string     `json:"id"`
	Amount           float64    `json:"amount"`
	SoldAt           time.Time  `json:"sold_at"`
	CommissionPaid   bool       `json:"commission_paid"`
	CommissionPaidAt *time.Time `json:"commission_paid_at,omitempty"`
}

// DiscountResponse is the history-view shape of a discount.
type DiscountResponse struct {
	ID                 string                `json:"id"`
	Date               time.Time             `json:"date"`
	Amount             float64               `json:"amount"`
	Reason             string                `json:"reason"`
	Status             domain.DiscountStatus `json:"status"`
	CancellationReason *string               `json:"cancellation_reason,omitempty"`
}

// HistoryResponse bundles one member's sales and discounts.
type HistoryResponse struct {
	MemberID  string             `json:"member_id"`
	Sales     []SaleResponse     `json:"sales"`
	Discounts []DiscountResponse `json:"discounts"`
}

// DiscountCreateRequest is the discount-add confirmation payload.
type DiscountCreateRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// DiscountCancelRequest is the discount-cancel confirmation payload.
type DiscountCancelRequest struct {
	Reason string `json:"reason"`
}

// CommissionRequest toggles the commission flag on a sale.
type CommissionRequest struct {
	Paid bool `json:"paid"`
}

// SaleCreateRequest records a back-office sale correction.
type SaleCreateRequest struct {
	Amount float64    `json:"amount"`
	SoldAt *time.Time `json:"sold_at,omitempty"`
}

// PasswordConfirmRequest is the confirmation payload for destructive
// operations (deletion, history clearing).
type PasswordConfirmRequest struct {
	Password string `json:"password"`
}

// SelectionOpenRequest opens a pending-action selection.
type SelectionOpenRequest struct {
	MemberID   string `json:"member_id"`
	DiscountID string `json:"discount_id,omitempty"`
}
