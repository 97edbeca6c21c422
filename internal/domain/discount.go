package domain

import (
	"errors"
	"time"
)

// DiscountStatus enumerates the discount lifecycle.
type DiscountStatus string

const (
	DiscountStatusActive    DiscountStatus = "active"
	DiscountStatusCancelled DiscountStatus = "cancelled"
)

// Discount is an administrative deduction tied to a staff member.
// CancellationReason is set exactly when Status is cancelled.
type Discount struct {
	ID                 string         `json:"id"`
	Date               time.Time      `json:"date"`
	Amount             float64        `json:"amount"`
	Reason             string         `json:"reason"`
	Status             DiscountStatus `json:"status"`
	CancellationReason *string        `json:"cancellation_reason,omitempty"`
}

// Validate checks the status/cancellation-reason pairing.
func (d Discount) Validate() error {
	switch d.Status {
	case DiscountStatusActive:
		if d.CancellationReason != nil {
			return errors.New("active discount carries a cancellation reason")
		}
	case DiscountStatusCancelled:
		if d.CancellationReason == nil || *d.CancellationReason == "" {
			return errors.New("cancelled discount missing a cancellation reason")
		}
	default:
		return errors.New("unknown discount status")
	}
	return nil
}
