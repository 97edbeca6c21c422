package domain

import "time"

// Sale records a single transaction attributed to a staff member. The
// commission flag is mutable independently of the rest of the record.
type Sale struct {
	ID               string     `json:"id"`
	Amount           float64    `json:"amount"`
	SoldAt           time.Time  `json:"sold_at"`
	CommissionPaid   bool       `json:"commission_paid"`
	CommissionPaidAt *time.Time `json:"commission_paid_at,omitempty"`
}
