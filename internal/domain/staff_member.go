package domain

import "time"

// StaffMember is the roster aggregate: profile fields plus the member's
// sales and discount history. The roster is always loaded and saved as a
// whole, so sales and discounts live inside the member rather than behind
// their own repositories.
type StaffMember struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Role      string     `json:"role"`
	Sales     []Sale     `json:"sales"`
	Discounts []Discount `json:"discounts"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Clone returns a deep copy. Mutations on the roster work on a copy so
// previously handed-out pointers keep observing the old state.
func (m *StaffMember) Clone() *StaffMember {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Sales = make([]Sale, len(m.Sales))
	copy(cp.Sales, m.Sales)
	cp.Discounts = make([]Discount, len(m.Discounts))
	copy(cp.Discounts, m.Discounts)
	return &cp
}
