package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberAdded       EventType = "member_added"
	EventMemberUpdated     EventType = "member_updated"
	EventMemberDeleted     EventType = "member_deleted"
	EventHistoryCleared    EventType = "history_cleared"
	EventDiscountAdded     EventType = "discount_added"
	EventDiscountCancelled EventType = "discount_cancelled"
	EventCommissionToggled EventType = "commission_toggled"
)

// Event represents a roster change emitted by the manager.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MemberID  string      `json:"member_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberPayload carries the profile fields of an added/updated member.
type MemberPayload struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Role string `json:"role,omitempty"`
}

// DiscountAddedPayload payload.
type DiscountAddedPayload struct {
	DiscountID string  `json:"discount_id"`
	Amount     float64 `json:"amount"`
	Reason     string  `json:"reason"`
}

// DiscountCancelledPayload payload.
type DiscountCancelledPayload struct {
	DiscountID         string `json:"discount_id"`
	CancellationReason string `json:"cancellation_reason"`
}

// CommissionToggledPayload payload.
type CommissionToggledPayload struct {
	SaleID string `json:"sale_id"`
	Paid   bool   `json:"paid"`
}

// HistoryClearedPayload records how much history was dropped.
type HistoryClearedPayload struct {
	SalesDropped     int `json:"sales_dropped"`
	DiscountsDropped int `json:"discounts_dropped"`
}
