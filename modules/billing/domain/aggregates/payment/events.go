package payment

import "github.com/google/uuid"

// PaidEvent fires once per order when payment is confirmed.
type PaidEvent struct {
	OrderID   uuid.UUID
	UserID    uuid.UUID
	Plan      string
	PaymentID string
}
