package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("payment order not found")
	ErrAlreadyPaid       = errors.New("payment order already paid")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrUnknownPlan       = errors.New("unknown plan")
)

type Status string

const (
	StatusCreated Status = "created"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Order tracks one checkout attempt against the payment gateway.
type Order struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	GatewayOrderID string
	Plan           string
	Amount         int64 // minor units
	Currency       string
	Status         Status
	PaymentID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewOrder(userID uuid.UUID, gatewayOrderID, plan string, amount int64, currency string) *Order {
	now := time.Now()
	return &Order{
		ID:             uuid.New(),
		UserID:         userID,
		GatewayOrderID: gatewayOrderID,
		Plan:           plan,
		Amount:         amount,
		Currency:       currency,
		Status:         StatusCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type Repository interface {
	Insert(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	// MarkPaid transitions created -> paid. Returns ErrAlreadyPaid when the
	// order is already settled, so webhook retries stay idempotent upstream.
	MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
}
