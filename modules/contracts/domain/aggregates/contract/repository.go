package contract

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Contract, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]Contract, error)
	Create(ctx context.Context, c Contract) (Contract, error)
	Update(ctx context.Context, c Contract) (Contract, error)
	// UpdateStatus moves the contract from expected to next in one statement.
	// Returns ErrConflict when the stored status no longer matches expected,
	// ErrNotFound when the row does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next Status) error
	// UpdateStatusAndKey is UpdateStatus plus a secret key swap, so share
	// and re-share invalidate the previous link atomically.
	UpdateStatusAndKey(ctx context.Context, id uuid.UUID, expected, next Status, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
