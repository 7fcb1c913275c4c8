package revisionrequest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("revision request not found")
	ErrEmptyMessage    = errors.New("empty revision message")
	ErrEmptyAuthorName = errors.New("empty author name")
)

const MaxMessageLength = 4096

// RevisionRequest is a counterparty's change request against a shared
// contract. Created only together with the contract's transition to
// revision_requested.
type RevisionRequest struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	AuthorName  string
	AuthorEmail string // optional, the unauthenticated client may not leave one
	Message     string
	Resolved    bool
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}

func New(contractID uuid.UUID, authorName, authorEmail, message string) (*RevisionRequest, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if authorName == "" {
		return nil, ErrEmptyAuthorName
	}
	if len(message) > MaxMessageLength {
		message = message[:MaxMessageLength]
	}
	return &RevisionRequest{
		ID:          uuid.New(),
		ContractID:  contractID,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Message:     message,
		CreatedAt:   time.Now(),
	}, nil
}

type Repository interface {
	Insert(ctx context.Context, req *RevisionRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*RevisionRequest, error)
	// Resolve marks the request handled. Resolving an already resolved
	// request is a no-op.
	Resolve(ctx context.Context, id uuid.UUID) error
	// ListUnresolvedByOwner returns open requests across all of the owner's
	// contracts, newest first.
	ListUnresolvedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*RevisionRequest, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*RevisionRequest, error)
}
