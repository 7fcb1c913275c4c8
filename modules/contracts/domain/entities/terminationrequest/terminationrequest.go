package terminationrequest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("termination request not found")
	ErrEmptyReason     = errors.New("empty termination reason")
	ErrInvalidType     = errors.New("invalid termination request type")
	ErrEmptyAuthorName = errors.New("empty author name")
)

// RequestType distinguishes what the counterparty wants torn up: the whole
// document or a pending revision cycle.
type RequestType string

const (
	TypeDocument RequestType = "document"
	TypeRevision RequestType = "revision"
)

func (t RequestType) IsValid() bool {
	return t == TypeDocument || t == TypeRevision
}

// TerminationRequest is advisory: it records the counterparty's intent but
// never changes contract status on its own. The owner acts on it by
// cancelling (or editing) the contract.
type TerminationRequest struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	Type        RequestType
	AuthorName  string
	AuthorEmail string // optional
	Reason      string
	Resolved    bool
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}

func New(contractID uuid.UUID, reqType RequestType, authorName, authorEmail, reason string) (*TerminationRequest, error) {
	if !reqType.IsValid() {
		return nil, ErrInvalidType
	}
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if authorName == "" {
		return nil, ErrEmptyAuthorName
	}
	return &TerminationRequest{
		ID:          uuid.New(),
		ContractID:  contractID,
		Type:        reqType,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}, nil
}

type Repository interface {
	Insert(ctx context.Context, req *TerminationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*TerminationRequest, error)
	Resolve(ctx context.Context, id uuid.UUID) error
	ListUnresolvedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*TerminationRequest, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*TerminationRequest, error)
}
