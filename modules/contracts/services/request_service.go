package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/revisionrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/terminationrequest"
)

// RequestService is the owner's inbox for counterparty requests.
type RequestService struct {
	contracts    contract.Repository
	revisions    revisionrequest.Repository
	terminations terminationrequest.Repository
}

func NewRequestService(
	contracts contract.Repository,
	revisions revisionrequest.Repository,
	terminations terminationrequest.Repository,
) *RequestService {
	return &RequestService{
		contracts:    contracts,
		revisions:    revisions,
		terminations: terminations,
	}
}

func (s *RequestService) ListUnresolvedRevisions(ctx context.Context, ownerID uuid.UUID) ([]*revisionrequest.RevisionRequest, error) {
	return s.revisions.ListUnresolvedByOwner(ctx, ownerID)
}

func (s *RequestService) ListUnresolvedTerminations(ctx context.Context, ownerID uuid.UUID) ([]*terminationrequest.TerminationRequest, error) {
	return s.terminations.ListUnresolvedByOwner(ctx, ownerID)
}

func (s *RequestService) ListRevisionsByContract(ctx context.Context, ownerID, contractID uuid.UUID) ([]*revisionrequest.RevisionRequest, error) {
	if err := s.checkOwnership(ctx, ownerID, contractID); err != nil {
		return nil, err
	}
	return s.revisions.ListByContract(ctx, contractID)
}

func (s *RequestService) ListTerminationsByContract(ctx context.Context, ownerID, contractID uuid.UUID) ([]*terminationrequest.TerminationRequest, error) {
	if err := s.checkOwnership(ctx, ownerID, contractID); err != nil {
		return nil, err
	}
	return s.terminations.ListByContract(ctx, contractID)
}

// ResolveRevision marks a revision request handled. Resolving twice is a
// no-op, not an error.
func (s *RequestService) ResolveRevision(ctx context.Context, ownerID, requestID uuid.UUID) error {
	req, err := s.revisions.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(ctx, ownerID, req.ContractID); err != nil {
		return revisionrequest.ErrNotFound
	}
	return s.revisions.Resolve(ctx, requestID)
}

func (s *RequestService) ResolveTermination(ctx context.Context, ownerID, requestID uuid.UUID) error {
	req, err := s.terminations.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(ctx, ownerID, req.ContractID); err != nil {
		return terminationrequest.ErrNotFound
	}
	return s.terminations.Resolve(ctx, requestID)
}

func (s *RequestService) checkOwnership(ctx context.Context, ownerID, contractID uuid.UUID) error {
	c, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return err
	}
	if c.OwnerID() != ownerID {
		return contract.ErrNotFound
	}
	return nil
}
