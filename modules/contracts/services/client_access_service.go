package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/revisionrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/terminationrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/eventbus"
)

// ClientAccessService serves the unauthenticated counterparty. Every entry
// point authenticates by (contract id, secret key) and fails with the same
// ErrAccessDenied no matter what went wrong.
type ClientAccessService struct {
	contracts    contract.Repository
	revisions    revisionrequest.Repository
	terminations terminationrequest.Repository
	publisher    eventbus.EventBus
}

func NewClientAccessService(
	contracts contract.Repository,
	revisions revisionrequest.Repository,
	terminations terminationrequest.Repository,
	publisher eventbus.EventBus,
) *ClientAccessService {
	return &ClientAccessService{
		contracts:    contracts,
		revisions:    revisions,
		terminations: terminations,
		publisher:    publisher,
	}
}

// Access returns the contract when the submitted key matches its current
// secret key. Unknown ids, stale keys and draft documents all collapse into
// ErrAccessDenied so callers cannot enumerate which one it was. Signed and cancelled
// contracts stay viewable with a valid key; lifecycle actions on them fail
// with ErrInvalidTransition instead, since a matching key already proves the
// document exists.
func (s *ClientAccessService) Access(ctx context.Context, contractID uuid.UUID, key string) (contract.Contract, error) {
	c, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, contract.ErrAccessDenied
	}
	stored := c.SecretKey()
	if stored == "" || key == "" {
		return nil, contract.ErrAccessDenied
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(key)) != 1 {
		return nil, contract.ErrAccessDenied
	}
	if c.Status() == contract.StatusDraft {
		return nil, contract.ErrAccessDenied
	}
	return c, nil
}

// Sign records the counterparty's acceptance.
func (s *ClientAccessService) Sign(ctx context.Context, contractID uuid.UUID, key string) (contract.Contract, error) {
	c, err := s.Access(ctx, contractID, key)
	if err != nil {
		return nil, err
	}
	next, err := contract.NextStatus(c.Status(), contract.TriggerSign)
	if err != nil {
		return nil, err
	}
	if err := s.contracts.UpdateStatus(ctx, contractID, c.Status(), next); err != nil {
		return nil, err
	}
	signed, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(contract.StatusChangedEvent{
		ContractID: contractID,
		From:       c.Status(),
		To:         next,
		Trigger:    contract.TriggerSign,
	})
	s.publisher.Publish(contract.SignedEvent{ContractID: contractID, ClientName: signed.ClientName()})
	return signed, nil
}

// SubmitRevisionRequest stores the change request and flips the contract to
// revision_requested in one transaction. Validation happens before the
// transition so a bad message never moves the status.
func (s *ClientAccessService) SubmitRevisionRequest(ctx context.Context, contractID uuid.UUID, key, authorName, authorEmail, message string) (*revisionrequest.RevisionRequest, error) {
	c, err := s.Access(ctx, contractID, key)
	if err != nil {
		return nil, err
	}
	req, err := revisionrequest.New(contractID, authorName, authorEmail, message)
	if err != nil {
		return nil, err
	}
	next, err := contract.NextStatus(c.Status(), contract.TriggerRequestRevision)
	if err != nil {
		return nil, err
	}

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.contracts.UpdateStatus(txCtx, contractID, c.Status(), next); err != nil {
			return err
		}
		return s.revisions.Insert(txCtx, req)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(contract.StatusChangedEvent{
		ContractID: contractID,
		From:       c.Status(),
		To:         next,
		Trigger:    contract.TriggerRequestRevision,
	})
	return req, nil
}

// SubmitTerminationRequest records the counterparty's intent without touching
// contract status; the owner decides what to do with it.
func (s *ClientAccessService) SubmitTerminationRequest(ctx context.Context, contractID uuid.UUID, key string, reqType terminationrequest.RequestType, authorName, authorEmail, reason string) (*terminationrequest.TerminationRequest, error) {
	c, err := s.Access(ctx, contractID, key)
	if err != nil {
		return nil, err
	}
	if c.Status().IsTerminal() {
		return nil, fmt.Errorf("%w: cannot request termination of a %s contract", contract.ErrInvalidTransition, c.Status())
	}
	req, err := terminationrequest.New(contractID, reqType, authorName, authorEmail, reason)
	if err != nil {
		return nil, err
	}
	if err := s.terminations.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
