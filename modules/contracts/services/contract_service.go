package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/eventbus"
)

type CreateContractDTO struct {
	Title       string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Payload     contract.Payload
}

type UpdateContractDTO struct {
	Title       string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Payload     contract.Payload
}

// ContractService is the owner-facing side of the contract lifecycle.
type ContractService struct {
	repo      contract.Repository
	reveals   KeyRevealCounter
	publisher eventbus.EventBus
}

func NewContractService(repo contract.Repository, reveals KeyRevealCounter, publisher eventbus.EventBus) *ContractService {
	return &ContractService{repo: repo, reveals: reveals, publisher: publisher}
}

func (s *ContractService) Create(ctx context.Context, ownerID uuid.UUID, dto CreateContractDTO) (contract.Contract, error) {
	opts := []contract.Option{
		contract.WithClient(dto.ClientName, dto.ClientEmail, dto.ClientPhone),
	}
	if dto.Payload.SchemaVersion > 0 {
		opts = append(opts, contract.WithPayload(dto.Payload))
	}
	created, err := s.repo.Create(ctx, contract.New(ownerID, dto.Title, opts...))
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(contract.CreatedEvent{Result: created})
	return created, nil
}

// UpdateDraft edits document content. Allowed only while the counterparty
// is not holding a live signing link: draft and revision_requested.
func (s *ContractService) UpdateDraft(ctx context.Context, ownerID, id uuid.UUID, dto UpdateContractDTO) (contract.Contract, error) {
	existing, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if existing.Status() != contract.StatusDraft && existing.Status() != contract.StatusRevisionRequested {
		return nil, gerrors.Wrapf(contract.ErrInvalidTransition, "cannot edit a %s contract", existing.Status())
	}

	updated := existing.
		SetTitle(dto.Title).
		SetClient(dto.ClientName, dto.ClientEmail, dto.ClientPhone).
		SetPayload(dto.Payload)
	saved, err := s.repo.Update(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(contract.UpdatedEvent{Result: saved})
	return saved, nil
}

// GenerateShareLink moves the contract into sent_for_signature and issues a
// fresh secret key, invalidating any previously issued one. Valid from draft
// and from revision_requested (re-share after edits).
func (s *ContractService) GenerateShareLink(ctx context.Context, ownerID, id uuid.UUID) (contract.Contract, string, error) {
	existing, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, "", err
	}
	next, err := contract.NextStatus(existing.Status(), contract.TriggerShare)
	if err != nil {
		return nil, "", err
	}
	key, err := newSecretKey()
	if err != nil {
		return nil, "", err
	}
	if err := s.repo.UpdateStatusAndKey(ctx, id, existing.Status(), next, key); err != nil {
		return nil, "", err
	}
	shared, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	s.publisher.Publish(contract.StatusChangedEvent{
		ContractID: id,
		From:       existing.Status(),
		To:         next,
		Trigger:    contract.TriggerShare,
	})
	s.publisher.Publish(contract.SharedEvent{ContractID: id, Key: key})
	return shared, key, nil
}

// Cancel withdraws the document from any non-terminal status.
func (s *ContractService) Cancel(ctx context.Context, ownerID, id uuid.UUID) (contract.Contract, error) {
	existing, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	next, err := contract.NextStatus(existing.Status(), contract.TriggerCancel)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, existing.Status(), next); err != nil {
		return nil, err
	}
	cancelled, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(contract.StatusChangedEvent{
		ContractID: id,
		From:       existing.Status(),
		To:         next,
		Trigger:    contract.TriggerCancel,
	})
	return cancelled, nil
}

func (s *ContractService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (contract.Contract, error) {
	return s.getOwned(ctx, ownerID, id)
}

func (s *ContractService) List(ctx context.Context, ownerID uuid.UUID) ([]contract.Contract, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *ContractService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RevealKey returns the plaintext secret key for the owner's share link,
// throttled per (contract, client instance). Advisory only; the security
// boundary stays key equality on the client access path.
func (s *ContractService) RevealKey(ctx context.Context, ownerID, id uuid.UUID, clientInstanceID string) (string, error) {
	existing, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if existing.SecretKey() == "" {
		return "", contract.ErrNotFound
	}
	if err := s.reveals.Increment(ctx, id, clientInstanceID); err != nil {
		return "", err
	}
	return existing.SecretKey(), nil
}

// ResetKeyReveals is the out-of-band reset for the reveal throttle.
func (s *ContractService) ResetKeyReveals(ctx context.Context, ownerID, id uuid.UUID, clientInstanceID string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.reveals.Reset(ctx, id, clientInstanceID)
}

// getOwned treats another owner's contract as missing rather than forbidden.
func (s *ContractService) getOwned(ctx context.Context, ownerID, id uuid.UUID) (contract.Contract, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID() != ownerID {
		return nil, contract.ErrNotFound
	}
	return c, nil
}

func newSecretKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", gerrors.Wrap(err, "failed to generate secret key")
	}
	return hex.EncodeToString(buf), nil
}
