package persistence

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/infrastructure/persistence/models"
)

func toDBContract(c contract.Contract) (*models.Contract, error) {
	payload, err := json.Marshal(c.Payload())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal contract payload")
	}
	return &models.Contract{
		ID:          c.ID().String(),
		OwnerID:     c.OwnerID().String(),
		Title:       c.Title(),
		Status:      string(c.Status()),
		ClientName:  c.ClientName(),
		ClientEmail: c.ClientEmail(),
		ClientPhone: c.ClientPhone(),
		Payload:     payload,
		SecretKey:   c.SecretKey(),
		SignedAt:    c.SignedAt(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}, nil
}

func toDomainContract(m *models.Contract) (contract.Contract, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse contract id")
	}
	ownerID, err := uuid.Parse(m.OwnerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse contract owner id")
	}
	var payload contract.Payload
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal contract payload")
		}
	}
	return contract.New(
		ownerID,
		m.Title,
		contract.WithID(id),
		contract.WithStatus(contract.Status(m.Status)),
		contract.WithClient(m.ClientName, m.ClientEmail, m.ClientPhone),
		contract.WithPayload(payload),
		contract.WithSecretKey(m.SecretKey),
		contract.WithSignedAt(m.SignedAt),
		contract.WithCreatedAt(m.CreatedAt),
		contract.WithUpdatedAt(m.UpdatedAt),
	), nil
}
