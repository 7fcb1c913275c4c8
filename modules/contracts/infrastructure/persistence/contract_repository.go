package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/infrastructure/persistence/models"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
)

const (
	selectContractQuery = `
		SELECT id, owner_id, title, status, client_name, client_email, client_phone,
		       payload, secret_key, signed_at, created_at, updated_at
		FROM contracts`

	insertContractQuery = `
		INSERT INTO contracts (
			id, owner_id, title, status, client_name, client_email, client_phone,
			payload, secret_key, signed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	updateContractQuery = `
		UPDATE contracts
		SET title = $2, client_name = $3, client_email = $4, client_phone = $5,
		    payload = $6, signed_at = $7, updated_at = $8
		WHERE id = $1`

	updateContractStatusQuery = `
		UPDATE contracts
		SET status = $3, signed_at = COALESCE($4, signed_at), updated_at = $5
		WHERE id = $1 AND status = $2`

	updateContractStatusAndKeyQuery = `
		UPDATE contracts
		SET status = $3, secret_key = $4, updated_at = $5
		WHERE id = $1 AND status = $2`

	deleteContractQuery = `DELETE FROM contracts WHERE id = $1`
)

type ContractRepository struct{}

func NewContractRepository() contract.Repository {
	return &ContractRepository{}
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (contract.Contract, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRow(ctx, selectContractQuery+" WHERE id = $1", id.String())
	return scanContract(row)
}

func (r *ContractRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]contract.Contract, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectContractQuery+" WHERE owner_id = $1 ORDER BY updated_at DESC", ownerID.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to query contracts by owner")
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (r *ContractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	m, err := toDBContract(c)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, insertContractQuery,
		m.ID, m.OwnerID, m.Title, m.Status, m.ClientName, m.ClientEmail, m.ClientPhone,
		m.Payload, m.SecretKey, m.SignedAt, m.CreatedAt, m.UpdatedAt,
	); err != nil {
		return nil, gerrors.Wrap(err, "failed to insert contract")
	}
	return c, nil
}

func (r *ContractRepository) Update(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	m, err := toDBContract(c)
	if err != nil {
		return nil, err
	}
	tag, err := tx.Exec(ctx, updateContractQuery,
		m.ID, m.Title, m.ClientName, m.ClientEmail, m.ClientPhone,
		m.Payload, m.SignedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to update contract")
	}
	if tag.RowsAffected() == 0 {
		return nil, contract.ErrNotFound
	}
	return c, nil
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next contract.Status) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	var signedAt *time.Time
	if next == contract.StatusSigned {
		now := time.Now()
		signedAt = &now
	}
	tag, err := tx.Exec(ctx, updateContractStatusQuery,
		id.String(), string(expected), string(next), signedAt, time.Now(),
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to update contract status")
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, id)
	}
	return nil
}

func (r *ContractRepository) UpdateStatusAndKey(ctx context.Context, id uuid.UUID, expected, next contract.Status, key string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, updateContractStatusAndKeyQuery,
		id.String(), string(expected), string(next), key, time.Now(),
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to update contract status and key")
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, id)
	}
	return nil
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteContractQuery, id.String())
	if err != nil {
		return gerrors.Wrap(err, "failed to delete contract")
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrNotFound
	}
	return nil
}

// conflictOrNotFound disambiguates a zero-row conditional update: the row is
// either gone (ErrNotFound) or its status moved under us (ErrConflict).
func (r *ContractRepository) conflictOrNotFound(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return contract.ErrConflict
}

func scanContract(row pgx.Row) (contract.Contract, error) {
	var m models.Contract
	if err := row.Scan(
		&m.ID, &m.OwnerID, &m.Title, &m.Status, &m.ClientName, &m.ClientEmail, &m.ClientPhone,
		&m.Payload, &m.SecretKey, &m.SignedAt, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contract.ErrNotFound
		}
		return nil, gerrors.Wrap(err, "failed to scan contract")
	}
	return toDomainContract(&m)
}
