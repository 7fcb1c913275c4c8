package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/revisionrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/terminationrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/infrastructure/persistence/models"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
)

const (
	insertRevisionRequestQuery = `
		INSERT INTO revision_requests (id, contract_id, author_name, author_email, message, resolved, resolved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	selectRevisionRequestQuery = `
		SELECT id, contract_id, author_name, author_email, message, resolved, resolved_at, created_at
		FROM revision_requests`

	resolveRevisionRequestQuery = `
		UPDATE revision_requests
		SET resolved = TRUE, resolved_at = $2
		WHERE id = $1 AND resolved = FALSE`

	listUnresolvedRevisionsByOwnerQuery = `
		SELECT rr.id, rr.contract_id, rr.author_name, rr.author_email, rr.message, rr.resolved, rr.resolved_at, rr.created_at
		FROM revision_requests rr
		JOIN contracts c ON c.id = rr.contract_id
		WHERE c.owner_id = $1 AND rr.resolved = FALSE
		ORDER BY rr.created_at DESC`
)

type RevisionRequestRepository struct{}

func NewRevisionRequestRepository() revisionrequest.Repository {
	return &RevisionRequestRepository{}
}

func (r *RevisionRequestRepository) Insert(ctx context.Context, req *revisionrequest.RevisionRequest) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertRevisionRequestQuery,
		req.ID.String(), req.ContractID.String(), req.AuthorName, req.AuthorEmail,
		req.Message, req.Resolved, req.ResolvedAt, req.CreatedAt,
	); err != nil {
		return gerrors.Wrap(err, "failed to insert revision request")
	}
	return nil
}

func (r *RevisionRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*revisionrequest.RevisionRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRow(ctx, selectRevisionRequestQuery+" WHERE id = $1", id.String())
	req, err := scanRevisionRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, revisionrequest.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *RevisionRequestRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, resolveRevisionRequestQuery, id.String(), time.Now())
	if err != nil {
		return gerrors.Wrap(err, "failed to resolve revision request")
	}
	if tag.RowsAffected() == 0 {
		// Already resolved is fine; only a missing row is an error.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *RevisionRequestRepository) ListUnresolvedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*revisionrequest.RevisionRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, listUnresolvedRevisionsByOwnerQuery, ownerID.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list unresolved revision requests")
	}
	defer rows.Close()
	return collectRevisionRequests(rows)
}

func (r *RevisionRequestRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*revisionrequest.RevisionRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectRevisionRequestQuery+" WHERE contract_id = $1 ORDER BY created_at DESC", contractID.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list revision requests by contract")
	}
	defer rows.Close()
	return collectRevisionRequests(rows)
}

func collectRevisionRequests(rows pgx.Rows) ([]*revisionrequest.RevisionRequest, error) {
	var out []*revisionrequest.RevisionRequest
	for rows.Next() {
		req, err := scanRevisionRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanRevisionRequest(row pgx.Row) (*revisionrequest.RevisionRequest, error) {
	var m models.RevisionRequest
	if err := row.Scan(&m.ID, &m.ContractID, &m.AuthorName, &m.AuthorEmail, &m.Message, &m.Resolved, &m.ResolvedAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	return toDomainRevisionRequest(&m)
}

func toDomainRevisionRequest(m *models.RevisionRequest) (*revisionrequest.RevisionRequest, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse revision request id")
	}
	contractID, err := uuid.Parse(m.ContractID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse revision request contract id")
	}
	return &revisionrequest.RevisionRequest{
		ID:          id,
		ContractID:  contractID,
		AuthorName:  m.AuthorName,
		AuthorEmail: m.AuthorEmail,
		Message:     m.Message,
		Resolved:    m.Resolved,
		ResolvedAt:  m.ResolvedAt,
		CreatedAt:   m.CreatedAt,
	}, nil
}

const (
	insertTerminationRequestQuery = `
		INSERT INTO termination_requests (id, contract_id, request_type, author_name, author_email, reason, resolved, resolved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectTerminationRequestQuery = `
		SELECT id, contract_id, request_type, author_name, author_email, reason, resolved, resolved_at, created_at
		FROM termination_requests`

	resolveTerminationRequestQuery = `
		UPDATE termination_requests
		SET resolved = TRUE, resolved_at = $2
		WHERE id = $1 AND resolved = FALSE`

	listUnresolvedTerminationsByOwnerQuery = `
		SELECT tr.id, tr.contract_id, tr.request_type, tr.author_name, tr.author_email, tr.reason, tr.resolved, tr.resolved_at, tr.created_at
		FROM termination_requests tr
		JOIN contracts c ON c.id = tr.contract_id
		WHERE c.owner_id = $1 AND tr.resolved = FALSE
		ORDER BY tr.created_at DESC`
)

type TerminationRequestRepository struct{}

func NewTerminationRequestRepository() terminationrequest.Repository {
	return &TerminationRequestRepository{}
}

func (r *TerminationRequestRepository) Insert(ctx context.Context, req *terminationrequest.TerminationRequest) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertTerminationRequestQuery,
		req.ID.String(), req.ContractID.String(), string(req.Type), req.AuthorName, req.AuthorEmail,
		req.Reason, req.Resolved, req.ResolvedAt, req.CreatedAt,
	); err != nil {
		return gerrors.Wrap(err, "failed to insert termination request")
	}
	return nil
}

func (r *TerminationRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*terminationrequest.TerminationRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRow(ctx, selectTerminationRequestQuery+" WHERE id = $1", id.String())
	req, err := scanTerminationRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, terminationrequest.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *TerminationRequestRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, resolveTerminationRequestQuery, id.String(), time.Now())
	if err != nil {
		return gerrors.Wrap(err, "failed to resolve termination request")
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *TerminationRequestRepository) ListUnresolvedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*terminationrequest.TerminationRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, listUnresolvedTerminationsByOwnerQuery, ownerID.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list unresolved termination requests")
	}
	defer rows.Close()
	return collectTerminationRequests(rows)
}

func (r *TerminationRequestRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*terminationrequest.TerminationRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectTerminationRequestQuery+" WHERE contract_id = $1 ORDER BY created_at DESC", contractID.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list termination requests by contract")
	}
	defer rows.Close()
	return collectTerminationRequests(rows)
}

func collectTerminationRequests(rows pgx.Rows) ([]*terminationrequest.TerminationRequest, error) {
	var out []*terminationrequest.TerminationRequest
	for rows.Next() {
		req, err := scanTerminationRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanTerminationRequest(row pgx.Row) (*terminationrequest.TerminationRequest, error) {
	var m models.TerminationRequest
	if err := row.Scan(&m.ID, &m.ContractID, &m.Type, &m.AuthorName, &m.AuthorEmail, &m.Reason, &m.Resolved, &m.ResolvedAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	return toDomainTerminationRequest(&m)
}

func toDomainTerminationRequest(m *models.TerminationRequest) (*terminationrequest.TerminationRequest, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse termination request id")
	}
	contractID, err := uuid.Parse(m.ContractID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse termination request contract id")
	}
	return &terminationrequest.TerminationRequest{
		ID:          id,
		ContractID:  contractID,
		Type:        terminationrequest.RequestType(m.Type),
		AuthorName:  m.AuthorName,
		AuthorEmail: m.AuthorEmail,
		Reason:      m.Reason,
		Resolved:    m.Resolved,
		ResolvedAt:  m.ResolvedAt,
		CreatedAt:   m.CreatedAt,
	}, nil
}
