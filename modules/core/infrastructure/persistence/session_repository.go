package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/entities/session"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
)

const (
	insertSessionQuery = `
		INSERT INTO sessions (token, user_id, ip, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	selectSessionQuery = `
		SELECT token, user_id, ip, user_agent, expires_at, created_at
		FROM sessions WHERE token = $1`

	deleteSessionQuery      = `DELETE FROM sessions WHERE token = $1`
	deleteUserSessionsQuery = `DELETE FROM sessions WHERE user_id = $1`
)

type SessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertSessionQuery,
		s.Token, s.UserID.String(), s.IP, s.UserAgent, s.ExpiresAt, s.CreatedAt,
	); err != nil {
		return gerrors.Wrap(err, "failed to insert session")
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var (
		s      session.Session
		userID string
	)
	row := tx.QueryRow(ctx, selectSessionQuery, token)
	if err := row.Scan(&s.Token, &userID, &s.IP, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, gerrors.Wrap(err, "failed to scan session")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse session user id")
	}
	s.UserID = uid
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, deleteSessionQuery, token)
	return err
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, deleteUserSessionsQuery, userID.String())
	return err
}

// DeleteExpired is housekeeping for a periodic job or startup sweep.
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, time.Now())
	return err
}
