package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
)

const (
	selectUserQuery = `
		SELECT id, email, name, password_hash, plan, created_at, updated_at
		FROM users`

	insertUserQuery = `
		INSERT INTO users (id, email, name, password_hash, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateUserQuery = `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, plan = $5, updated_at = $6
		WHERE id = $1`
)

type UserRepository struct{}

func NewUserRepository() user.Repository {
	return &UserRepository{}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanUser(tx.QueryRow(ctx, selectUserQuery+" WHERE id = $1", id.String()))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanUser(tx.QueryRow(ctx, selectUserQuery+" WHERE lower(email) = lower($1)", strings.TrimSpace(email)))
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, insertUserQuery,
		u.ID().String(), u.Email(), u.Name(), u.PasswordHash(), string(u.Plan()), u.CreatedAt(), u.UpdatedAt(),
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, user.ErrEmailTaken
		}
		return nil, gerrors.Wrap(err, "failed to insert user")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tag, err := tx.Exec(ctx, updateUserQuery,
		u.ID().String(), u.Email(), u.Name(), u.PasswordHash(), string(u.Plan()), time.Now(),
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to update user")
	}
	if tag.RowsAffected() == 0 {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var (
		id, email, name, passwordHash, plan string
		createdAt, updatedAt                time.Time
	)
	if err := row.Scan(&id, &email, &name, &passwordHash, &plan, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, gerrors.Wrap(err, "failed to scan user")
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse user id")
	}
	return user.Hydrate(uid, email, name, passwordHash, user.Plan(plan), createdAt, updatedAt), nil
}
