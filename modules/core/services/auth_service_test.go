package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/entities/session"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/infrastructure/persistence"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
)

func setupAuthTest(t *testing.T) (context.Context, *services.AuthService) {
	t.Helper()
	return context.Background(), services.NewAuthService(
		persistence.NewInmemUserRepository(),
		persistence.NewInmemSessionRepository(),
		time.Hour,
	)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	ctx, sut := setupAuthTest(t)

	created, err := sut.Register(ctx, services.RegisterDTO{
		Email:    "Owner@Example.com",
		Name:     "Owner",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", created.Email())
	assert.Equal(t, user.PlanFree, created.Plan())

	u, sess, err := sut.Login(ctx, services.LoginDTO{Email: "owner@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, created.ID(), u.ID())
	assert.NotEmpty(t, sess.Token)

	userID, err := sut.AuthenticateToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID(), userID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx, sut := setupAuthTest(t)

	_, err := sut.Register(ctx, services.RegisterDTO{Email: "a@b.example", Password: "long enough"})
	require.NoError(t, err)

	_, err = sut.Register(ctx, services.RegisterDTO{Email: "A@B.example", Password: "long enough"})
	require.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	t.Parallel()
	ctx, sut := setupAuthTest(t)

	_, err := sut.Register(ctx, services.RegisterDTO{Email: "a@b.example", Password: "short"})
	require.ErrorIs(t, err, user.ErrWeakPassword)
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	t.Parallel()
	ctx, sut := setupAuthTest(t)

	_, err := sut.Register(ctx, services.RegisterDTO{Email: "a@b.example", Password: "long enough"})
	require.NoError(t, err)

	_, _, err = sut.Login(ctx, services.LoginDTO{Email: "a@b.example", Password: "wrong password"})
	require.ErrorIs(t, err, user.ErrInvalidLogin)

	_, _, err = sut.Login(ctx, services.LoginDTO{Email: "nobody@b.example", Password: "long enough"})
	require.ErrorIs(t, err, user.ErrInvalidLogin)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	ctx, sut := setupAuthTest(t)

	_, err := sut.Register(ctx, services.RegisterDTO{Email: "a@b.example", Password: "long enough"})
	require.NoError(t, err)
	_, sess, err := sut.Login(ctx, services.LoginDTO{Email: "a@b.example", Password: "long enough"})
	require.NoError(t, err)

	require.NoError(t, sut.Logout(ctx, sess.Token))

	_, err = sut.AuthenticateToken(ctx, sess.Token)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestAuthService_ExpiredSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sut := services.NewAuthService(
		persistence.NewInmemUserRepository(),
		persistence.NewInmemSessionRepository(),
		-time.Minute, // already expired
	)

	_, err := sut.Register(ctx, services.RegisterDTO{Email: "a@b.example", Password: "long enough"})
	require.NoError(t, err)
	_, sess, err := sut.Login(ctx, services.LoginDTO{Email: "a@b.example", Password: "long enough"})
	require.NoError(t, err)

	_, err = sut.AuthenticateToken(ctx, sess.Token)
	require.ErrorIs(t, err, session.ErrExpired)
}

func TestAuthService_UpgradePlan(t *testing.T) {
	t.Parallel()
	ctx, sut := setupAuthTest(t)

	created, err := sut.Register(ctx, services.RegisterDTO{Email: "a@b.example", Password: "long enough"})
	require.NoError(t, err)

	upgraded, err := sut.UpgradePlan(ctx, created.ID(), user.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, user.PlanPro, upgraded.Plan())

	_, err = sut.UpgradePlan(ctx, created.ID(), user.Plan("enterprise"))
	require.ErrorIs(t, err, user.ErrInvalidPlan)

	_, err = sut.UpgradePlan(ctx, uuid.New(), user.PlanPro)
	require.ErrorIs(t, err, user.ErrNotFound)
}
