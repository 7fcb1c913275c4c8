package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/entities/session"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
)

type RegisterDTO struct {
	Email    string
	Name     string
	Password string
}

type LoginDTO struct {
	Email    string
	Password string
}

type AuthService struct {
	users           user.Repository
	sessions        session.Repository
	sessionDuration time.Duration
}

func NewAuthService(users user.Repository, sessions session.Repository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		sessions:        sessions,
		sessionDuration: sessionDuration,
	}
}

func (s *AuthService) Register(ctx context.Context, dto RegisterDTO) (user.User, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	u, err := user.New(email, strings.TrimSpace(dto.Name), dto.Password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, u)
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, dto LoginDTO) (user.User, *session.Session, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(dto.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, user.ErrInvalidLogin
		}
		return nil, nil, err
	}
	if !u.CheckPassword(dto.Password) {
		return nil, nil, user.ErrInvalidLogin
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, nil, err
	}
	sess := &session.Session{
		Token:     token,
		UserID:    u.ID(),
		ExpiresAt: time.Now().Add(s.sessionDuration),
		CreatedAt: time.Now(),
	}
	if ip, ok := composables.UseIP(ctx); ok {
		sess.IP = ip
	}
	if ua, ok := composables.UseUserAgent(ctx); ok {
		sess.UserAgent = ua
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// AuthenticateToken satisfies middleware.TokenAuthenticator.
func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (uuid.UUID, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if sess.IsExpired() {
		// Lazy cleanup; expired rows also get swept on startup.
		_ = s.sessions.Delete(ctx, token)
		return uuid.Nil, session.ErrExpired
	}
	return sess.UserID, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpgradePlan is invoked by billing after a verified payment.
func (s *AuthService) UpgradePlan(ctx context.Context, id uuid.UUID, plan user.Plan) (user.User, error) {
	if !plan.IsValid() {
		return nil, user.ErrInvalidPlan
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.users.Update(ctx, u.SetPlan(plan))
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", gerrors.Wrap(err, "failed to generate session token")
	}
	return hex.EncodeToString(buf), nil
}
