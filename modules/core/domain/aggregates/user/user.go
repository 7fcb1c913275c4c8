package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidLogin = errors.New("invalid email or password")
	ErrInvalidPlan  = errors.New("invalid plan")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

const MinPasswordLength = 8

// Plan gates paid features.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

func (p Plan) IsValid() bool {
	return p == PlanFree || p == PlanPro
}

type User interface {
	ID() uuid.UUID
	Email() string
	Name() string
	PasswordHash() string
	Plan() Plan
	CreatedAt() time.Time
	UpdatedAt() time.Time

	CheckPassword(password string) bool
	SetPassword(password string) (User, error)
	SetPlan(plan Plan) User
	SetName(name string) User
}

func New(email, name, password string, opts ...Option) (User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &user{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: string(hash),
		plan:         PlanFree,
		createdAt:    now,
		updatedAt:    now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Hydrate rebuilds a user from storage without re-hashing.
func Hydrate(id uuid.UUID, email, name, passwordHash string, plan Plan, createdAt, updatedAt time.Time) User {
	return &user{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		plan:         plan,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

type Option func(*user)

func WithID(id uuid.UUID) Option {
	return func(u *user) {
		if id != uuid.Nil {
			u.id = id
		}
	}
}

func WithPlan(plan Plan) Option {
	return func(u *user) {
		if plan.IsValid() {
			u.plan = plan
		}
	}
}

type user struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	plan         Plan
	createdAt    time.Time
	updatedAt    time.Time
}

func (u *user) ID() uuid.UUID        { return u.id }
func (u *user) Email() string        { return u.email }
func (u *user) Name() string         { return u.name }
func (u *user) PasswordHash() string { return u.passwordHash }
func (u *user) Plan() Plan           { return u.plan }
func (u *user) CreatedAt() time.Time { return u.createdAt }
func (u *user) UpdatedAt() time.Time { return u.updatedAt }

func (u *user) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *user) SetPassword(password string) (User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	res := *u
	res.passwordHash = string(hash)
	res.updatedAt = time.Now()
	return &res, nil
}

func (u *user) SetPlan(plan Plan) User {
	res := *u
	res.plan = plan
	res.updatedAt = time.Now()
	return &res
}

func (u *user) SetName(name string) User {
	res := *u
	res.name = name
	res.updatedAt = time.Now()
	return &res
}
