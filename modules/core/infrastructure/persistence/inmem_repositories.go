package persistence

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/entities/session"
)

type InmemUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func NewInmemUserRepository() *InmemUserRepository {
	return &InmemUserRepository{users: make(map[uuid.UUID]user.User)}
}

func (r *InmemUserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (r *InmemUserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email(), email) {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *InmemUserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email(), u.Email()) {
			return nil, user.ErrEmailTaken
		}
	}
	r.users[u.ID()] = u
	return u, nil
}

func (r *InmemUserRepository) Update(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return nil, user.ErrNotFound
	}
	r.users[u.ID()] = u
	return u, nil
}

type InmemSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewInmemSessionRepository() *InmemSessionRepository {
	return &InmemSessionRepository{sessions: make(map[string]*session.Session)}
}

func (r *InmemSessionRepository) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *InmemSessionRepository) GetByToken(_ context.Context, token string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *InmemSessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *InmemSessionRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}
