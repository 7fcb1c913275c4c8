package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/revisionrequest"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/entities/terminationrequest"
)

// InmemContractRepository backs service tests without a database. Mirrors the
// SQL repository's conflict semantics on conditional status updates.
type InmemContractRepository struct {
	mu        sync.RWMutex
	contracts map[uuid.UUID]contract.Contract
	owners    map[uuid.UUID]uuid.UUID
}

func NewInmemContractRepository() *InmemContractRepository {
	return &InmemContractRepository{
		contracts: make(map[uuid.UUID]contract.Contract),
		owners:    make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *InmemContractRepository) GetByID(_ context.Context, id uuid.UUID) (contract.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return c, nil
}

func (r *InmemContractRepository) GetByOwner(_ context.Context, ownerID uuid.UUID) ([]contract.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []contract.Contract
	for _, c := range r.contracts {
		if c.OwnerID() == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt().After(out[j].UpdatedAt())
	})
	return out, nil
}

func (r *InmemContractRepository) Create(_ context.Context, c contract.Contract) (contract.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts[c.ID()] = c
	r.owners[c.ID()] = c.OwnerID()
	return c, nil
}

func (r *InmemContractRepository) Update(_ context.Context, c contract.Contract) (contract.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.contracts[c.ID()]
	if !ok {
		return nil, contract.ErrNotFound
	}
	// Status and key changes go through the conditional update methods.
	merged := stored.
		SetTitle(c.Title()).
		SetClient(c.ClientName(), c.ClientEmail(), c.ClientPhone()).
		SetPayload(c.Payload())
	r.contracts[c.ID()] = merged
	return merged, nil
}

func (r *InmemContractRepository) UpdateStatus(_ context.Context, id uuid.UUID, expected, next contract.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.contracts[id]
	if !ok {
		return contract.ErrNotFound
	}
	if stored.Status() != expected {
		return contract.ErrConflict
	}
	updated := stored.SetStatus(next)
	if next == contract.StatusSigned {
		updated = updated.SetSignedAt(time.Now())
	}
	r.contracts[id] = updated
	return nil
}

func (r *InmemContractRepository) UpdateStatusAndKey(_ context.Context, id uuid.UUID, expected, next contract.Status, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.contracts[id]
	if !ok {
		return contract.ErrNotFound
	}
	if stored.Status() != expected {
		return contract.ErrConflict
	}
	r.contracts[id] = stored.SetStatus(next).SetSecretKey(key)
	return nil
}

func (r *InmemContractRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contracts[id]; !ok {
		return contract.ErrNotFound
	}
	delete(r.contracts, id)
	delete(r.owners, id)
	return nil
}

type InmemRevisionRequestRepository struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*revisionrequest.RevisionRequest
	// ownerOf resolves contract ownership for ListUnresolvedByOwner.
	ownerOf func(contractID uuid.UUID) (uuid.UUID, bool)
}

func NewInmemRevisionRequestRepository(contracts *InmemContractRepository) *InmemRevisionRequestRepository {
	return &InmemRevisionRequestRepository{
		requests: make(map[uuid.UUID]*revisionrequest.RevisionRequest),
		ownerOf: func(contractID uuid.UUID) (uuid.UUID, bool) {
			contracts.mu.RLock()
			defer contracts.mu.RUnlock()
			ownerID, ok := contracts.owners[contractID]
			return ownerID, ok
		},
	}
}

func (r *InmemRevisionRequestRepository) Insert(_ context.Context, req *revisionrequest.RevisionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *InmemRevisionRequestRepository) GetByID(_ context.Context, id uuid.UUID) (*revisionrequest.RevisionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, revisionrequest.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *InmemRevisionRequestRepository) Resolve(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return revisionrequest.ErrNotFound
	}
	if req.Resolved {
		return nil
	}
	now := time.Now()
	req.Resolved = true
	req.ResolvedAt = &now
	return nil
}

func (r *InmemRevisionRequestRepository) ListUnresolvedByOwner(_ context.Context, ownerID uuid.UUID) ([]*revisionrequest.RevisionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*revisionrequest.RevisionRequest
	for _, req := range r.requests {
		if req.Resolved {
			continue
		}
		owner, ok := r.ownerOf(req.ContractID)
		if !ok || owner != ownerID {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InmemRevisionRequestRepository) ListByContract(_ context.Context, contractID uuid.UUID) ([]*revisionrequest.RevisionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*revisionrequest.RevisionRequest
	for _, req := range r.requests {
		if req.ContractID == contractID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type InmemTerminationRequestRepository struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*terminationrequest.TerminationRequest
	ownerOf  func(contractID uuid.UUID) (uuid.UUID, bool)
}

func NewInmemTerminationRequestRepository(contracts *InmemContractRepository) *InmemTerminationRequestRepository {
	return &InmemTerminationRequestRepository{
		requests: make(map[uuid.UUID]*terminationrequest.TerminationRequest),
		ownerOf: func(contractID uuid.UUID) (uuid.UUID, bool) {
			contracts.mu.RLock()
			defer contracts.mu.RUnlock()
			ownerID, ok := contracts.owners[contractID]
			return ownerID, ok
		},
	}
}

func (r *InmemTerminationRequestRepository) Insert(_ context.Context, req *terminationrequest.TerminationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *InmemTerminationRequestRepository) GetByID(_ context.Context, id uuid.UUID) (*terminationrequest.TerminationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, terminationrequest.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *InmemTerminationRequestRepository) Resolve(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return terminationrequest.ErrNotFound
	}
	if req.Resolved {
		return nil
	}
	now := time.Now()
	req.Resolved = true
	req.ResolvedAt = &now
	return nil
}

func (r *InmemTerminationRequestRepository) ListUnresolvedByOwner(_ context.Context, ownerID uuid.UUID) ([]*terminationrequest.TerminationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*terminationrequest.TerminationRequest
	for _, req := range r.requests {
		if req.Resolved {
			continue
		}
		owner, ok := r.ownerOf(req.ContractID)
		if !ok || owner != ownerID {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InmemTerminationRequestRepository) ListByContract(_ context.Context, contractID uuid.UUID) ([]*terminationrequest.TerminationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*terminationrequest.TerminationRequest
	for _, req := range r.requests {
		if req.ContractID == contractID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
