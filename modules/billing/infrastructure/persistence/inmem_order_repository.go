package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/domain/aggregates/payment"
)

type InmemOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*payment.Order
}

func NewInmemOrderRepository() *InmemOrderRepository {
	return &InmemOrderRepository{orders: make(map[uuid.UUID]*payment.Order)}
}

func (r *InmemOrderRepository) Insert(_ context.Context, o *payment.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *InmemOrderRepository) GetByID(_ context.Context, id uuid.UUID) (*payment.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *InmemOrderRepository) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*payment.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.GatewayOrderID == gatewayOrderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (r *InmemOrderRepository) MarkPaid(_ context.Context, id uuid.UUID, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return payment.ErrNotFound
	}
	if o.Status == payment.StatusPaid {
		return payment.ErrAlreadyPaid
	}
	if o.Status != payment.StatusCreated {
		return payment.ErrNotFound
	}
	o.Status = payment.StatusPaid
	o.PaymentID = paymentID
	o.UpdatedAt = time.Now()
	return nil
}

func (r *InmemOrderRepository) MarkFailed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return payment.ErrNotFound
	}
	if o.Status == payment.StatusCreated {
		o.Status = payment.StatusFailed
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *InmemOrderRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*payment.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*payment.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
