package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MaxKeyReveals caps how many times one client instance may display a
// contract's plaintext key before an explicit reset.
const MaxKeyReveals = 3

var ErrRevealLimitReached = errors.New("key reveal limit reached")

// KeyRevealCounter throttles key disclosure per (contract, client instance).
// Advisory: it protects against shoulder-surfing convenience leaks, not
// against the counterparty.
type KeyRevealCounter interface {
	Increment(ctx context.Context, contractID uuid.UUID, clientInstanceID string) error
	Reset(ctx context.Context, contractID uuid.UUID, clientInstanceID string) error
}

type InmemKeyRevealCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewInmemKeyRevealCounter() *InmemKeyRevealCounter {
	return &InmemKeyRevealCounter{counts: make(map[string]int)}
}

func (c *InmemKeyRevealCounter) Increment(_ context.Context, contractID uuid.UUID, clientInstanceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := revealKey(contractID, clientInstanceID)
	if c.counts[key] >= MaxKeyReveals {
		return ErrRevealLimitReached
	}
	c.counts[key]++
	return nil
}

func (c *InmemKeyRevealCounter) Reset(_ context.Context, contractID uuid.UUID, clientInstanceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, revealKey(contractID, clientInstanceID))
	return nil
}

// RedisKeyRevealCounter shares reveal counts across server instances.
type RedisKeyRevealCounter struct {
	client *redis.Client
	prefix string
}

func NewRedisKeyRevealCounter(client *redis.Client) *RedisKeyRevealCounter {
	return &RedisKeyRevealCounter{client: client, prefix: "contracts:key_reveals:v1"}
}

func (c *RedisKeyRevealCounter) Increment(ctx context.Context, contractID uuid.UUID, clientInstanceID string) error {
	key := fmt.Sprintf("%s:%s", c.prefix, revealKey(contractID, clientInstanceID))
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count > MaxKeyReveals {
		// Keep the counter above the cap so retries stay blocked.
		return ErrRevealLimitReached
	}
	return nil
}

func (c *RedisKeyRevealCounter) Reset(ctx context.Context, contractID uuid.UUID, clientInstanceID string) error {
	key := fmt.Sprintf("%s:%s", c.prefix, revealKey(contractID, clientInstanceID))
	return c.client.Del(ctx, key).Err()
}

func revealKey(contractID uuid.UUID, clientInstanceID string) string {
	return contractID.String() + ":" + clientInstanceID
}
