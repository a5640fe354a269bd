package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/AzielCF/az-rules/infrastructure/valkey"
)

// ValkeyStore claims keys with SET NX EX.
type ValkeyStore struct {
	client *valkey.Client
	prefix string
}

func NewValkeyStore(client *valkey.Client) *ValkeyStore {
	return &ValkeyStore{
		client: client,
		prefix: client.Key("idempotency") + ":",
	}
}

func (s *ValkeyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	inner := s.client.Inner()
	cmd := inner.B().Set().
		Key(s.prefix + key).
		Value("1").
		Nx().
		Ex(ttl).
		Build()

	if err := inner.Do(ctx, cmd).Error(); err != nil {
		if valkey.IsNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return true, nil
}

func (s *ValkeyStore) Release(ctx context.Context, key string) error {
	inner := s.client.Inner()
	return inner.Do(ctx, inner.B().Del().Key(s.prefix+key).Build()).Error()
}
