// Package redis implements the session registry on a Redis hash so that
// several service instances can share sessions.
package redis

import (
	"context"
	"errors"

	"scoreboard/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultKey is the hash that holds address -> token fields.
const DefaultKey = "scoreboard:sessions"

// Registry stores one hash field per address. Fields carry no expiry.
type Registry struct {
	client goredis.UniversalClient
	key    string
}

var _ domain.SessionRegistry = (*Registry)(nil)

// NewRegistry wraps client. An empty key selects DefaultKey.
func NewRegistry(client goredis.UniversalClient, key string) *Registry {
	if key == "" {
		key = DefaultKey
	}
	return &Registry{client: client, key: key}
}

// Put stores token for address, overwriting any previous one.
func (r *Registry) Put(ctx context.Context, address, token string) error {
	return r.client.HSet(ctx, r.key, address, token).Err()
}

// Token returns the token held by address.
func (r *Registry) Token(ctx context.Context, address string) (string, bool, error) {
	tok, err := r.client.HGet(ctx, r.key, address).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return tok, true, nil
}

// Count returns the number of addresses holding a session.
func (r *Registry) Count(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.key).Result()
	return int(n), err
}

// Ping checks connectivity.
func (r *Registry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
