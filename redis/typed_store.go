package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TypedStore stores values of type V as JSON under "<prefix>:<key>".
type TypedStore[V any] struct {
	client    *Client
	keyPrefix string
}

// NewTypedStore creates a TypedStore backed by client.
func NewTypedStore[V any](client *Client, keyPrefix string) *TypedStore[V] {
	return &TypedStore[V]{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *TypedStore[V]) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Load returns the value at key, or (nil, nil) when it does not exist.
func (s *TypedStore[V]) Load(ctx context.Context, key string) (*V, error) {
	raw, err := s.client.Get(ctx, s.fullKey(key))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("typed store load %q: %w", key, err)
	}

	var val V
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return nil, fmt.Errorf("typed store unmarshal %q: %w", key, err)
	}
	return &val, nil
}

// Save stores val with ttl. A zero ttl means no expiration.
func (s *TypedStore[V]) Save(ctx context.Context, key string, val *V, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("typed store marshal %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.fullKey(key), data, ttl); err != nil {
		return fmt.Errorf("typed store save %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *TypedStore[V]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)); err != nil {
		return fmt.Errorf("typed store delete %q: %w", key, err)
	}
	return nil
}

// Keys returns the unprefixed keys currently held by the store.
func (s *TypedStore[V]) Keys(ctx context.Context) ([]string, error) {
	pattern := "*"
	if s.keyPrefix != "" {
		pattern = s.keyPrefix + ":*"
	}
	full, err := s.client.Keys(ctx, pattern)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(full))
	for _, k := range full {
		if s.keyPrefix != "" {
			k = strings.TrimPrefix(k, s.keyPrefix+":")
		}
		keys = append(keys, k)
	}
	return keys, nil
}
