package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripdesk/travio-gateway/internal/core/domain"
)

const tokenKey = "travio:token"

// fallbackTTL caps how long a token without a tracked expiry stays cached.
const fallbackTTL = time.Hour

// TokenStore persists the upstream bearer token in Redis so a restarted
// process can reuse a still-valid token instead of re-authenticating.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Load returns the stored token, or a zero token when none is cached.
func (s *TokenStore) Load(ctx context.Context) (domain.Token, error) {
	raw, err := s.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Token{}, nil
		}
		return domain.Token{}, fmt.Errorf("token load: %w", err)
	}

	var token domain.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return domain.Token{}, fmt.Errorf("token load: decode: %w", err)
	}
	return token, nil
}

// Save stores the token with a TTL matching its expiry, so Redis drops it
// no later than the token manager would consider it stale.
func (s *TokenStore) Save(ctx context.Context, token domain.Token) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("token save: encode: %w", err)
	}

	ttl := fallbackTTL
	if !token.Expiry.IsZero() {
		ttl = time.Until(token.Expiry)
		if ttl <= 0 {
			return nil
		}
	}
	if err := s.client.Set(ctx, tokenKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("token save: %w", err)
	}
	return nil
}
