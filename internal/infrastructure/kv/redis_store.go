package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopware-admin-mcp/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	tokenPrefix   = "token_"
	authPrefix    = "auth_"
	reversePrefix = "reverse_"
	codePrefix    = "code_"
)

// RedisStore implements the token cache and the session-binding store on a
// shared Redis namespace.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a store on an existing Redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// GetToken returns the cached access token of a shop, domain.ErrTokenMiss if
// none is cached or it has expired.
func (s *RedisStore) GetToken(ctx context.Context, shopID string) (string, error) {
	token, err := s.rdb.Get(ctx, tokenPrefix+shopID).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token cache: %w", err)
	}
	return token, nil
}

// SetToken caches an access token with the given lifetime.
func (s *RedisStore) SetToken(ctx context.Context, shopID string, token string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, tokenPrefix+shopID, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return nil
}

// CreateBinding stores the forward and reverse entries of a shop's session
// binding.
func (s *RedisStore) CreateBinding(ctx context.Context, shopID string, token string) error {
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, authPrefix+token, shopID, 0)
	pipe.Set(ctx, reversePrefix+shopID, token, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create session binding: %w", err)
	}
	return nil
}

// ResolveToken resolves a bearer token to its shop id.
func (s *RedisStore) ResolveToken(ctx context.Context, token string) (string, error) {
	shopID, err := s.rdb.Get(ctx, authPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrBindingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session binding: %w", err)
	}
	return shopID, nil
}

// TokenForShop returns the current bearer token bound to a shop.
func (s *RedisStore) TokenForShop(ctx context.Context, shopID string) (string, error) {
	token, err := s.rdb.Get(ctx, reversePrefix+shopID).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrBindingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session binding: %w", err)
	}
	return token, nil
}

// DeleteBinding removes both entries of a shop's binding pair. Deleting a
// shop without a binding is a no-op.
func (s *RedisStore) DeleteBinding(ctx context.Context, shopID string) error {
	token, err := s.TokenForShop(ctx, shopID)
	if errors.Is(err, domain.ErrBindingNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, authPrefix+token)
	pipe.Del(ctx, reversePrefix+shopID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session binding: %w", err)
	}
	return nil
}

// PutCode stores a short-lived authorization code.
func (s *RedisStore) PutCode(ctx context.Context, code string, shopID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, codePrefix+code, shopID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store authorization code: %w", err)
	}
	return nil
}

// TakeCode resolves and consumes an authorization code.
func (s *RedisStore) TakeCode(ctx context.Context, code string) (string, error) {
	shopID, err := s.rdb.GetDel(ctx, codePrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrBindingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume authorization code: %w", err)
	}
	return shopID, nil
}
