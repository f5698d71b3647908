package ports

import (
	"context"
	"time"
)

// TokenStore caches short-lived Admin API access tokens per shop.
// Get returns domain.ErrTokenMiss when no unexpired token is cached; any
// other error means the backing store is unavailable and the request must
// fail rather than proceed unauthenticated.
type TokenStore interface {
	GetToken(ctx context.Context, shopID string) (string, error)
	SetToken(ctx context.Context, shopID string, token string, ttl time.Duration) error
}

// BindingStore persists the session bindings of the edge-hosted mode: an
// opaque bearer token mapping to a shop id and its inverse. At most one
// active pair exists per shop.
type BindingStore interface {
	// CreateBinding stores the forward (token -> shop) and reverse
	// (shop -> token) entries
	CreateBinding(ctx context.Context, shopID string, token string) error

	// ResolveToken returns the shop id bound to a bearer token; returns
	// domain.ErrBindingNotFound when the token is unknown
	ResolveToken(ctx context.Context, token string) (string, error)

	// TokenForShop returns the current bearer token of a shop; returns
	// domain.ErrBindingNotFound when the shop has no binding
	TokenForShop(ctx context.Context, shopID string) (string, error)

	// DeleteBinding removes both entries of a shop's binding pair
	DeleteBinding(ctx context.Context, shopID string) error

	// PutCode stores a short-lived authorization code bound to a shop id
	PutCode(ctx context.Context, code string, shopID string, ttl time.Duration) error

	// TakeCode resolves and consumes an authorization code; returns
	// domain.ErrBindingNotFound for unknown or already-used codes
	TakeCode(ctx context.Context, code string) (string, error)
}
