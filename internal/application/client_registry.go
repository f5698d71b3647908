package application

import (
	"context"
	"sync"

	"shopware-admin-mcp/internal/infrastructure/adminapi"
	"shopware-admin-mcp/internal/ports"

	"github.com/rs/zerolog"
)

// ClientRegistry memoizes one Admin API client per shop for the lifetime of
// the process. Entries are populated on miss and never evicted; a concurrent
// first access may construct twice, which is safe because clients for the
// same shop are behaviorally equivalent.
type ClientRegistry struct {
	shops  ports.ShopRepository
	tokens ports.TokenStore
	logger zerolog.Logger

	mu      sync.Mutex
	clients map[string]*adminapi.Client
}

// NewClientRegistry creates a registry backed by the shop store and the
// shared token cache.
func NewClientRegistry(shops ports.ShopRepository, tokens ports.TokenStore, logger zerolog.Logger) *ClientRegistry {
	return &ClientRegistry{
		shops:   shops,
		tokens:  tokens,
		logger:  logger,
		clients: make(map[string]*adminapi.Client),
	}
}

// GetClient returns the memoized client of a shop, constructing it from the
// stored shop record on first access. Returns domain.ErrShopNotFound when no
// record exists; that must never fall back to a default tenant.
func (r *ClientRegistry) GetClient(ctx context.Context, shopID string) (*adminapi.Client, error) {
	r.mu.Lock()
	client, ok := r.clients[shopID]
	r.mu.Unlock()
	if ok {
		return client, nil
	}

	shop, err := r.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	client = adminapi.NewClient(shop, r.tokens, r.logger)

	r.mu.Lock()
	if existing, ok := r.clients[shopID]; ok {
		client = existing
	} else {
		r.clients[shopID] = client
	}
	r.mu.Unlock()

	r.logger.Debug().Str("shop", shopID).Msg("Constructed admin api client")
	return client, nil
}

// Forget drops a memoized client, used when a shop deactivates so the next
// access reloads (and fails on) the credential store.
func (r *ClientRegistry) Forget(shopID string) {
	r.mu.Lock()
	delete(r.clients, shopID)
	r.mu.Unlock()
}
