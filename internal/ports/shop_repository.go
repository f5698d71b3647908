package ports

import (
	"context"

	"shopware-admin-mcp/internal/domain"
)

// ShopRepository defines the interface for shop (tenant) persistence
type ShopRepository interface {
	// Save creates or updates a shop record
	Save(ctx context.Context, shop *domain.Shop) error

	// GetByID retrieves a shop by its id; returns domain.ErrShopNotFound
	// if no record exists
	GetByID(ctx context.Context, shopID string) (*domain.Shop, error)

	// Delete removes a shop record; subsequent lookups must fail
	Delete(ctx context.Context, shopID string) error
}
