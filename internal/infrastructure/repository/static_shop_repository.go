package repository

import (
	"context"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/ports"
)

// StaticShopRepository serves a single fixed shop, the stdio deployment where
// credentials come from the process environment.
type StaticShopRepository struct {
	shop *domain.Shop
}

// NewStaticShopRepository wraps one shop record.
func NewStaticShopRepository(shop *domain.Shop) ports.ShopRepository {
	return &StaticShopRepository{shop: shop}
}

// Save is not supported; the record is fixed for the process lifetime.
func (r *StaticShopRepository) Save(_ context.Context, _ *domain.Shop) error {
	return nil
}

// GetByID returns the fixed shop for its id, ErrShopNotFound otherwise.
func (r *StaticShopRepository) GetByID(_ context.Context, shopID string) (*domain.Shop, error) {
	if shopID != r.shop.ID {
		return nil, domain.ErrShopNotFound
	}
	return r.shop, nil
}

// Delete is not supported; the record is fixed for the process lifetime.
func (r *StaticShopRepository) Delete(_ context.Context, _ string) error {
	return nil
}
