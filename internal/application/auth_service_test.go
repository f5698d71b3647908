package application

import (
	"context"
	"testing"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/infrastructure/kv"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivationCreatesResolvableBinding(t *testing.T) {
	store := kv.NewMemoryStore()
	service := NewAuthService(store, zerolog.Nop())
	ctx := context.Background()

	event := domain.LifecycleEvent{Kind: domain.EventActivate, Shop: testShop("shop-1")}
	require.NoError(t, service.OnActivate(ctx, event))

	token, err := service.ConfigToken(ctx, "shop-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	shopID, err := service.ResolveBearer(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "shop-1", shopID)
}

func TestDeactivationRevokesBinding(t *testing.T) {
	store := kv.NewMemoryStore()
	service := NewAuthService(store, zerolog.Nop())
	ctx := context.Background()

	shop := testShop("shop-1")
	require.NoError(t, service.OnActivate(ctx, domain.LifecycleEvent{Kind: domain.EventActivate, Shop: shop}))

	token, err := service.ConfigToken(ctx, "shop-1")
	require.NoError(t, err)

	require.NoError(t, service.OnDeactivate(ctx, domain.LifecycleEvent{Kind: domain.EventDeactivate, Shop: shop}))

	_, err = service.ResolveBearer(ctx, token)
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)
	_, err = service.ConfigToken(ctx, "shop-1")
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)
}

func TestCodeExchangeYieldsBearerToken(t *testing.T) {
	store := kv.NewMemoryStore()
	service := NewAuthService(store, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, service.OnActivate(ctx, domain.LifecycleEvent{Kind: domain.EventActivate, Shop: testShop("shop-1")}))

	code, err := service.IssueCode(ctx, "shop-1")
	require.NoError(t, err)

	token, err := service.ExchangeCode(ctx, code)
	require.NoError(t, err)

	expected, err := service.ConfigToken(ctx, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, expected, token)

	// Codes are single use.
	_, err = service.ExchangeCode(ctx, code)
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)
}

func TestLifecycleDispatchRunsHandlersInOrder(t *testing.T) {
	lifecycle := NewLifecycle(zerolog.Nop())
	var order []string
	lifecycle.On(domain.EventActivate, func(context.Context, domain.LifecycleEvent) error {
		order = append(order, "first")
		return nil
	})
	lifecycle.On(domain.EventActivate, func(context.Context, domain.LifecycleEvent) error {
		order = append(order, "second")
		return nil
	})

	event := domain.LifecycleEvent{Kind: domain.EventActivate, Shop: testShop("shop-1")}
	require.NoError(t, lifecycle.Dispatch(context.Background(), event))
	assert.Equal(t, []string{"first", "second"}, order)
}
