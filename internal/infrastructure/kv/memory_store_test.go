package kv

import (
	"context"
	"testing"
	"time"

	"shopware-admin-mcp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCacheMissOnUnknownShop(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetToken(context.Background(), "shop-1")
	assert.ErrorIs(t, err, domain.ErrTokenMiss)
}

func TestTokenCacheRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "shop-1", "token-1", time.Minute))

	token, err := store.GetToken(ctx, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// Tokens are cached per shop.
	_, err = store.GetToken(ctx, "shop-2")
	assert.ErrorIs(t, err, domain.ErrTokenMiss)
}

func TestExpiredTokenIsAMiss(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "shop-1", "token-1", -time.Second))

	_, err := store.GetToken(ctx, "shop-1")
	assert.ErrorIs(t, err, domain.ErrTokenMiss)
}

func TestBindingLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateBinding(ctx, "shop-1", "bearer-1"))

	shopID, err := store.ResolveToken(ctx, "bearer-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", shopID)

	token, err := store.TokenForShop(ctx, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "bearer-1", token)

	require.NoError(t, store.DeleteBinding(ctx, "shop-1"))

	_, err = store.ResolveToken(ctx, "bearer-1")
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)
	_, err = store.TokenForShop(ctx, "shop-1")
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)
}

func TestDeleteBindingOfUnknownShopIsANoOp(t *testing.T) {
	store := NewMemoryStore()

	assert.NoError(t, store.DeleteBinding(context.Background(), "unknown"))
}

func TestRebindingReplacesToken(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateBinding(ctx, "shop-1", "bearer-old"))
	require.NoError(t, store.CreateBinding(ctx, "shop-1", "bearer-new"))

	token, err := store.TokenForShop(ctx, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "bearer-new", token)
}

func TestAuthorizationCodeIsSingleUse(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.PutCode(ctx, "code-1", "shop-1", time.Minute))

	shopID, err := store.TakeCode(ctx, "code-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", shopID)

	_, err = store.TakeCode(ctx, "code-1")
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)
}

func TestExpiredCodeIsRejected(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.PutCode(ctx, "code-1", "shop-1", -time.Second))

	_, err := store.TakeCode(ctx, "code-1")
	assert.ErrorIs(t, err, domain.ErrBindingNotFound)
}
