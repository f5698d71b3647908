package domain

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const shopIDKey contextKey = "shop_id"

// WithShopID returns a context carrying the authenticated shop id.
func WithShopID(ctx context.Context, shopID string) context.Context {
	return context.WithValue(ctx, shopIDKey, shopID)
}

// ShopIDFromContext extracts the shop id from the context, or "" if the
// request was not bound to a tenant.
func ShopIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(shopIDKey).(string); ok {
		return v
	}
	return ""
}
