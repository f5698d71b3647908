package domain

import "errors"

var (
	// ErrShopNotFound is returned when a tenant lookup finds no shop record.
	// It must never be downgraded to an anonymous default tenant.
	ErrShopNotFound = errors.New("shop not found")

	// ErrTokenMiss signals that the token cache holds no usable token for a
	// shop and the caller must fetch a fresh one.
	ErrTokenMiss = errors.New("no cached token")

	// ErrAuthUnavailable is returned when credential or token resolution
	// failed because the backing store is unreachable.
	ErrAuthUnavailable = errors.New("authentication unavailable")

	// ErrBindingNotFound is returned when a bearer token resolves to no shop.
	ErrBindingNotFound = errors.New("session binding not found")
)
