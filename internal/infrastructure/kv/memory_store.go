package kv

import (
	"context"
	"sync"
	"time"

	"shopware-admin-mcp/internal/domain"
)

type tokenEntry struct {
	token     string
	expiresAt time.Time
}

type codeEntry struct {
	shopID    string
	expiresAt time.Time
}

// MemoryStore is an in-process token cache and binding store. It backs the
// stdio mode, where no shared namespace exists, and tests.
type MemoryStore struct {
	mu       sync.Mutex
	tokens   map[string]tokenEntry
	bindings map[string]string // token -> shopID
	reverse  map[string]string // shopID -> token
	codes    map[string]codeEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens:   make(map[string]tokenEntry),
		bindings: make(map[string]string),
		reverse:  make(map[string]string),
		codes:    make(map[string]codeEntry),
	}
}

// GetToken returns the cached access token of a shop, domain.ErrTokenMiss if
// none is cached or it has expired.
func (s *MemoryStore) GetToken(_ context.Context, shopID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[shopID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.tokens, shopID)
		return "", domain.ErrTokenMiss
	}
	return entry.token, nil
}

// SetToken caches an access token with the given lifetime.
func (s *MemoryStore) SetToken(_ context.Context, shopID string, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[shopID] = tokenEntry{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

// CreateBinding stores the forward and reverse entries of a shop's binding.
func (s *MemoryStore) CreateBinding(_ context.Context, shopID string, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bindings[token] = shopID
	s.reverse[shopID] = token
	return nil
}

// ResolveToken resolves a bearer token to its shop id.
func (s *MemoryStore) ResolveToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shopID, ok := s.bindings[token]
	if !ok {
		return "", domain.ErrBindingNotFound
	}
	return shopID, nil
}

// TokenForShop returns the current bearer token bound to a shop.
func (s *MemoryStore) TokenForShop(_ context.Context, shopID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.reverse[shopID]
	if !ok {
		return "", domain.ErrBindingNotFound
	}
	return token, nil
}

// DeleteBinding removes both entries of a shop's binding pair.
func (s *MemoryStore) DeleteBinding(_ context.Context, shopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.reverse[shopID]; ok {
		delete(s.bindings, token)
		delete(s.reverse, shopID)
	}
	return nil
}

// PutCode stores a short-lived authorization code.
func (s *MemoryStore) PutCode(_ context.Context, code string, shopID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[code] = codeEntry{shopID: shopID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// TakeCode resolves and consumes an authorization code.
func (s *MemoryStore) TakeCode(_ context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[code]
	delete(s.codes, code)
	if !ok || time.Now().After(entry.expiresAt) {
		return "", domain.ErrBindingNotFound
	}
	return entry.shopID, nil
}
