package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// codeLifetime bounds how long an issued authorization code stays valid.
const codeLifetime = 5 * time.Minute

// AuthService owns the session bindings of the edge-hosted mode: the opaque
// bearer tokens MCP clients authenticate with, and the short-lived codes of
// the authorization exchange.
type AuthService struct {
	bindings ports.BindingStore
	logger   zerolog.Logger
}

// NewAuthService creates an auth service on the shared binding store.
func NewAuthService(bindings ports.BindingStore, logger zerolog.Logger) *AuthService {
	return &AuthService{bindings: bindings, logger: logger}
}

// ResolveBearer returns the shop id bound to a bearer token.
func (s *AuthService) ResolveBearer(ctx context.Context, token string) (string, error) {
	return s.bindings.ResolveToken(ctx, token)
}

// ConfigToken returns the bearer token currently bound to a shop, shown on
// the configuration page for manual client setup.
func (s *AuthService) ConfigToken(ctx context.Context, shopID string) (string, error) {
	return s.bindings.TokenForShop(ctx, shopID)
}

// IssueCode creates a single-use authorization code for a shop.
func (s *AuthService) IssueCode(ctx context.Context, shopID string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate authorization code: %w", err)
	}
	code := hex.EncodeToString(raw)

	if err := s.bindings.PutCode(ctx, code, shopID, codeLifetime); err != nil {
		return "", err
	}
	return code, nil
}

// ExchangeCode consumes an authorization code and returns the shop's bearer
// token as the session credential.
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	shopID, err := s.bindings.TakeCode(ctx, code)
	if err != nil {
		return "", err
	}
	return s.bindings.TokenForShop(ctx, shopID)
}

// OnActivate is the lifecycle handler creating a fresh binding pair when a
// shop activates the app.
func (s *AuthService) OnActivate(ctx context.Context, event domain.LifecycleEvent) error {
	token := base64.StdEncoding.EncodeToString([]byte(uuid.NewString()))

	if err := s.bindings.CreateBinding(ctx, event.Shop.ID, token); err != nil {
		return err
	}

	s.logger.Info().Str("shop", event.Shop.ID).Msg("Created session binding")
	return nil
}

// OnDeactivate is the lifecycle handler revoking a shop's binding pair.
func (s *AuthService) OnDeactivate(ctx context.Context, event domain.LifecycleEvent) error {
	if err := s.bindings.DeleteBinding(ctx, event.Shop.ID); err != nil {
		return err
	}

	s.logger.Info().Str("shop", event.Shop.ID).Msg("Revoked session binding")
	return nil
}
