package main

import (
	"context"
	"os"

	"shopware-admin-mcp/internal/application"
	"shopware-admin-mcp/internal/application/tools"
	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/infrastructure/adminapi"
	"shopware-admin-mcp/internal/infrastructure/kv"
	"shopware-admin-mcp/internal/infrastructure/repository"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Stdio mode: a single shop configured through the environment, the MCP
// protocol spoken over stdin and stdout. All logging goes to stderr so the
// protocol stream stays clean.
func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	apiURL := os.Getenv("SHOPWARE_API_URL")
	clientID := os.Getenv("SHOPWARE_API_CLIENT_ID")
	clientSecret := os.Getenv("SHOPWARE_API_CLIENT_SECRET")

	missing := []string{}
	if apiURL == "" {
		missing = append(missing, "SHOPWARE_API_URL")
	}
	if clientID == "" {
		missing = append(missing, "SHOPWARE_API_CLIENT_ID")
	}
	if clientSecret == "" {
		missing = append(missing, "SHOPWARE_API_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		logger.Fatal().Strs("variables", missing).Msg("Missing required environment variables")
	}

	shop := &domain.Shop{
		ID:           "static-id",
		ShopURL:      apiURL,
		ShopSecret:   "shop-secret",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Active:       true,
	}

	registry := application.NewClientRegistry(repository.NewStaticShopRepository(shop), kv.NewMemoryStore(), logger)
	resolve := func(ctx context.Context) (*adminapi.Client, error) {
		return registry.GetClient(ctx, shop.ID)
	}

	s := server.NewMCPServer("ShopwareAdminAPI", "1.0.0", server.WithToolCapabilities(false))
	tools.Register(s, resolve, logger)

	if err := server.ServeStdio(s); err != nil {
		logger.Fatal().Err(err).Msg("Server terminated")
	}
}
