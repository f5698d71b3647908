package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"shopware-admin-mcp/internal/application"
	"shopware-admin-mcp/internal/application/tools"
	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/infrastructure/adminapi"
	apiinfra "shopware-admin-mcp/internal/infrastructure/api"
	"shopware-admin-mcp/internal/infrastructure/kv"
	"shopware-admin-mcp/internal/infrastructure/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server mode: multi-tenant, shops arrive through the app registration
// handshake, MCP is served over the streamable HTTP transport behind
// bearer-token sessions.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	appName := os.Getenv("APP_NAME")
	if appName == "" {
		appName = "SwagAdminMCP"
	}

	appSecret := os.Getenv("APP_SECRET")
	if appSecret == "" {
		logger.Fatal().Msg("APP_SECRET environment variable is required")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()

	store := kv.NewRedisStore(rdb)
	shopRepo := repository.NewMongoShopRepository(db)

	registry := application.NewClientRegistry(shopRepo, store, logger)
	authService := application.NewAuthService(store, logger)

	lifecycle := application.NewLifecycle(logger)
	lifecycle.On(domain.EventActivate, authService.OnActivate)
	lifecycle.On(domain.EventDeactivate, authService.OnDeactivate)
	lifecycle.On(domain.EventDeactivate, func(_ context.Context, event domain.LifecycleEvent) error {
		registry.Forget(event.Shop.ID)
		return nil
	})

	apiHandler := apiinfra.NewHandler(apiinfra.AppConfig{
		Name:   appName,
		Secret: appSecret,
		URL:    appURL,
	}, shopRepo, authService, lifecycle, logger)

	// MCP server with per-request tenant resolution
	mcpServer := server.NewMCPServer("ShopwareAdminAPI", "1.0.0", server.WithToolCapabilities(false))
	tools.Register(mcpServer, func(ctx context.Context) (*adminapi.Client, error) {
		shopID := domain.ShopIDFromContext(ctx)
		if shopID == "" {
			return nil, domain.ErrBindingNotFound
		}
		return registry.GetClient(ctx, shopID)
	}, logger)

	streamable := server.NewStreamableHTTPServer(mcpServer,
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				return ctx
			}
			shopID, err := authService.ResolveBearer(ctx, token)
			if err != nil {
				return ctx
			}
			return domain.WithShopID(ctx, shopID)
		}),
	)

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	apiHandler.Routes(r)
	r.Handle("/mcp", streamable)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting MCP server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
