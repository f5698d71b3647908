package api

import (
	"shopware-admin-mcp/internal/application"
	"shopware-admin-mcp/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AppConfig carries the app manifest identity: the name and secret the shop
// knows the app under, and the public base URL the app is reachable at.
type AppConfig struct {
	Name   string
	Secret string
	URL    string
}

// Handler bundles the app lifecycle and authorization endpoints of the
// server mode.
type Handler struct {
	app       AppConfig
	shops     ports.ShopRepository
	auth      *application.AuthService
	lifecycle *application.Lifecycle
	logger    zerolog.Logger
}

// NewHandler creates the endpoint handler.
func NewHandler(app AppConfig, shops ports.ShopRepository, auth *application.AuthService, lifecycle *application.Lifecycle, logger zerolog.Logger) *Handler {
	return &Handler{
		app:       app,
		shops:     shops,
		auth:      auth,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Routes mounts all endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/app/register", h.register)
	r.Post("/app/register/confirm", h.registerConfirm)
	r.Post("/app/activate", h.appActivate)
	r.Post("/app/deactivate", h.appDeactivate)
	r.Get("/app/iframe", h.iframe)
	r.Get("/authorize", h.authorizeForm)
	r.Post("/authorize", h.authorizeSubmit)
	r.Post("/oauth/token", h.token)
}
