package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shopware-admin-mcp/internal/domain"
)

// webhookEnvelope is the body shape of app lifecycle webhooks. Only the
// source block matters here; the payload is event specific and unused.
type webhookEnvelope struct {
	Source struct {
		URL    string `json:"url"`
		ShopID string `json:"shopId"`
	} `json:"source"`
}

func (h *Handler) appActivate(w http.ResponseWriter, r *http.Request) {
	h.handleLifecycleWebhook(w, r, domain.EventActivate)
}

func (h *Handler) appDeactivate(w http.ResponseWriter, r *http.Request) {
	h.handleLifecycleWebhook(w, r, domain.EventDeactivate)
}

// handleLifecycleWebhook verifies the body signature against the shop secret
// and dispatches the event. The shop's active flag tracks the event kind.
func (h *Handler) handleLifecycleWebhook(w http.ResponseWriter, r *http.Request, kind domain.LifecycleEventKind) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Source.ShopID == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	shopID := envelope.Source.ShopID

	shop, err := h.shops.GetByID(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			http.Error(w, "Unknown shop", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("shop", shopID).Msg("Failed to load shop record")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	signature := r.Header.Get(HeaderShopSignature)
	if err := VerifySignature(shop.ShopSecret, body, signature); err != nil {
		h.logger.Warn().Str("shop", shopID).Str("kind", string(kind)).Msg("Webhook signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	shop.Active = kind == domain.EventActivate
	if err := h.shops.Save(r.Context(), shop); err != nil {
		h.logger.Error().Err(err).Str("shop", shopID).Msg("Failed to update shop record")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.lifecycle.Dispatch(r.Context(), domain.LifecycleEvent{Kind: kind, Shop: shop}); err != nil {
		h.logger.Error().Err(err).Str("shop", shopID).Str("kind", string(kind)).Msg("Lifecycle dispatch failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
