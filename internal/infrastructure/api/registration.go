package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shopware-admin-mcp/internal/domain"
)

// registrationResponse is the handshake reply the shop expects: a proof that
// this app knows the shared app secret, the secret all further requests from
// the shop will be signed with, and where to send the credentials.
type registrationResponse struct {
	Proof           string `json:"proof"`
	Secret          string `json:"secret"`
	ConfirmationURL string `json:"confirmation_url"`
}

// confirmationRequest carries the Admin API credentials the shop created for
// this app.
type confirmationRequest struct {
	APIKey    string `json:"apiKey"`
	SecretKey string `json:"secretKey"`
	Timestamp string `json:"timestamp"`
	ShopURL   string `json:"shopUrl"`
	ShopID    string `json:"shopId"`
}

// register handles the first leg of the app installation handshake. The shop
// signs the query string with the app secret; the reply proves possession of
// the same secret and hands out a fresh per-shop secret.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	shopID := query.Get("shop-id")
	shopURL := query.Get("shop-url")
	timestamp := query.Get("timestamp")

	if shopID == "" || shopURL == "" || timestamp == "" {
		http.Error(w, "Missing registration parameters", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get(HeaderAppSignature)
	if err := VerifySignature(h.app.Secret, []byte(r.URL.RawQuery), signature); err != nil {
		h.logger.Warn().Str("shop", shopID).Msg("Registration signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	shopSecret, err := generateSecret()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate shop secret")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	shop := &domain.Shop{
		ID:         shopID,
		ShopURL:    shopURL,
		ShopSecret: shopSecret,
	}
	if err := h.shops.Save(r.Context(), shop); err != nil {
		h.logger.Error().Err(err).Str("shop", shopID).Msg("Failed to store shop record")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info().Str("shop", shopID).Str("shopUrl", shopURL).Msg("Shop registered")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(registrationResponse{
		Proof:           SignPayload(h.app.Secret, []byte(shopID+shopURL+h.app.Name)),
		Secret:          shopSecret,
		ConfirmationURL: h.app.URL + "/app/register/confirm",
	})
}

// registerConfirm handles the second leg: the shop delivers the Admin API
// credentials, signed with the shop secret issued during registration.
func (h *Handler) registerConfirm(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	var req confirmationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if req.ShopID == "" || req.APIKey == "" || req.SecretKey == "" {
		http.Error(w, "Missing confirmation parameters", http.StatusBadRequest)
		return
	}

	shop, err := h.shops.GetByID(r.Context(), req.ShopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			http.Error(w, "Unknown shop", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("shop", req.ShopID).Msg("Failed to load shop record")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	signature := r.Header.Get(HeaderShopSignature)
	if err := VerifySignature(shop.ShopSecret, body, signature); err != nil {
		h.logger.Warn().Str("shop", req.ShopID).Msg("Confirmation signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	shop.ClientID = req.APIKey
	shop.ClientSecret = req.SecretKey
	if req.ShopURL != "" {
		shop.ShopURL = req.ShopURL
	}
	if err := h.shops.Save(r.Context(), shop); err != nil {
		h.logger.Error().Err(err).Str("shop", req.ShopID).Msg("Failed to store credentials")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info().Str("shop", req.ShopID).Msg("Shop credentials confirmed")
	w.WriteHeader(http.StatusNoContent)
}

func generateSecret() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
