package api

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"shopware-admin-mcp/internal/domain"
)

var iframeTemplate = template.Must(template.New("iframe").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Shopware MCP Server Configuration</title>
	<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.7/dist/css/bootstrap.min.css" rel="stylesheet">
</head>
<body class="bg-light">
	<div class="container-fluid py-4">
		<div class="card shadow-sm mb-4">
			<div class="card-header bg-primary text-white">
				<h5 class="card-title mb-0">MCP Server Configuration</h5>
			</div>
			<div class="card-body">
				<div class="mb-3">
					<label class="form-label fw-bold">MCP Server URL:</label>
					<div class="input-group">
						<input type="text" class="form-control" value="{{.ServerURL}}" readonly>
					</div>
				</div>
				<div class="mb-3">
					<label class="form-label fw-bold">Authorization Token:</label>
					<div class="input-group">
						<input type="text" class="form-control" value="{{.Token}}" readonly>
					</div>
				</div>
				<div class="alert alert-info">
					<strong>HTTP Transport:</strong> Use the URL and token above in your MCP client configuration.
				</div>
			</div>
		</div>
	</div>
	<script>
	window.parent.postMessage('sw-app-loaded', '*');
	</script>
</body>
</html>`))

// iframe serves the configuration page embedded in the shop administration.
// The request is signed with the shop secret as a trailing query parameter.
func (h *Handler) iframe(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop-id")
	if shopID == "" {
		http.Error(w, "Missing shop-id", http.StatusBadRequest)
		return
	}

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

	// The signature is appended as the last query parameter and covers
	// everything before it.
	signed, signature, ok := strings.Cut(r.URL.RawQuery, "&"+HeaderShopSignature+"=")
	if !ok {
		http.Error(w, "Missing signature", http.StatusUnauthorized)
		return
	}
	if err := VerifySignature(shop.ShopSecret, []byte(signed), signature); err != nil {
		h.logger.Warn().Str("shop", shopID).Msg("Iframe signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	token, err := h.auth.ConfigToken(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, domain.ErrBindingNotFound) {
			http.Error(w, "App is not activated for this shop", http.StatusConflict)
			return
		}
		h.logger.Error().Err(err).Str("shop", shopID).Msg("Failed to load session binding")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	data := struct {
		ServerURL string
		Token     string
	}{
		ServerURL: h.app.URL + "/mcp",
		Token:     token,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := iframeTemplate.Execute(w, data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render configuration page")
	}
}
