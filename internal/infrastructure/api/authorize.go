package api

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"shopware-admin-mcp/internal/domain"
)

var authorizeTemplate = template.Must(template.New("authorize").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Shopware MCP - Authorize</title>
	<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.7/dist/css/bootstrap.min.css" rel="stylesheet">
</head>
<body>
	<div class="container">
		<div class="row justify-content-center">
			<div class="col-md-6">
				<div class="card mt-5">
					<div class="card-body">
						<h1 class="card-title text-center mb-4">Authorize Access</h1>
						<p class="text-muted text-center mb-4">Enter your token to authenticate</p>
						<form method="POST">
							<div class="mb-3">
								<label for="token" class="form-label">Token</label>
								<input type="text" class="form-control" id="token" name="token" placeholder="Enter your token" required />
							</div>
							<input type="hidden" name="redirect_uri" value="{{.RedirectURI}}" />
							<input type="hidden" name="state" value="{{.State}}" />
							<div class="d-grid">
								<button type="submit" class="btn btn-primary">Authorize</button>
							</div>
						</form>
					</div>
				</div>
			</div>
		</div>
	</div>
</body>
</html>`))

// authorizeForm renders the token entry form, carrying the client's redirect
// target and state through as hidden fields.
func (h *Handler) authorizeForm(w http.ResponseWriter, r *http.Request) {
	data := struct {
		RedirectURI string
		State       string
	}{
		RedirectURI: r.URL.Query().Get("redirect_uri"),
		State:       r.URL.Query().Get("state"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := authorizeTemplate.Execute(w, data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render authorize form")
	}
}

// authorizeSubmit validates the submitted bearer token, issues a single-use
// code for the bound shop and redirects back to the client.
func (h *Handler) authorizeSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	token := r.PostFormValue("token")
	redirectURI := r.PostFormValue("redirect_uri")
	if token == "" || redirectURI == "" {
		http.Error(w, "Missing token or redirect_uri", http.StatusBadRequest)
		return
	}

	shopID, err := h.auth.ResolveBearer(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrBindingNotFound) {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to resolve bearer token")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	code, err := h.auth.IssueCode(r.Context(), shopID)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shopID).Msg("Failed to issue authorization code")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	target, err := url.Parse(redirectURI)
	if err != nil {
		http.Error(w, "Invalid redirect_uri", http.StatusBadRequest)
		return
	}
	params := target.Query()
	params.Set("code", code)
	if state := r.PostFormValue("state"); state != "" {
		params.Set("state", state)
	}
	target.RawQuery = params.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

// token exchanges an authorization code for the shop's bearer token.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	code := r.PostFormValue("code")
	if code == "" {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	accessToken, err := h.auth.ExchangeCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrBindingNotFound) {
			writeOAuthError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
		h.logger.Error().Err(err).Msg("Failed to exchange authorization code")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

func writeOAuthError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": code})
}
