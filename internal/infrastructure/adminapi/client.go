package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/ports"

	"github.com/rs/zerolog"
)

// tokenExpiryMargin is subtracted from the advertised token lifetime so a
// token is never used right at its expiry boundary.
const tokenExpiryMargin = 60 * time.Second

// Client is a tenant-scoped Admin API handle. It bundles the shop's base URL
// and credentials with the shared token cache and is safe for concurrent use.
type Client struct {
	shop       *domain.Shop
	tokens     ports.TokenStore
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client bound to one shop's credentials.
func NewClient(shop *domain.Shop, tokens ports.TokenStore, logger zerolog.Logger) *Client {
	return &Client{
		shop:       shop,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// ShopID returns the id of the shop this client is bound to.
func (c *Client) ShopID() string {
	return c.shop.ID
}

// apiURL joins a path relative to the shop's /api root.
func (c *Client) apiURL(path string) string {
	return strings.TrimSuffix(c.shop.ShopURL, "/") + "/api/" + strings.TrimPrefix(path, "/")
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached token or fetches a fresh one from the shop's
// token endpoint. Concurrent refreshes for the same shop are resolved
// last-writer-wins; tokens are interchangeable while valid.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	token, err := c.tokens.GetToken(ctx, c.shop.ID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, domain.ErrTokenMiss) {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthUnavailable, err)
	}
	return c.fetchToken(ctx)
}

// fetchToken obtains a new access token via the client-credentials grant and
// stores it in the token cache before returning it.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.shop.ClientID,
		"client_secret": c.shop.ClientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("oauth/token"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(raw))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	ttl := time.Duration(tr.ExpiresIn)*time.Second - tokenExpiryMargin
	if ttl > 0 {
		if err := c.tokens.SetToken(ctx, c.shop.ID, tr.AccessToken, ttl); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrAuthUnavailable, err)
		}
	}

	c.logger.Debug().Str("shop", c.shop.ID).Msg("Fetched fresh access token")
	return tr.AccessToken, nil
}

// Response is the raw outcome of an Admin API request.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// DecodeInto unmarshals the response body into v.
func (r *Response) DecodeInto(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// ErrorDetail is one entry of the Admin API error envelope.
type ErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// APIError carries a rejected request's status and the backend's error list.
type APIError struct {
	Status int           `json:"status"`
	Errors []ErrorDetail `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("admin api returned status %d: %s: %s", e.Status, e.Errors[0].Title, e.Errors[0].Detail)
	}
	return fmt.Sprintf("admin api returned status %d", e.Status)
}

// Request executes an authenticated Admin API call. The path is relative to
// the shop's /api root. A 401 is retried once with a freshly fetched token.
func (c *Client) Request(ctx context.Context, method string, path string, body any, opts ...*Context) (*Response, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, path, body, token, opts)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		token, err = c.fetchToken(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.do(ctx, method, path, body, token, opts)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if len(resp.Body) > 0 {
			_ = json.Unmarshal(resp.Body, apiErr)
			apiErr.Status = resp.StatusCode
		}
		return nil, apiErr
	}

	return resp, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any, token string, opts []*Context) (*Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt.apply(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// Get executes an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...*Context) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, opts...)
}

// Post executes an authenticated POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...*Context) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, opts...)
}

// Patch executes an authenticated PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...*Context) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, path, body, opts...)
}
