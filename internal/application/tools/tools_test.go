package tools

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/infrastructure/adminapi"
	"shopware-admin-mcp/internal/infrastructure/kv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// recordedRequest is one call the fake backend received, token fetches
// excluded.
type recordedRequest struct {
	Method   string
	Path     string
	Query    string
	Language string
	Body     []byte
}

// fakeAdmin simulates the Admin API: it issues tokens, answers searches,
// tracks tax records written through sync batches and can be primed to
// reject the next write.
type fakeAdmin struct {
	mu       sync.Mutex
	requests []recordedRequest
	taxes    map[string]float64 // tax id -> rate
	searches map[string]string  // entity -> canned search response

	failStatus int
	failBody   string
}

type syncStep struct {
	Entity  string           `json:"entity"`
	Action  string           `json:"action"`
	Payload []map[string]any `json:"payload"`
}

func (f *fakeAdmin) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/oauth/token" {
			json.NewEncoder(w).Encode(map[string]any{"access_token": "t", "expires_in": 600})
			return
		}

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.RawQuery,
			Language: r.Header.Get("sw-language-id"),
			Body:     body,
		})

		if f.failStatus != 0 {
			status, failBody := f.failStatus, f.failBody
			f.failStatus, f.failBody = 0, ""
			w.WriteHeader(status)
			w.Write([]byte(failBody))
			return
		}

		switch {
		case r.URL.Path == "/api/search-ids/tax":
			var criteria struct {
				Filter []adminapi.Filter `json:"filter"`
			}
			require.NoError(t, json.Unmarshal(body, &criteria))
			require.Len(t, criteria.Filter, 1)
			rate, _ := criteria.Filter[0].Value.(float64)

			ids := []string{}
			for id, taxRate := range f.taxes {
				if taxRate == rate {
					ids = append(ids, id)
				}
			}
			json.NewEncoder(w).Encode(map[string]any{"total": len(ids), "data": ids})

		case r.URL.Path == "/api/_action/sync":
			var steps map[string]syncStep
			require.NoError(t, json.Unmarshal(body, &steps))
			for _, step := range steps {
				if step.Entity == "tax" && step.Action == adminapi.SyncActionUpsert {
					for _, payload := range step.Payload {
						id, _ := payload["id"].(string)
						rate, _ := payload["taxRate"].(float64)
						f.taxes[id] = rate
					}
				}
			}
			w.Write([]byte(`{}`))

		default:
			if canned, ok := f.searches[r.URL.Path]; ok {
				w.Write([]byte(canned))
				return
			}
			w.Write([]byte(`{"total":0,"data":[]}`))
		}
	}
}

// failNext primes the backend to reject the next request with the given
// status and error envelope.
func (f *fakeAdmin) failNext(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
	f.failBody = body
}

// recorded returns all requests matching the path, in arrival order.
func (f *fakeAdmin) recorded(path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []recordedRequest
	for _, req := range f.requests {
		if req.Path == path {
			matched = append(matched, req)
		}
	}
	return matched
}

// newToolClient spins up a fake backend and a client bound to it.
func newToolClient(t *testing.T) (*adminapi.Client, *fakeAdmin) {
	fake := &fakeAdmin{
		taxes:    make(map[string]float64),
		searches: make(map[string]string),
	}
	backend := httptest.NewServer(fake.handler(t))
	t.Cleanup(backend.Close)

	shop := &domain.Shop{
		ID:           "shop-1",
		ShopURL:      backend.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Active:       true,
	}
	return adminapi.NewClient(shop, kv.NewMemoryStore(), zerolog.Nop()), fake
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}
