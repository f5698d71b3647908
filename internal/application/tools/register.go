package tools

import (
	"context"
	"errors"
	"time"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/infrastructure/adminapi"
	"shopware-admin-mcp/internal/infrastructure/metrics"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// ClientResolver yields the Admin API client of the tenant an invocation
// belongs to. The stdio mode returns a fixed client; the server mode
// resolves the tenant bound to the session in the context.
type ClientResolver func(ctx context.Context) (*adminapi.Client, error)

// Register wires the full tool surface onto an MCP server.
func Register(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	registerGeneralTools(s, resolve, logger)
	registerSalesChannelTools(s, resolve, logger)
	registerThemeTools(s, resolve, logger)
	registerMediaTools(s, resolve, logger)
	registerCategoryTools(s, resolve, logger)
	registerProductTools(s, resolve, logger)
	registerOrderTools(s, resolve, logger)
}

// toolFunc is the shape of one tool operation after the client has been
// resolved.
type toolFunc func(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error)

// handle wraps a tool operation with tenant resolution, metrics and error
// shaping. Every failure becomes a textual result; the protocol layer never
// sees an unhandled fault.
func handle(name string, resolve ClientResolver, logger zerolog.Logger, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		client, err := resolve(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("tool", name).Msg("Tenant resolution failed")
			metrics.ObserveToolCall(name, "auth_unavailable", time.Since(start))
			if errors.Is(err, domain.ErrShopNotFound) || errors.Is(err, domain.ErrBindingNotFound) {
				return mcp.NewToolResultError("no shop is bound to this session"), nil
			}
			return mcp.NewToolResultError("authentication unavailable: " + err.Error()), nil
		}

		result, err := fn(ctx, client, req.GetArguments())
		if err != nil {
			logger.Error().Err(err).Str("tool", name).Str("shop", client.ShopID()).Msg("Tool invocation failed")
			metrics.ObserveToolCall(name, "error", time.Since(start))
			return mcp.NewToolResultError(err.Error()), nil
		}

		outcome := "ok"
		if result.IsError {
			outcome = "error"
		}
		metrics.ObserveToolCall(name, outcome, time.Since(start))
		return result, nil
	}
}

// serializedResult reduces a response value and wraps its JSON encoding in a
// text result.
func serializedResult(value any) (*mcp.CallToolResult, error) {
	text, err := adminapi.SerializeLLM(value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// serializeError renders a backend rejection as response text, embedding the
// error payload when the backend sent one.
func serializeError(prefix string, err error) *mcp.CallToolResult {
	var apiErr *adminapi.APIError
	if errors.As(err, &apiErr) {
		if text, serr := adminapi.SerializeLLM(apiErr); serr == nil {
			return mcp.NewToolResultError(prefix + text)
		}
	}
	return mcp.NewToolResultError(prefix + err.Error())
}
