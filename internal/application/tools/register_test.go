package tools

import (
	"context"
	"errors"
	"testing"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "test_tool"
	req.Params.Arguments = args
	return req
}

func TestHandleUnboundSessionBecomesTextualError(t *testing.T) {
	for _, resolveErr := range []error{domain.ErrBindingNotFound, domain.ErrShopNotFound} {
		handler := handle("test_tool", func(context.Context) (*adminapi.Client, error) {
			return nil, resolveErr
		}, zerolog.Nop(), func(context.Context, *adminapi.Client, map[string]any) (*mcp.CallToolResult, error) {
			t.Fatal("tool body must not run without a client")
			return nil, nil
		})

		result, err := handler(context.Background(), callRequest(nil))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "no shop is bound to this session", resultText(t, result))
	}
}

func TestHandleAuthOutageIsReported(t *testing.T) {
	handler := handle("test_tool", func(context.Context) (*adminapi.Client, error) {
		return nil, errors.New("kv unreachable")
	}, zerolog.Nop(), func(context.Context, *adminapi.Client, map[string]any) (*mcp.CallToolResult, error) {
		return nil, nil
	})

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "authentication unavailable")
}

func TestHandleToolFailureNeverFaults(t *testing.T) {
	client, _ := newToolClient(t)
	handler := handle("test_tool", func(context.Context) (*adminapi.Client, error) {
		return client, nil
	}, zerolog.Nop(), func(context.Context, *adminapi.Client, map[string]any) (*mcp.CallToolResult, error) {
		return nil, errors.New("backend unreachable")
	})

	result, err := handler(context.Background(), callRequest(map[string]any{"id": "x"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "backend unreachable")
}

func TestHandlePassesArgumentsThrough(t *testing.T) {
	client, _ := newToolClient(t)
	var got map[string]any
	handler := handle("test_tool", func(context.Context) (*adminapi.Client, error) {
		return client, nil
	}, zerolog.Nop(), func(_ context.Context, _ *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
		got = args
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), callRequest(map[string]any{"id": "p1"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, map[string]any{"id": "p1"}, got)
}
