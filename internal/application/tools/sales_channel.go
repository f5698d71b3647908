package tools

import (
	"context"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

func registerSalesChannelTools(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	s.AddTool(mcp.NewTool("sales_channel_list",
		mcp.WithDescription("List storefront sales channels with their domains and theme"),
	), handle("sales_channel_list", resolve, logger, salesChannelList))

	s.AddTool(mcp.NewTool("sales_channel_update",
		mcp.WithDescription("Update a sales channel's active or maintenance state"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the sales channel to update")),
		mcp.WithBoolean("active", mcp.Description("Set the sales channel active or inactive")),
		mcp.WithBoolean("maintenance", mcp.Description("Set the sales channel in maintenance mode or not")),
	), handle("sales_channel_update", resolve, logger, salesChannelUpdate))
}

func salesChannelList(ctx context.Context, client *adminapi.Client, _ map[string]any) (*mcp.CallToolResult, error) {
	salesChannelRepo := adminapi.NewRepository[map[string]any](client, "sales_channel")

	criteria := adminapi.NewCriteria()
	criteria.AddFields(
		"id",
		"active",
		"name",
		"maintenance",
		"navigationCategoryId",
		"domains.url",
		"themes.id",
	)
	criteria.AddFilter(adminapi.Equals("typeId", adminapi.SalesChannelTypeStorefront))
	criteria.AddAssociation("domains")

	salesChannels, err := salesChannelRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	// The assigned theme only surfaces through the themes extension, which
	// the reducer strips; lift its id out first.
	for _, channel := range salesChannels.Data {
		delete(channel, "translated")

		if extensions, ok := channel["extensions"].(map[string]any); ok {
			if themes, ok := extensions["themes"].([]any); ok && len(themes) > 0 {
				if theme, ok := themes[0].(map[string]any); ok {
					channel["themeId"] = theme["id"]
				}
			}
		}
		delete(channel, "extensions")
		delete(channel, "themes")
	}

	return serializedResult(map[string]any{"total": salesChannels.Total, "data": salesChannels.Data})
}

func salesChannelUpdate(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := map[string]any{"id": id}
	if active, ok := boolArg(args, "active"); ok {
		payload["active"] = active
	}
	if maintenance, ok := boolArg(args, "maintenance"); ok {
		payload["maintenance"] = maintenance
	}

	salesChannelRepo := adminapi.NewRepository[map[string]any](client, "sales_channel")
	if err := salesChannelRepo.Upsert(ctx, []map[string]any{payload}); err != nil {
		return serializeError("Error updating sales channel: ", err), nil
	}

	return mcp.NewToolResultText("Sales channel updated successfully"), nil
}
