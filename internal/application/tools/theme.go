package tools

import (
	"context"
	"fmt"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

func registerThemeTools(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	s.AddTool(mcp.NewTool("theme_config_get",
		mcp.WithDescription("Get the theme configuration of a sales channel"),
		mcp.WithString("salesChannelId", mcp.Required(), mcp.Description("The ID of the sales channel the theme is assigned to")),
	), handle("theme_config_get", resolve, logger, themeConfigGet))

	s.AddTool(mcp.NewTool("theme_config_change",
		mcp.WithDescription("Change the color scheme of a theme"),
		mcp.WithString("themeId", mcp.Required(), mcp.Description("The ID of the theme to change")),
		mcp.WithString("primaryColor", mcp.Description("The primary brand color as hex value"), mcp.DefaultString("#7a9ccd")),
		mcp.WithString("secondaryColor", mcp.Description("The secondary brand color as hex value"), mcp.DefaultString("#7a9ccd")),
		mcp.WithString("backgroundColor", mcp.Description("The background color as hex value"), mcp.DefaultString("#ffffff")),
	), handle("theme_config_change", resolve, logger, themeConfigChange))
}

func themeConfigGet(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	salesChannelID, err := requireString(args, "salesChannelId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	themeRepo := adminapi.NewRepository[map[string]any](client, "theme")

	criteria := adminapi.NewCriteria()
	criteria.AddFields("id", "name", "configValues")
	criteria.AddFilter(adminapi.Equals("salesChannels.id", salesChannelID))

	themes, err := themeRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	theme, ok := themes.First()
	if !ok {
		return mcp.NewToolResultError("No theme found for the given sales channel"), nil
	}

	return serializedResult(theme)
}

func themeConfigChange(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	themeID, err := requireString(args, "themeId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	primary, ok := stringArg(args, "primaryColor")
	if !ok {
		primary = "#7a9ccd"
	}
	secondary, ok := stringArg(args, "secondaryColor")
	if !ok {
		secondary = "#7a9ccd"
	}
	background, ok := stringArg(args, "backgroundColor")
	if !ok {
		background = "#ffffff"
	}

	payload := map[string]any{
		"config": map[string]any{
			"sw-color-brand-primary":   map[string]any{"value": primary},
			"sw-color-brand-secondary": map[string]any{"value": secondary},
			"sw-background-color":      map[string]any{"value": background},
		},
	}

	path := fmt.Sprintf("_action/theme/%s?reset=true&validate=true", themeID)
	if _, err := client.Patch(ctx, path, payload); err != nil {
		return serializeError("Error changing theme config: ", err), nil
	}

	return mcp.NewToolResultText("Changed the theme color, it may take a few minutes until the changes are visible."), nil
}
