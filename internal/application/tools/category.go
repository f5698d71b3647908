package tools

import (
	"context"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

func registerCategoryTools(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	s.AddTool(mcp.NewTool("category_list",
		mcp.WithDescription("List categories of the shop"),
	), handle("category_list", resolve, logger, categoryList))

	s.AddTool(mcp.NewTool("category_create",
		mcp.WithDescription("Create one or more categories"),
		mcp.WithArray("categories",
			mcp.Required(),
			mcp.Description("Array of categories to create"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "description": "Category name"},
					"parentId": map[string]any{"type": "string", "description": "Parent category ID (optional for root category)"},
					"active":   map[string]any{"type": "boolean", "description": "Whether the category should be active", "default": true},
				},
				"required": []string{"name"},
			}),
		),
	), handle("category_create", resolve, logger, categoryCreate))

	s.AddTool(mcp.NewTool("category_update",
		mcp.WithDescription("Update one or more categories"),
		mcp.WithArray("categories",
			mcp.Required(),
			mcp.Description("Array of categories to update"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "string", "description": "Category ID to update"},
					"name":     map[string]any{"type": "string", "description": "New category name"},
					"parentId": map[string]any{"type": "string", "description": "New parent category ID"},
					"active":   map[string]any{"type": "boolean", "description": "Whether the category should be active"},
				},
				"required": []string{"id"},
			}),
		),
	), handle("category_update", resolve, logger, categoryUpdate))

	s.AddTool(mcp.NewTool("category_delete",
		mcp.WithDescription("Delete categories by id"),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Array of category IDs to delete"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), handle("category_delete", resolve, logger, categoryDelete))
}

func categoryList(ctx context.Context, client *adminapi.Client, _ map[string]any) (*mcp.CallToolResult, error) {
	categoryRepo := adminapi.NewRepository[map[string]any](client, "category")

	criteria := adminapi.NewCriteria()
	criteria.AddFields("id", "name", "parentId", "active")
	criteria.SetLimit(50)

	categories, err := categoryRepo.Search(ctx, criteria, adminapi.NewContext("", true))
	if err != nil {
		return nil, err
	}

	for _, category := range categories.Data {
		delete(category, "translated")
	}

	return serializedResult(map[string]any{"total": categories.Total, "data": categories.Data})
}

func categoryCreate(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	categories, ok := objectSliceArg(args, "categories")
	if !ok || len(categories) == 0 {
		return mcp.NewToolResultError("categories parameter is required"), nil
	}

	payloads := make([]map[string]any, 0, len(categories))
	created := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		name, ok := category["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("every category needs a name"), nil
		}

		active := true
		if a, ok := category["active"].(bool); ok {
			active = a
		}

		payload := map[string]any{
			"id":     adminapi.NewID(),
			"name":   name,
			"active": active,
		}
		if parentID, ok := category["parentId"].(string); ok && parentID != "" {
			payload["parentId"] = parentID
		}

		payloads = append(payloads, payload)
		created = append(created, map[string]any{"id": payload["id"], "name": name})
	}

	categoryRepo := adminapi.NewRepository[map[string]any](client, "category")
	if err := categoryRepo.Upsert(ctx, payloads, adminapi.NewContext("", true)); err != nil {
		return serializeError("Error creating categories: ", err), nil
	}

	return serializedResult(created)
}

func categoryUpdate(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	categories, ok := objectSliceArg(args, "categories")
	if !ok || len(categories) == 0 {
		return mcp.NewToolResultError("categories parameter is required"), nil
	}

	payloads := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		id, ok := category["id"].(string)
		if !ok || id == "" {
			return mcp.NewToolResultError("every category needs an id"), nil
		}

		payload := map[string]any{"id": id}
		if name, ok := category["name"].(string); ok && name != "" {
			payload["name"] = name
		}
		if parentID, ok := category["parentId"].(string); ok {
			payload["parentId"] = parentID
		}
		if active, ok := category["active"].(bool); ok {
			payload["active"] = active
		}

		payloads = append(payloads, payload)
	}

	categoryRepo := adminapi.NewRepository[map[string]any](client, "category")
	if err := categoryRepo.Upsert(ctx, payloads, adminapi.NewContext("", true)); err != nil {
		return serializeError("Error updating categories: ", err), nil
	}

	return mcp.NewToolResultText("Updated all categories successfully"), nil
}

func categoryDelete(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	ids, ok := stringSliceArg(args, "ids")
	if !ok || len(ids) == 0 {
		return mcp.NewToolResultError("ids parameter is required"), nil
	}

	categoryRepo := adminapi.NewRepository[map[string]any](client, "category")
	if err := categoryRepo.Delete(ctx, ids, adminapi.NewContext("", true)); err != nil {
		return serializeError("Error deleting categories: ", err), nil
	}

	return serializedResult(map[string]any{
		"success":    true,
		"count":      len(ids),
		"deletedIds": ids,
	})
}
