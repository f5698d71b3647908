package tools

import (
	"context"
	"fmt"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

func registerProductTools(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	s.AddTool(mcp.NewTool("product_list",
		mcp.WithDescription("List products of the shop with paging and optional full-text search"),
		mcp.WithNumber("page",
			mcp.DefaultNumber(1),
			mcp.Min(1),
			mcp.Description("1-indexed result page"),
		),
		mcp.WithString("term",
			mcp.Description("Search term"),
		),
	), handle("product_list", resolve, logger, productList))

	s.AddTool(mcp.NewTool("product_get",
		mcp.WithDescription("Get a single product by id"),
		mcp.WithString("id", mcp.Required()),
	), handle("product_get", resolve, logger, productGet))

	s.AddTool(mcp.NewTool("product_create",
		mcp.WithDescription("Create a product; the product stays inactive unless active is set"),
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("productNumber", mcp.Required()),
		mcp.WithString("description"),
		mcp.WithBoolean("active", mcp.DefaultBool(false)),
		mcp.WithNumber("taxRate", mcp.DefaultNumber(19)),
		mcp.WithNumber("stock", mcp.DefaultNumber(0)),
		mcp.WithNumber("netPrice", mcp.Required(), mcp.Min(0)),
		mcp.WithNumber("grossPrice", mcp.Required(), mcp.Min(0)),
		mcp.WithArray("visibilities",
			mcp.Description("Sales channel ids in which the product should be visible"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("categories",
			mcp.Description("Category ids to which the product belongs"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("media",
			mcp.Description("Media items to add to the product"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mediaId":  map[string]any{"type": "string", "description": "ID of the media to link"},
					"position": map[string]any{"type": "number", "description": "Position of the media"},
					"cover":    map[string]any{"type": "boolean", "description": "Whether this media is the cover of the product"},
				},
				"required": []string{"mediaId"},
			}),
		),
	), handle("product_create", resolve, logger, productCreate))

	s.AddTool(mcp.NewTool("product_update",
		mcp.WithDescription("Update a product; visibilities, categories and media replace the existing sets"),
		mcp.WithString("id", mcp.Required()),
		mcp.WithBoolean("active"),
		mcp.WithString("name"),
		mcp.WithString("description"),
		mcp.WithNumber("stock"),
		mcp.WithArray("visibilities",
			mcp.Description("Sales channel ids in which the product should be visible (replaces existing visibilities)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("categories",
			mcp.Description("Category ids to which the product belongs (replaces existing categories)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("media",
			mcp.Description("Media items for the product (replaces the existing media set)"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mediaId":  map[string]any{"type": "string", "description": "ID of the media to link"},
					"position": map[string]any{"type": "number", "description": "Position of the media"},
					"cover":    map[string]any{"type": "boolean", "description": "Whether this media is the cover of the product"},
				},
				"required": []string{"mediaId"},
			}),
		),
	), handle("product_update", resolve, logger, productUpdate))
}

func productList(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	page := int(numberArg(args, "page", 1))
	if page < 1 {
		return mcp.NewToolResultError("page must be at least 1"), nil
	}

	productRepo := adminapi.NewRepository[map[string]any](client, "product")

	criteria := adminapi.NewCriteria()
	criteria.AddFields("id", "productNumber", "name", "stock", "price")
	criteria.SetLimit(50)
	criteria.SetPage(page)
	if term, ok := stringArg(args, "term"); ok {
		criteria.SetTerm(term)
	}

	products, err := productRepo.Search(ctx, criteria, adminapi.NewContext("", true))
	if err != nil {
		return nil, err
	}

	return serializedResult(map[string]any{"total": products.Total, "data": products.Data})
}

func productGet(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	productRepo := adminapi.NewRepository[map[string]any](client, "product")

	criteria := adminapi.NewCriteria(id)
	criteria.AddFields("name", "description", "price")

	result, err := productRepo.Search(ctx, criteria, adminapi.NewContext("", true))
	if err != nil {
		return nil, err
	}

	product, ok := result.First()
	if !ok {
		return mcp.NewToolResultText("Product not found"), nil
	}

	return serializedResult(product)
}

// mediaPayloads expands the media argument into product_media rows with
// generated ids and picks the cover id from the first cover-flagged row.
func mediaPayloads(items []map[string]any) ([]map[string]any, string) {
	rows := make([]map[string]any, 0, len(items))
	coverID := ""
	for _, item := range items {
		mediaID, _ := item["mediaId"].(string)
		position := 0
		if p, ok := item["position"].(float64); ok {
			position = int(p)
		}
		cover, _ := item["cover"].(bool)

		row := map[string]any{
			"id":       adminapi.NewID(),
			"mediaId":  mediaID,
			"position": position,
			"cover":    cover,
		}
		if cover && coverID == "" {
			coverID = row["id"].(string)
		}
		rows = append(rows, row)
	}
	return rows, coverID
}

func visibilityPayloads(salesChannelIDs []string) []map[string]any {
	rows := make([]map[string]any, 0, len(salesChannelIDs))
	for _, salesChannelID := range salesChannelIDs {
		rows = append(rows, map[string]any{
			"salesChannelId": salesChannelID,
			"visibility":     adminapi.VisibilityAll,
		})
	}
	return rows
}

func categoryRefs(categoryIDs []string) []map[string]any {
	refs := make([]map[string]any, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		refs = append(refs, map[string]any{"id": categoryID})
	}
	return refs
}

func productCreate(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	productNumber, err := requireString(args, "productNumber")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	netPrice, err := requireNumber(args, "netPrice")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	grossPrice, err := requireNumber(args, "grossPrice")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if netPrice < 0 || grossPrice < 0 {
		return mcp.NewToolResultError("prices must not be negative"), nil
	}

	taxID, err := ResolveOrCreateTax(ctx, client, numberArg(args, "taxRate", 19))
	if err != nil {
		return serializeError("Error creating product: ", err), nil
	}

	active, _ := boolArg(args, "active")
	description, _ := stringArg(args, "description")

	id := adminapi.NewID()
	payload := map[string]any{
		"id":            id,
		"productNumber": productNumber,
		"name":          name,
		"active":        active,
		"description":   description,
		"taxId":         taxID,
		"stock":         int(numberArg(args, "stock", 0)),
		"price": []map[string]any{{
			"currencyId": adminapi.SystemCurrencyID,
			"net":        netPrice,
			"gross":      grossPrice,
			"linked":     false,
		}},
	}

	if visibilities, ok := stringSliceArg(args, "visibilities"); ok {
		payload["visibilities"] = visibilityPayloads(visibilities)
	}
	if categories, ok := stringSliceArg(args, "categories"); ok {
		payload["categories"] = categoryRefs(categories)
	}
	if media, ok := objectSliceArg(args, "media"); ok {
		rows, coverID := mediaPayloads(media)
		payload["media"] = rows
		if coverID != "" {
			payload["coverId"] = coverID
		}
	}

	productRepo := adminapi.NewRepository[map[string]any](client, "product")
	if err := productRepo.Upsert(ctx, []map[string]any{payload}, adminapi.NewContext("", true)); err != nil {
		return serializeError("Error creating product: ", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Product created with id: %s.", id)), nil
}

func productUpdate(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var ops []adminapi.SyncOperation

	payload := map[string]any{"id": id}
	if active, ok := boolArg(args, "active"); ok {
		payload["active"] = active
	}
	if name, ok := stringArg(args, "name"); ok {
		payload["name"] = name
	}
	if description, ok := stringArg(args, "description"); ok {
		payload["description"] = description
	}
	if stock, ok := args["stock"].(float64); ok {
		payload["stock"] = int(stock)
	}

	if visibilities, ok := stringSliceArg(args, "visibilities"); ok {
		// Stale visibility rows must be deleted before the upsert
		// re-establishes them, otherwise the batch hits duplicate keys.
		ops = append(ops, adminapi.NewSyncOperation(
			"visibility-delete", "product_visibility", adminapi.SyncActionDelete,
			nil, adminapi.Equals("productId", id)))
		payload["visibilities"] = visibilityPayloads(visibilities)
	}
	if categories, ok := stringSliceArg(args, "categories"); ok {
		payload["categories"] = categoryRefs(categories)
	}
	if media, ok := objectSliceArg(args, "media"); ok {
		ops = append(ops, adminapi.NewSyncOperation(
			"media-delete", "product_media", adminapi.SyncActionDelete,
			nil, adminapi.Equals("productId", id)))
		rows, coverID := mediaPayloads(media)
		payload["media"] = rows
		if coverID != "" {
			payload["coverId"] = coverID
		} else {
			payload["coverId"] = nil
		}
	}

	ops = append(ops, adminapi.NewSyncOperation(
		"product-update", "product", adminapi.SyncActionUpsert,
		[]map[string]any{payload}))

	syncService := adminapi.NewSyncService(client)
	if err := syncService.Sync(ctx, ops); err != nil {
		return serializeError("Error updating product: ", err), nil
	}

	return mcp.NewToolResultText("Product updated successfully"), nil
}
