package tools

import (
	"context"
	"fmt"
	"sort"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

var aggregationTypes = []string{"count", "max", "min", "stats", "terms", "histogram"}

func registerGeneralTools(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	s.AddTool(mcp.NewTool("fetch_entity_list",
		mcp.WithDescription("List all entity names known to the shop"),
	), handle("fetch_entity_list", resolve, logger, fetchEntityList))

	s.AddTool(mcp.NewTool("fetch_single_entity_schema",
		mcp.WithDescription("Fetch the schema of a single entity"),
		mcp.WithString("entity", mcp.Required(), mcp.Description("The entity to fetch the schema for, e.g. product, order, category, etc.")),
	), handle("fetch_single_entity_schema", resolve, logger, fetchSingleEntitySchema))

	s.AddTool(mcp.NewTool("dal_aggregate",
		mcp.WithDescription("Run an aggregation over an entity"),
		mcp.WithString("entity", mcp.Required(), mcp.Description("The entity to aggregate on, use fetch_entity_list to get a list of entities")),
		mcp.WithString("type", mcp.Required(), mcp.Description("The type of aggregation to perform"), mcp.Enum(aggregationTypes...)),
		mcp.WithString("field", mcp.Required(), mcp.Description("The field to aggregate on, on associations the field can be nested like orderCustomer.firstName")),
		mcp.WithArray("filter", mcp.Description("Filters scoping the aggregation"), mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":  map[string]any{"type": "string", "enum": []string{"equals", "not_equals", "contains", "not_contains"}},
				"field": map[string]any{"type": "string"},
				"value": map[string]any{"type": "string"},
			},
			"required": []string{"type", "field", "value"},
		})),
	), handle("dal_aggregate", resolve, logger, dalAggregate))

	s.AddTool(mcp.NewTool("country_list",
		mcp.WithDescription("List all countries of the shop"),
	), handle("country_list", resolve, logger, countryList))
}

func fetchEntityList(ctx context.Context, client *adminapi.Client, _ map[string]any) (*mcp.CallToolResult, error) {
	schema, err := client.EntitySchema(ctx)
	if err != nil {
		return nil, err
	}

	entities := make([]string, 0, len(schema))
	for name := range schema {
		entities = append(entities, name)
	}
	sort.Strings(entities)

	return serializedResult(entities)
}

func fetchSingleEntitySchema(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	entity, err := requireString(args, "entity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	schema, err := client.EntitySchema(ctx)
	if err != nil {
		return nil, err
	}

	definition, ok := schema[entity]
	if !ok {
		return mcp.NewToolResultText("{}"), nil
	}
	return mcp.NewToolResultText(string(definition)), nil
}

func dalAggregate(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	entity, err := requireString(args, "entity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	aggType, err := requireString(args, "type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !contains(aggregationTypes, aggType) {
		return mcp.NewToolResultError(fmt.Sprintf("type must be one of: %v", aggregationTypes)), nil
	}
	field, err := requireString(args, "field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var agg adminapi.Aggregation
	switch aggType {
	case "count":
		agg = adminapi.Count("order_count", field)
	case "max":
		agg = adminapi.Max("order_max", field)
	case "min":
		agg = adminapi.Min("order_min", field)
	case "stats":
		agg = adminapi.Stats("order_stats", field)
	case "terms":
		agg = adminapi.Terms("order_terms", field)
	case "histogram":
		agg = adminapi.Histogram("order_histogram", field)
	}

	if rawFilters, ok := objectSliceArg(args, "filter"); ok && len(rawFilters) > 0 {
		filters := make([]adminapi.Filter, 0, len(rawFilters))
		for _, raw := range rawFilters {
			filterType, _ := raw["type"].(string)
			filterField, _ := raw["field"].(string)
			filterValue, _ := raw["value"].(string)

			switch filterType {
			case "equals":
				filters = append(filters, adminapi.Equals(filterField, filterValue))
			case "not_equals":
				filters = append(filters, adminapi.Not("and", []adminapi.Filter{adminapi.Equals(filterField, filterValue)}))
			case "contains":
				filters = append(filters, adminapi.Contains(filterField, filterValue))
			case "not_contains":
				filters = append(filters, adminapi.Not("and", []adminapi.Filter{adminapi.Contains(filterField, filterValue)}))
			default:
				return mcp.NewToolResultError(fmt.Sprintf("unknown filter type: %s", filterType)), nil
			}
		}
		agg = adminapi.FilterAggregation("filtered_agg", filters, agg)
	}

	criteria := adminapi.NewCriteria()
	criteria.SetLimit(1)
	criteria.AddAggregation(agg)

	repo := adminapi.NewRepository[map[string]any](client, entity)
	result, err := repo.Aggregate(ctx, criteria)
	if err != nil {
		return serializeError("Error aggregating: ", err), nil
	}

	// Row data is noise for aggregations; only the buckets matter.
	return serializedResult(map[string]any{
		"total":        result.Total,
		"aggregations": result.Aggregations,
	})
}

func countryList(ctx context.Context, client *adminapi.Client, _ map[string]any) (*mcp.CallToolResult, error) {
	countryRepo := adminapi.NewRepository[map[string]any](client, "country")

	criteria := adminapi.NewCriteria()
	criteria.AddFields("id", "name", "iso")
	criteria.AddSorting(adminapi.Sort("name", "ASC"))

	// Country names come back in the default language no matter which
	// locale the credentials are scoped to.
	countries, err := countryRepo.Search(ctx, criteria, adminapi.NewContext(adminapi.SystemLanguageID, false))
	if err != nil {
		return nil, err
	}

	return serializedResult(map[string]any{"total": countries.Total, "data": countries.Data})
}
