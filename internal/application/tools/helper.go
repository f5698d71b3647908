package tools

import (
	"context"
	"fmt"

	"shopware-admin-mcp/internal/infrastructure/adminapi"
)

// ResolveOrCreateTax returns the id of the tax record with exactly the given
// rate, creating one named after the rate if none exists. The returned id is
// always the id that is persisted.
func ResolveOrCreateTax(ctx context.Context, client *adminapi.Client, rate float64) (string, error) {
	taxRepo := adminapi.NewRepository[map[string]any](client, "tax")

	criteria := adminapi.NewCriteria()
	criteria.AddFilter(adminapi.Equals("taxRate", rate))

	ids, err := taxRepo.SearchIDs(ctx, criteria)
	if err != nil {
		return "", err
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	taxID := adminapi.NewID()
	err = taxRepo.Upsert(ctx, []map[string]any{{
		"id":      taxID,
		"name":    fmt.Sprintf("Tax %g", rate),
		"taxRate": rate,
	}})
	if err != nil {
		return "", err
	}

	return taxID, nil
}
