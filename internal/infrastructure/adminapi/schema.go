package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// EntitySchema fetches the full entity schema of the shop, keyed by entity
// name. Values are kept raw; callers pick the entities they care about.
func (c *Client) EntitySchema(ctx context.Context) (map[string]json.RawMessage, error) {
	resp, err := c.Get(ctx, "_info/entity-schema.json")
	if err != nil {
		return nil, err
	}

	var schema map[string]json.RawMessage
	if err := resp.DecodeInto(&schema); err != nil {
		return nil, fmt.Errorf("failed to decode entity schema: %w", err)
	}
	return schema, nil
}
