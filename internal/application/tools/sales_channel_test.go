package tools

import (
	"context"
	"encoding/json"
	"testing"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesChannelListLiftsThemeID(t *testing.T) {
	client, fake := newToolClient(t)
	fake.searches["/api/search/sales_channel"] = `{
		"total": 1,
		"data": [{
			"id": "sc-1",
			"name": "Storefront",
			"active": true,
			"translated": {"name": "Storefront"},
			"extensions": {
				"themes": [{"id": "theme-1", "name": "Default"}]
			}
		}]
	}`

	result, err := salesChannelList(context.Background(), client, nil)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var envelope struct {
		Total int              `json:"total"`
		Data  []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
	require.Len(t, envelope.Data, 1)

	channel := envelope.Data[0]
	assert.Equal(t, "theme-1", channel["themeId"])
	assert.NotContains(t, channel, "extensions")
	assert.NotContains(t, channel, "translated")
	assert.NotContains(t, channel, "themes")

	searches := fake.recorded("/api/search/sales_channel")
	require.Len(t, searches, 1)

	var criteria adminapi.Criteria
	require.NoError(t, json.Unmarshal(searches[0].Body, &criteria))
	require.Len(t, criteria.Filter, 1)
	assert.Equal(t, "typeId", criteria.Filter[0].Field)
	assert.Equal(t, adminapi.SalesChannelTypeStorefront, criteria.Filter[0].Value)
	assert.Contains(t, criteria.Associations, "domains")
}

func TestSalesChannelUpdatePartialPayload(t *testing.T) {
	client, fake := newToolClient(t)

	result, err := salesChannelUpdate(context.Background(), client, map[string]any{
		"id":          "sc-1",
		"maintenance": true,
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, "Sales channel updated successfully", resultText(t, result))

	syncs := fake.recorded("/api/_action/sync")
	require.Len(t, syncs, 1)

	var batch map[string]syncStep
	require.NoError(t, json.Unmarshal(syncs[0].Body, &batch))
	payload := batch["sales_channel-upsert"].Payload[0]
	assert.Equal(t, "sc-1", payload["id"])
	assert.Equal(t, true, payload["maintenance"])
	assert.NotContains(t, payload, "active")
}
