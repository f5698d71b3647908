package adminapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncBatchPreservesOperationOrder(t *testing.T) {
	batch := syncBatch{
		NewSyncOperation("visibility-delete", "product_visibility", SyncActionDelete, nil, Equals("productId", "p1")),
		NewSyncOperation("media-delete", "product_media", SyncActionDelete, nil, Equals("productId", "p1")),
		NewSyncOperation("product-update", "product", SyncActionUpsert, []map[string]any{{"id": "p1"}}),
	}

	encoded, err := json.Marshal(batch)
	require.NoError(t, err)

	raw := string(encoded)
	first := strings.Index(raw, `"visibility-delete"`)
	second := strings.Index(raw, `"media-delete"`)
	third := strings.Index(raw, `"product-update"`)
	require.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	// Round-trip: every step keeps its entity, action and criteria.
	var decoded map[string]SyncOperation
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "product_visibility", decoded["visibility-delete"].Entity)
	assert.Equal(t, SyncActionDelete, decoded["visibility-delete"].Action)
	require.Len(t, decoded["visibility-delete"].Criteria, 1)
	assert.Equal(t, "productId", decoded["visibility-delete"].Criteria[0].Field)
	assert.Equal(t, SyncActionUpsert, decoded["product-update"].Action)
}

func TestSyncOperationNilPayloadEncodesEmptyList(t *testing.T) {
	op := NewSyncOperation("step", "product", SyncActionDelete, nil, Equals("id", "p1"))

	encoded, err := json.Marshal(op)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"entity": "product",
		"action": "delete",
		"payload": [],
		"criteria": [{"type": "equals", "field": "id", "value": "p1"}]
	}`, string(encoded))
}

func TestSyncOperationWithoutCriteriaOmitsField(t *testing.T) {
	op := NewSyncOperation("step", "tax", SyncActionUpsert, []map[string]any{{"id": "t1"}})

	encoded, err := json.Marshal(op)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "criteria")
}
