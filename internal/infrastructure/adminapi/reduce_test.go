package adminapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedEntity() map[string]any {
	return map[string]any{
		"id":                "p1",
		"_uniqueIdentifier": "p1",
		"apiAlias":          "product",
		"versionId":         "v1",
		"extensions":        map[string]any{"foreignKeys": map[string]any{}},
		"translated":        map[string]any{},
		"manufacturer": map[string]any{
			"id":                "m1",
			"_uniqueIdentifier": "m1",
			"apiAlias":          "product_manufacturer",
			"extensions":        map[string]any{},
			"translated":        map[string]any{"name": "Acme"},
		},
		"categories": []any{
			map[string]any{
				"id":         "c1",
				"apiAlias":   "category",
				"extensions": map[string]any{},
				"translated": map[string]any{},
			},
		},
	}
}

func TestReduceStripsVolatileFieldsAtEveryDepth(t *testing.T) {
	entity := nestedEntity()
	ReduceValue(entity)

	assert.Equal(t, "p1", entity["id"])
	assert.NotContains(t, entity, "_uniqueIdentifier")
	assert.NotContains(t, entity, "apiAlias")
	assert.NotContains(t, entity, "versionId")
	assert.NotContains(t, entity, "extensions")
	assert.NotContains(t, entity, "translated")

	manufacturer := entity["manufacturer"].(map[string]any)
	assert.NotContains(t, manufacturer, "_uniqueIdentifier")
	assert.NotContains(t, manufacturer, "extensions")
	// Non-empty translated containers carry real data and stay.
	assert.Contains(t, manufacturer, "translated")

	category := entity["categories"].([]any)[0].(map[string]any)
	assert.Equal(t, "c1", category["id"])
	assert.NotContains(t, category, "apiAlias")
	assert.NotContains(t, category, "extensions")
	assert.NotContains(t, category, "translated")
}

func TestReduceIsIdempotent(t *testing.T) {
	entity := nestedEntity()
	ReduceValue(entity)

	once, err := SerializeLLM(entity)
	require.NoError(t, err)

	ReduceValue(entity)
	twice, err := SerializeLLM(entity)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestReduceLeavesScalarsAlone(t *testing.T) {
	assert.Equal(t, "plain", ReduceValue("plain"))
	assert.Equal(t, 42.0, ReduceValue(42.0))
	assert.Nil(t, ReduceValue(nil))
}

func TestSerializeLLMCollectionEnvelope(t *testing.T) {
	envelope := map[string]any{
		"total": 1,
		"data": []any{
			map[string]any{
				"id":         "c1",
				"apiAlias":   "category",
				"extensions": map[string]any{},
			},
		},
	}

	text, err := SerializeLLM(envelope)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 1, "data": [{"id": "c1"}]}`, text)
}
