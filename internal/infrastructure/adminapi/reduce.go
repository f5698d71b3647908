package adminapi

import (
	"encoding/json"
	"fmt"
)

// volatileKeys are internal bookkeeping fields the backend attaches to every
// entity. They carry no domain meaning and only inflate responses.
var volatileKeys = []string{"_uniqueIdentifier", "apiAlias", "versionId"}

// ReduceValue strips volatile and internal fields from every nested object
// and list element of a JSON-compatible value. It mutates maps in place,
// returns the (possibly same) value, and is idempotent.
func ReduceValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		reduceMap(v)
		return v
	case []any:
		for _, item := range v {
			ReduceValue(item)
		}
		return v
	default:
		return value
	}
}

func reduceMap(entity map[string]any) {
	delete(entity, "extensions")
	for _, key := range volatileKeys {
		delete(entity, key)
	}
	if translated, ok := entity["translated"]; ok && isEmptyContainer(translated) {
		delete(entity, "translated")
	}
	for _, nested := range entity {
		ReduceValue(nested)
	}
}

func isEmptyContainer(v any) bool {
	switch c := v.(type) {
	case map[string]any:
		return len(c) == 0
	case []any:
		return len(c) == 0
	default:
		return false
	}
}

// SerializeLLM reduces a response value and returns its JSON encoding, the
// compact representation handed back to the model.
func SerializeLLM(value any) (string, error) {
	encoded, err := json.Marshal(ReduceValue(value))
	if err != nil {
		return "", fmt.Errorf("failed to serialize response: %w", err)
	}
	return string(encoded), nil
}
