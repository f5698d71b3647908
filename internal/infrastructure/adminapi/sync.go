package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Sync actions understood by the bulk endpoint.
const (
	SyncActionUpsert = "upsert"
	SyncActionDelete = "delete"
)

// SyncOperation is one step of an ordered batch submitted to the bulk sync
// endpoint. Delete steps may target rows by criteria instead of payloads.
type SyncOperation struct {
	Key      string           `json:"-"`
	Entity   string           `json:"entity"`
	Action   string           `json:"action"`
	Payload  []map[string]any `json:"payload"`
	Criteria []Filter         `json:"criteria,omitempty"`
}

// NewSyncOperation builds a sync step. The key names the step in the batch;
// optional criteria select the rows of a delete.
func NewSyncOperation(key string, entity string, action string, payload []map[string]any, criteria ...Filter) SyncOperation {
	if payload == nil {
		payload = []map[string]any{}
	}
	return SyncOperation{Key: key, Entity: entity, Action: action, Payload: payload, Criteria: criteria}
}

// syncBatch serializes operations as a JSON object keyed by operation key,
// preserving slice order. The backend applies steps in the order they appear
// in the document, which is why a plain Go map cannot be used here.
type syncBatch []SyncOperation

func (b syncBatch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, op := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(op.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		body, err := json.Marshal(op)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SyncService submits ordered write batches to POST _action/sync. All steps
// of one batch share a single backend transaction intent: deletions of stale
// association rows must precede the upsert that re-establishes them.
type SyncService struct {
	client *Client
}

// NewSyncService creates a sync service for the given client.
func NewSyncService(client *Client) *SyncService {
	return &SyncService{client: client}
}

// Sync submits the operations as one ordered batch.
func (s *SyncService) Sync(ctx context.Context, ops []SyncOperation, opts ...*Context) error {
	_, err := s.client.Request(ctx, http.MethodPost, "_action/sync", syncBatch(ops), opts...)
	return err
}
