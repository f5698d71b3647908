package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Repository is a generic data-access handle bound to one entity name. The
// type parameter shapes decoded records; use map[string]any for untyped
// access.
type Repository[T any] struct {
	client *Client
	entity string
}

// NewRepository binds a repository to an entity name, e.g. "product".
func NewRepository[T any](client *Client, entity string) *Repository[T] {
	return &Repository[T]{client: client, entity: entity}
}

// SearchResult is the paged collection envelope of the search endpoints.
type SearchResult[T any] struct {
	Total        int                        `json:"total"`
	Data         []T                        `json:"data"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
}

// First returns the first record of the result, or false if it is empty.
func (r *SearchResult[T]) First() (T, bool) {
	if len(r.Data) == 0 {
		var zero T
		return zero, false
	}
	return r.Data[0], true
}

// Search executes a criteria search against the entity.
func (r *Repository[T]) Search(ctx context.Context, criteria *Criteria, opts ...*Context) (*SearchResult[T], error) {
	resp, err := r.client.Request(ctx, http.MethodPost, "search/"+r.entity, criteria, opts...)
	if err != nil {
		return nil, err
	}

	var result SearchResult[T]
	if err := resp.DecodeInto(&result); err != nil {
		return nil, fmt.Errorf("failed to decode %s search result: %w", r.entity, err)
	}
	return &result, nil
}

// SearchIDs executes a criteria search returning only matching ids.
func (r *Repository[T]) SearchIDs(ctx context.Context, criteria *Criteria, opts ...*Context) ([]string, error) {
	resp, err := r.client.Request(ctx, http.MethodPost, "search-ids/"+r.entity, criteria, opts...)
	if err != nil {
		return nil, err
	}

	var result struct {
		Total int      `json:"total"`
		Data  []string `json:"data"`
	}
	if err := resp.DecodeInto(&result); err != nil {
		return nil, fmt.Errorf("failed to decode %s id search result: %w", r.entity, err)
	}
	return result.Data, nil
}

// Aggregate executes a criteria search for its aggregations; callers usually
// discard the Data list.
func (r *Repository[T]) Aggregate(ctx context.Context, criteria *Criteria, opts ...*Context) (*SearchResult[T], error) {
	return r.Search(ctx, criteria, opts...)
}

// Upsert writes entity payloads through the sync endpoint. Payloads carry
// only explicitly-set keys; an omitted key leaves the stored field untouched.
func (r *Repository[T]) Upsert(ctx context.Context, payloads []map[string]any, opts ...*Context) error {
	svc := NewSyncService(r.client)
	return svc.Sync(ctx, []SyncOperation{
		NewSyncOperation(r.entity+"-upsert", r.entity, SyncActionUpsert, payloads),
	}, opts...)
}

// Delete removes entities by id through the sync endpoint.
func (r *Repository[T]) Delete(ctx context.Context, ids []string, opts ...*Context) error {
	payloads := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		payloads = append(payloads, map[string]any{"id": id})
	}
	svc := NewSyncService(r.client)
	return svc.Sync(ctx, []SyncOperation{
		NewSyncOperation(r.entity+"-delete", r.entity, SyncActionDelete, payloads),
	}, opts...)
}
