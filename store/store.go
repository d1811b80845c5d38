package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrUnavailable = errors.New("store unavailable")
)

// Filter is an equality constraint on a document field.
type Filter struct {
	Path  string
	Value interface{}
}

type Snapshot struct {
	ID   string
	Data map[string]interface{}
}

// DocumentStore is the remote document store surface the services
// depend on: per-document CRUD keyed by collection and id, plus
// equality-filter queries. Timestamps travel as time.Time.
type DocumentStore interface {
	Create(ctx context.Context, collection, id string, data map[string]interface{}) error
	Get(ctx context.Context, collection, id string) (map[string]interface{}, error)
	Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
}

func matches(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Path]
		if !ok || !valueEqual(v, f.Value) {
			return false
		}
	}
	return true
}

func valueEqual(a, b interface{}) bool {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		return at.Equal(bt)
	}
	return a == b
}

func cloneDoc(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
