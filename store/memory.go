package store

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. It backs the test
// suite and local development without a Firestore project.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]map[string]interface{} // collection -> id -> fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]map[string]interface{})}
}

func (s *MemoryStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.docs[collection]
	if col == nil {
		col = make(map[string]map[string]interface{})
		s.docs[collection] = col
	}
	col[id] = cloneDoc(data)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Snapshot{}
	for id, doc := range s.docs[collection] {
		if matches(doc, filters) {
			out = append(out, Snapshot{ID: id, Data: cloneDoc(doc)})
		}
	}
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[collection], id)
	return nil
}
