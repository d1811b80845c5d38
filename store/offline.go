package store

import (
	"context"
	"errors"
	"sync"
)

type opKind int

const (
	opSet opKind = iota
	opMerge
	opDelete
)

type pendingOp struct {
	kind       opKind
	collection string
	id         string
	fields     map[string]interface{}
}

// OfflineStore wraps a DocumentStore with a local read cache and a
// deferred write queue, the counterpart of the offline persistence the
// mobile Firestore SDKs ship with. While the network layer is disabled
// every write lands in the cache and the queue and reads are served
// from the cache. Re-enabling the network replays the queue in
// issuance order, so locally-originated writes reach the remote store
// at least once and in the order the caller issued them. Replayed ops
// address fixed document ids, so a second delivery of the same op
// cannot create a duplicate record.
type OfflineStore struct {
	mu      sync.Mutex
	inner   DocumentStore
	enabled bool
	cache   map[string]map[string]map[string]interface{}
	queue   []pendingOp
}

func NewOfflineStore(inner DocumentStore) *OfflineStore {
	return &OfflineStore{
		inner:   inner,
		enabled: true,
		cache:   make(map[string]map[string]map[string]interface{}),
	}
}

// SetNetworkEnabled toggles the network layer. Enabling flushes the
// deferred write queue before new traffic goes through; an op that
// fails mid-flush stays queued for the next attempt.
func (s *OfflineStore) SetNetworkEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	if !enabled {
		return nil
	}
	return s.flushLocked(ctx)
}

func (s *OfflineStore) flushLocked(ctx context.Context) error {
	for len(s.queue) > 0 {
		op := s.queue[0]
		var err error
		switch op.kind {
		case opSet:
			err = s.inner.Create(ctx, op.collection, op.id, op.fields)
		case opMerge:
			err = s.inner.Update(ctx, op.collection, op.id, op.fields)
		case opDelete:
			err = s.inner.Delete(ctx, op.collection, op.id)
		}
		if err != nil {
			if op.kind == opMerge && errors.Is(err, ErrNotFound) {
				// target vanished remotely while we were offline;
				// nothing left to merge into
				s.queue = s.queue[1:]
				continue
			}
			return err
		}
		s.queue = s.queue[1:]
	}
	return nil
}

func (s *OfflineStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		if err := s.flushLocked(ctx); err != nil {
			return err
		}
		if err := s.inner.Create(ctx, collection, id, data); err != nil {
			return err
		}
		s.cachePut(collection, id, data)
		return nil
	}
	s.cachePut(collection, id, data)
	s.queue = append(s.queue, pendingOp{kind: opSet, collection: collection, id: id, fields: cloneDoc(data)})
	return nil
}

func (s *OfflineStore) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		data, err := s.inner.Get(ctx, collection, id)
		if err != nil {
			return nil, err
		}
		s.cachePut(collection, id, data)
		return data, nil
	}
	doc, ok := s.cache[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (s *OfflineStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		snaps, err := s.inner.Query(ctx, collection, filters...)
		if err != nil {
			return nil, err
		}
		for _, snap := range snaps {
			s.cachePut(collection, snap.ID, snap.Data)
		}
		return snaps, nil
	}
	out := []Snapshot{}
	for id, doc := range s.cache[collection] {
		if matches(doc, filters) {
			out = append(out, Snapshot{ID: id, Data: cloneDoc(doc)})
		}
	}
	return out, nil
}

func (s *OfflineStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		if err := s.flushLocked(ctx); err != nil {
			return err
		}
		if err := s.inner.Update(ctx, collection, id, fields); err != nil {
			return err
		}
		s.cacheMerge(collection, id, fields)
		return nil
	}
	s.cacheMerge(collection, id, fields)
	s.queue = append(s.queue, pendingOp{kind: opMerge, collection: collection, id: id, fields: cloneDoc(fields)})
	return nil
}

func (s *OfflineStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		if err := s.flushLocked(ctx); err != nil {
			return err
		}
		if err := s.inner.Delete(ctx, collection, id); err != nil {
			return err
		}
		delete(s.cache[collection], id)
		return nil
	}
	delete(s.cache[collection], id)
	s.queue = append(s.queue, pendingOp{kind: opDelete, collection: collection, id: id})
	return nil
}

func (s *OfflineStore) cachePut(collection, id string, data map[string]interface{}) {
	col := s.cache[collection]
	if col == nil {
		col = make(map[string]map[string]interface{})
		s.cache[collection] = col
	}
	col[id] = cloneDoc(data)
}

func (s *OfflineStore) cacheMerge(collection, id string, fields map[string]interface{}) {
	col := s.cache[collection]
	if col == nil {
		col = make(map[string]map[string]interface{})
		s.cache[collection] = col
	}
	doc := col[id]
	if doc == nil {
		doc = make(map[string]interface{})
		col[id] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
}
