package store

import (
	"context"
	"errors"
	"testing"
)

// flakyStore fails a set number of writes before behaving normally.
type flakyStore struct {
	*MemoryStore
	failures int
}

func (s *flakyStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	if s.failures > 0 {
		s.failures--
		return ErrUnavailable
	}
	return s.MemoryStore.Create(ctx, collection, id, data)
}

func TestOfflineStorePassThroughWhileEnabled(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s := NewOfflineStore(inner)

	if err := s.Create(ctx, "tasks", "t1", map[string]interface{}{"title": "x"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := inner.Get(ctx, "tasks", "t1")
	if err != nil {
		t.Fatalf("write did not reach inner store: %v", err)
	}
	if got["title"] != "x" {
		t.Errorf("unexpected doc in inner store: %v", got)
	}
}

func TestOfflineStoreQueuesAndReplaysInOrder(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s := NewOfflineStore(inner)

	if err := s.SetNetworkEnabled(ctx, false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	s.Create(ctx, "tasks", "t1", map[string]interface{}{"title": "first", "completed": false})
	s.Update(ctx, "tasks", "t1", map[string]interface{}{"completed": true})
	s.Create(ctx, "tasks", "t2", map[string]interface{}{"title": "second"})
	s.Delete(ctx, "tasks", "t2")

	// nothing reached the inner store yet
	if _, err := inner.Get(ctx, "tasks", "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("write leaked to inner store while offline")
	}

	// cached reads see the local state
	got, err := s.Get(ctx, "tasks", "t1")
	if err != nil {
		t.Fatalf("offline Get failed: %v", err)
	}
	if got["completed"] != true {
		t.Errorf("offline cache missed the update: %v", got)
	}
	if _, err := s.Get(ctx, "tasks", "t2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("offline delete not visible in cache")
	}

	if err := s.SetNetworkEnabled(ctx, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}

	got, err = inner.Get(ctx, "tasks", "t1")
	if err != nil {
		t.Fatalf("replay did not deliver t1: %v", err)
	}
	if got["completed"] != true {
		t.Errorf("replay applied out of order: %v", got)
	}
	if _, err := inner.Get(ctx, "tasks", "t2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("replayed delete did not remove t2")
	}
}

func TestOfflineStoreReplayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s := NewOfflineStore(inner)

	s.SetNetworkEnabled(ctx, false)
	s.Create(ctx, "tasks", "t1", map[string]interface{}{"title": "once"})
	s.SetNetworkEnabled(ctx, true)
	// a second toggle with an empty queue must change nothing
	if err := s.SetNetworkEnabled(ctx, true); err != nil {
		t.Fatalf("second enable failed: %v", err)
	}

	snaps, _ := inner.Query(ctx, "tasks")
	if len(snaps) != 1 {
		t.Errorf("expected exactly 1 doc after replay, got %d", len(snaps))
	}
}

func TestOfflineStoreKeepsQueueOnPartialFlush(t *testing.T) {
	ctx := context.Background()
	inner := &flakyStore{MemoryStore: NewMemoryStore(), failures: 1}
	s := NewOfflineStore(inner)

	s.SetNetworkEnabled(ctx, false)
	s.Create(ctx, "tasks", "t1", map[string]interface{}{"title": "kept"})

	if err := s.SetNetworkEnabled(ctx, true); err == nil {
		t.Fatalf("expected flush error from flaky inner store")
	}

	// next attempt delivers the retained op
	if err := s.SetNetworkEnabled(ctx, true); err != nil {
		t.Fatalf("retry flush failed: %v", err)
	}
	if _, err := inner.Get(ctx, "tasks", "t1"); err != nil {
		t.Errorf("retained op was not replayed: %v", err)
	}
}

func TestOfflineStoreDropsMergeForVanishedDoc(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s := NewOfflineStore(inner)

	inner.Create(ctx, "tasks", "t1", map[string]interface{}{"title": "remote"})
	s.Get(ctx, "tasks", "t1") // warm the cache

	s.SetNetworkEnabled(ctx, false)
	s.Update(ctx, "tasks", "t1", map[string]interface{}{"completed": true})

	// doc disappears remotely while we are offline
	inner.Delete(ctx, "tasks", "t1")

	if err := s.SetNetworkEnabled(ctx, true); err != nil {
		t.Fatalf("flush should drop the orphaned merge, got %v", err)
	}
}
