package services

import (
	"context"
	"fmt"
	"log"

	"mindmap/store"
)

// SyncService reconciles the pending-sync flag with reality once
// connectivity is back. The data itself already traveled through the
// store's deferred write queue; the sweep's only job is to make "still
// needs sync" catch up with "already durable".
type SyncService struct {
	store store.DocumentStore
	auth  AuthProvider
}

func NewSyncService(st store.DocumentStore, auth AuthProvider) *SyncService {
	return &SyncService{store: st, auth: auth}
}

// SyncPendingTasks sweeps the current user's pending records and
// clears their flags. A missing user makes it a no-op: there is
// nothing to scope the sweep to, and that is not an error. The sweep
// works off the query snapshot, so a task created while it runs keeps
// its fresh flag untouched. Running it again with nothing pending does
// nothing.
func (s *SyncService) SyncPendingTasks(ctx context.Context) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return nil
	}
	return s.sweep(ctx,
		store.Filter{Path: "userId", Value: userID},
		store.Filter{Path: "pendingSync", Value: true},
	)
}

// SyncAllPending sweeps every owner's pending records. The reconnect
// trigger runs outside any request, so it has no user to scope to.
func (s *SyncService) SyncAllPending(ctx context.Context) error {
	return s.sweep(ctx, store.Filter{Path: "pendingSync", Value: true})
}

func (s *SyncService) sweep(ctx context.Context, filters ...store.Filter) error {
	snaps, err := s.store.Query(ctx, tasksCollection, filters...)
	if err != nil {
		return fmt.Errorf("query pending tasks: %w", err)
	}
	failed := 0
	for _, snap := range snaps {
		if err := s.store.Update(ctx, tasksCollection, snap.ID, map[string]interface{}{"pendingSync": false}); err != nil {
			log.Printf("sync: clearing flag on %s failed: %v", snap.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("sync: %d of %d pending tasks not cleared", failed, len(snaps))
	}
	return nil
}
