package memory

import (
	"context"
	"errors"
	"sync"

	"rdalreport/internal/reporting/domain/aggregate"
	"rdalreport/internal/reporting/domain/code"
)

// SnapshotStore is an in-memory store of per-granularity aggregate
// snapshots. Snapshots are a recovery and inspection aid; every run
// recomputes from source observations.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]aggregate.Entry
}

// NewSnapshotStore constructs a store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{data: make(map[string][]aggregate.Entry)}
}

// SaveEntries overwrites the snapshot for a run and granularity.
func (s *SnapshotStore) SaveEntries(ctx context.Context, runID string, g code.Granularity, entries []aggregate.Entry) error {
	_ = ctx
	if runID == "" {
		return errors.New("snapshot store: empty run id")
	}
	copied := make([]aggregate.Entry, len(entries))
	copy(copied, entries)

	s.mu.Lock()
	s.data[snapshotKey(runID, g)] = copied
	s.mu.Unlock()
	return nil
}

// ListEntries returns the stored snapshot for a run and granularity.
func (s *SnapshotStore) ListEntries(ctx context.Context, runID string, g code.Granularity) ([]aggregate.Entry, error) {
	_ = ctx
	s.mu.RLock()
	stored := s.data[snapshotKey(runID, g)]
	s.mu.RUnlock()
	if stored == nil {
		return nil, nil
	}
	out := make([]aggregate.Entry, len(stored))
	copy(out, stored)
	return out, nil
}

func snapshotKey(runID string, g code.Granularity) string {
	return runID + "|" + g.String()
}
