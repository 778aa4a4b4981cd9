package job

import (
	"context"
	"log/slog"

	"github.com/contentdeskhq/contentdesk/internal/store"
)

// SyncJob periodically re-fetches the active platform so that a missed
// realtime notification cannot leave local state stale for long. Same code
// path as the manual "Sync Now" action.
type SyncJob struct {
	st *store.Store
}

func NewSyncJob(st *store.Store) *SyncJob {
	return &SyncJob{st: st}
}

func (c *SyncJob) Refresh() {
	ctx := context.Background()

	if c.st.State().IsSyncing {
		return
	}

	if err := c.st.SyncWithServer(ctx); err != nil {
		slog.Info("periodic sync failed", "error", err)
	}
}
