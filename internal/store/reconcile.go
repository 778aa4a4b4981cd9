package store

import (
	"context"
	"log/slog"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ChangeEvent is a row-level change pushed from the hosted database. Post
// carries the new row for inserts and updates; OldID identifies deletes.
type ChangeEvent struct {
	Type  EventType           `json:"type"`
	Post  *models.ContentPost `json:"record,omitempty"`
	OldID string              `json:"old_id,omitempty"`
}

// Run consumes change events until the channel closes or the context is
// cancelled. Events apply strictly in receipt order, last write wins; there
// is no version check, so a stale update can regress local state. Accepted
// risk of the design.
func (s *Store) Run(ctx context.Context, events <-chan ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.ApplyChange(ctx, ev)
		}
	}
}

// ApplyChange reconciles one external change into local state.
func (s *Store) ApplyChange(ctx context.Context, ev ChangeEvent) {
	switch ev.Type {
	case EventInsert:
		// Partial insert payloads caused duplicate rows in the past, so an
		// insert triggers a full re-fetch instead of a merge.
		if err := s.SyncWithServer(ctx); err != nil {
			slog.Error("resync after insert failed", "error", err)
			return
		}
		s.notify(NoticeInfo, "New post added from another device")

	case EventUpdate:
		if ev.Post == nil {
			return
		}
		s.applyRemoteUpdate(ev.Post)

	case EventDelete:
		s.applyRemoteDelete(ev.OldID)

	default:
		slog.Warn("unknown change event type", "type", string(ev.Type))
	}
}

// applyRemoteUpdate patches only the fields the approval app is allowed to
// touch, preserving local-only edits to everything else. An update for a
// post we do not hold is dropped silently.
func (s *Store) applyRemoteUpdate(incoming *models.ContentPost) {
	s.mu.Lock()
	idx := s.indexOf(incoming.ID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	post := s.posts[idx]
	prevStatus := post.Status
	post.Status = incoming.Status
	post.RejectionReason = incoming.RejectionReason
	post.ApprovedAt = incoming.ApprovedAt
	post.Caption = incoming.Caption
	s.mu.Unlock()

	if prevStatus == incoming.Status {
		return
	}
	switch incoming.Status {
	case models.PostStatusApproved:
		s.notify(NoticeSuccess, "Post approved")
	case models.PostStatusRejected:
		s.notify(NoticeError, "Post rejected: "+incoming.RejectionReason)
	}
}

func (s *Store) applyRemoteDelete(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	s.mu.Unlock()

	s.notify(NoticeInfo, "Post removed from another device")
}
