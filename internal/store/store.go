// Package store holds the in-memory content collection and UI-facing
// application state. It is the single writer for both: every mutation goes
// through a Store method, and the hosted database stays the source of truth.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/contentdeskhq/contentdesk/internal/gateway"
	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

// AppState is transient UI state, reset on navigation.
type AppState struct {
	CurrentView    string `json:"current_view"`
	ActivePlatform string `json:"active_platform"`
	StatusFilter   string `json:"status_filter"`
	EditorOpen     bool   `json:"editor_open"`
	SelectedPostID string `json:"selected_post_id"`
	IsSaving       bool   `json:"is_saving"`
	IsSyncing      bool   `json:"is_syncing"`
}

type Store struct {
	mu        sync.Mutex
	repo      gateway.ContentRepository
	notifier  Notifier
	posts     []*models.ContentPost
	platforms []string
	state     AppState
}

func New(repo gateway.ContentRepository, notifier Notifier) *Store {
	return &Store{
		repo:     repo,
		notifier: notifier,
		state:    AppState{CurrentView: "calendar"},
	}
}

// Initialize loads the platform list, the first platform's posts, and leaves
// the store empty on failure. It fails soft: errors are logged and surfaced
// as a notice, never returned.
func (s *Store) Initialize(ctx context.Context) {
	platforms, err := s.repo.GetPlatforms(ctx)
	if err != nil {
		slog.Error("store initialize failed", "error", err)
		s.notify(NoticeError, "Could not load platforms")
		return
	}

	s.mu.Lock()
	s.platforms = platforms
	if len(platforms) > 0 {
		s.state.ActivePlatform = platforms[0]
	}
	s.mu.Unlock()

	if len(platforms) > 0 {
		if err := s.LoadPosts(ctx, platforms[0]); err != nil {
			slog.Error("initial post load failed", "error", err)
		}
	}
}

// LoadPosts replaces the whole collection with a fresh fetch. Unpersisted
// local edits are discarded by design.
func (s *Store) LoadPosts(ctx context.Context, platform string) error {
	posts, err := s.repo.GetPosts(ctx, platform)
	if err != nil {
		s.notify(NoticeError, "Could not load posts")
		return err
	}

	s.mu.Lock()
	s.posts = posts
	s.state.ActivePlatform = platform
	s.mu.Unlock()
	return nil
}

func (s *Store) CreatePost(ctx context.Context, pc *transfer.PostCreation) (*models.ContentPost, error) {
	scheduled, err := time.Parse("2006-01-02T15:04", pc.ScheduledTime)
	if err != nil {
		scheduled = time.Now()
	}

	post := &models.ContentPost{
		ID:            uuid.NewString(),
		Platform:      pc.Platform,
		ContentType:   pc.ContentType,
		Idea:          pc.Idea,
		Caption:       pc.Caption,
		Notes:         pc.Notes,
		Media:         pc.Media,
		Tags:          pc.Tags,
		Status:        models.PostStatusDraft,
		ScheduledTime: scheduled,
	}

	s.setSaving(true)
	defer s.setSaving(false)

	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.notify(NoticeError, "Could not create post")
		return nil, err
	}

	s.mu.Lock()
	s.posts = append(s.posts, post)
	s.mu.Unlock()
	return post, nil
}

// UpdatePost applies the patch optimistically before the remote write. A
// stale id is a silent no-op. On remote failure the previous snapshot is
// restored, so every optimistic write rolls back the same way.
func (s *Store) UpdatePost(ctx context.Context, id string, patch *transfer.PostPatch) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	snapshot := clonePost(s.posts[idx])
	applyPatch(s.posts[idx], patch)
	target := s.posts[idx]
	s.mu.Unlock()

	if err := s.repo.UpdatePost(ctx, target, patch); err != nil {
		s.mu.Lock()
		if idx := s.indexOf(id); idx >= 0 {
			s.posts[idx] = snapshot
		}
		s.mu.Unlock()
		s.notify(NoticeError, "Could not save changes")
		return err
	}
	return nil
}

// SubmitForReview moves a post to pending optimistically and reverts it to
// draft when the remote write fails.
func (s *Store) SubmitForReview(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.posts[idx].Status = models.PostStatusPending
	target := s.posts[idx]
	s.mu.Unlock()

	pending := models.PostStatusPending
	patch := &transfer.PostPatch{Status: &pending}

	if err := s.repo.UpdatePost(ctx, target, patch); err != nil {
		s.mu.Lock()
		if idx := s.indexOf(id); idx >= 0 {
			s.posts[idx].Status = models.PostStatusDraft
		}
		s.mu.Unlock()
		s.notify(NoticeError, "Could not submit for review")
		return err
	}

	s.notify(NoticeInfo, "Submitted for review")
	return nil
}

// DeletePost deletes remotely first and removes the local copy only on
// success.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	target := s.posts[idx]
	s.mu.Unlock()

	if err := s.repo.DeletePost(ctx, target); err != nil {
		s.notify(NoticeError, "Could not delete post")
		return err
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// SyncWithServer fully reloads the active platform. Serves both the manual
// "Sync Now" action and the recovery path for realtime inserts.
func (s *Store) SyncWithServer(ctx context.Context) error {
	s.mu.Lock()
	platform := s.state.ActivePlatform
	s.state.IsSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state.IsSyncing = false
		s.mu.Unlock()
	}()

	if platform == "" {
		return nil
	}
	return s.LoadPosts(ctx, platform)
}

func (s *Store) Posts() []*models.ContentPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.ContentPost, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *Store) Platforms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.platforms))
	copy(out, s.platforms)
	return out
}

func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetView switches the current view and resets the rest of the transient
// state, mirroring a navigation.
func (s *Store) SetView(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentView = view
	s.state.StatusFilter = ""
	s.state.EditorOpen = false
	s.state.SelectedPostID = ""
}

func (s *Store) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.StatusFilter = status
}

func (s *Store) OpenEditor(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EditorOpen = true
	s.state.SelectedPostID = postID
}

func (s *Store) CloseEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EditorOpen = false
	s.state.SelectedPostID = ""
}

func (s *Store) setSaving(saving bool) {
	s.mu.Lock()
	s.state.IsSaving = saving
	s.mu.Unlock()
}

func (s *Store) notify(level, message string) {
	if s.notifier != nil {
		s.notifier.Notify(Notification{Level: level, Message: message})
	}
}

// indexOf must be called with the mutex held.
func (s *Store) indexOf(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePost(p *models.ContentPost) *models.ContentPost {
	cp := *p
	cp.Media = append([]models.MediaFile(nil), p.Media...)
	cp.Tags = append([]string(nil), p.Tags...)
	if p.ApprovedAt != nil {
		at := *p.ApprovedAt
		cp.ApprovedAt = &at
	}
	return &cp
}

func applyPatch(post *models.ContentPost, patch *transfer.PostPatch) {
	if patch.Idea != nil {
		post.Idea = *patch.Idea
	}
	if patch.Caption != nil {
		post.Caption = *patch.Caption
	}
	if patch.Notes != nil {
		post.Notes = *patch.Notes
	}
	if patch.ContentType != nil {
		post.ContentType = *patch.ContentType
	}
	if patch.Status != nil {
		post.Status = *patch.Status
	}
	if patch.RejectionReason != nil {
		post.RejectionReason = *patch.RejectionReason
	}
	if patch.ScheduledTime != nil {
		if scheduled, err := time.Parse("2006-01-02T15:04", *patch.ScheduledTime); err == nil {
			post.ScheduledTime = scheduled
		}
	}
	if patch.Media != nil {
		post.Media = *patch.Media
	}
	if patch.Tags != nil {
		post.Tags = *patch.Tags
	}
	post.UpdatedAt = time.Now()
}
