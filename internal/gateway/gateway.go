// Package gateway fronts the two content backends: the hosted Postgres
// database (primary) and the legacy spreadsheet HTTP API (fallback). Callers
// go through one ContentRepository; providers are tried in rank order and
// only the final outcome surfaces.
package gateway

import (
	"context"
	"errors"
	"log/slog"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/repository"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type ContentRepository interface {
	GetPlatforms(ctx context.Context) ([]string, error)
	GetPosts(ctx context.Context, platform string) ([]*models.ContentPost, error)
	CreatePost(ctx context.Context, post *models.ContentPost) error
	UpdatePost(ctx context.Context, post *models.ContentPost, patch *transfer.PostPatch) error
	DeletePost(ctx context.Context, post *models.ContentPost) error
	UploadMedia(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// BucketUploader is the slice of the storage service the primary provider
// needs.
type BucketUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type primary struct {
	repo   repository.ContentItemRepository
	bucket BucketUploader
}

// NewPrimary adapts the Postgres repository and the object-storage bucket
// into a ContentRepository.
func NewPrimary(repo repository.ContentItemRepository, bucket BucketUploader) ContentRepository {
	return &primary{repo: repo, bucket: bucket}
}

func (p *primary) GetPlatforms(ctx context.Context) ([]string, error) {
	return p.repo.ListPlatforms(ctx)
}

func (p *primary) GetPosts(ctx context.Context, platform string) ([]*models.ContentPost, error) {
	return p.repo.ListByPlatform(ctx, platform)
}

func (p *primary) CreatePost(ctx context.Context, post *models.ContentPost) error {
	return p.repo.Create(ctx, post)
}

func (p *primary) UpdatePost(ctx context.Context, post *models.ContentPost, patch *transfer.PostPatch) error {
	return p.repo.Update(ctx, post.ID, patch)
}

func (p *primary) DeletePost(ctx context.Context, post *models.ContentPost) error {
	return p.repo.Remove(ctx, post.ID)
}

func (p *primary) UploadMedia(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return p.bucket.Upload(ctx, key, data, contentType)
}

// Chain tries providers in order. An intermediate failure is logged and the
// next provider takes over; the caller only sees the last error. Reads do not
// merge results across providers: the first success wins exclusively.
type Chain struct {
	providers []ContentRepository
}

func NewChain(providers ...ContentRepository) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) GetPlatforms(ctx context.Context) ([]string, error) {
	var lastErr error
	for _, p := range c.providers {
		platforms, err := p.GetPlatforms(ctx)
		if err == nil {
			return platforms, nil
		}
		slog.Warn("provider failed, trying next", "op", "GetPlatforms", "error", err)
		lastErr = err
	}
	return nil, c.exhausted(lastErr)
}

func (c *Chain) GetPosts(ctx context.Context, platform string) ([]*models.ContentPost, error) {
	var lastErr error
	for _, p := range c.providers {
		posts, err := p.GetPosts(ctx, platform)
		if err == nil {
			return posts, nil
		}
		slog.Warn("provider failed, trying next", "op", "GetPosts", "platform", platform, "error", err)
		lastErr = err
	}
	return nil, c.exhausted(lastErr)
}

func (c *Chain) CreatePost(ctx context.Context, post *models.ContentPost) error {
	var lastErr error
	for _, p := range c.providers {
		if err := p.CreatePost(ctx, post); err != nil {
			slog.Warn("provider failed, trying next", "op", "CreatePost", "error", err)
			lastErr = err
			continue
		}
		return nil
	}
	return c.exhausted(lastErr)
}

func (c *Chain) UpdatePost(ctx context.Context, post *models.ContentPost, patch *transfer.PostPatch) error {
	var lastErr error
	for _, p := range c.providers {
		if err := p.UpdatePost(ctx, post, patch); err != nil {
			slog.Warn("provider failed, trying next", "op", "UpdatePost", "id", post.ID, "error", err)
			lastErr = err
			continue
		}
		return nil
	}
	return c.exhausted(lastErr)
}

func (c *Chain) DeletePost(ctx context.Context, post *models.ContentPost) error {
	var lastErr error
	for _, p := range c.providers {
		if err := p.DeletePost(ctx, post); err != nil {
			slog.Warn("provider failed, trying next", "op", "DeletePost", "id", post.ID, "error", err)
			lastErr = err
			continue
		}
		return nil
	}
	return c.exhausted(lastErr)
}

func (c *Chain) UploadMedia(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	var lastErr error
	for _, p := range c.providers {
		url, err := p.UploadMedia(ctx, key, data, contentType)
		if err == nil {
			return url, nil
		}
		slog.Warn("provider failed, trying next", "op", "UploadMedia", "key", key, "error", err)
		lastErr = err
	}
	return "", c.exhausted(lastErr)
}

func (c *Chain) exhausted(lastErr error) error {
	if lastErr != nil {
		return lastErr
	}
	return errors.New("no content providers configured")
}
