package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type stubProvider struct {
	name  string
	fail  bool
	calls map[string]int
	posts []*models.ContentPost
}

func newStubProvider(name string, fail bool) *stubProvider {
	return &stubProvider{name: name, fail: fail, calls: make(map[string]int)}
}

func (s *stubProvider) err() error {
	if s.fail {
		return errors.New(s.name + " unavailable")
	}
	return nil
}

func (s *stubProvider) GetPlatforms(ctx context.Context) ([]string, error) {
	s.calls["GetPlatforms"]++
	return []string{s.name}, s.err()
}

func (s *stubProvider) GetPosts(ctx context.Context, platform string) ([]*models.ContentPost, error) {
	s.calls["GetPosts"]++
	if s.fail {
		return nil, s.err()
	}
	return s.posts, nil
}

func (s *stubProvider) CreatePost(ctx context.Context, post *models.ContentPost) error {
	s.calls["CreatePost"]++
	return s.err()
}

func (s *stubProvider) UpdatePost(ctx context.Context, post *models.ContentPost, patch *transfer.PostPatch) error {
	s.calls["UpdatePost"]++
	return s.err()
}

func (s *stubProvider) DeletePost(ctx context.Context, post *models.ContentPost) error {
	s.calls["DeletePost"]++
	return s.err()
}

func (s *stubProvider) UploadMedia(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.calls["UploadMedia"]++
	if s.fail {
		return "", s.err()
	}
	return "https://" + s.name + "/" + key, nil
}

func TestChainPrefersPrimary(t *testing.T) {
	primary := newStubProvider("primary", false)
	fallback := newStubProvider("fallback", false)
	chain := NewChain(primary, fallback)

	posts, err := chain.GetPosts(context.Background(), models.PlatformInstagram)
	require.NoError(t, err)
	assert.Nil(t, posts)

	assert.Equal(t, 1, primary.calls["GetPosts"])
	assert.Zero(t, fallback.calls["GetPosts"])
}

func TestChainFallsThroughOnPrimaryFailure(t *testing.T) {
	primary := newStubProvider("primary", true)
	fallback := newStubProvider("fallback", false)
	fallback.posts = []*models.ContentPost{{ID: "1"}}
	chain := NewChain(primary, fallback)

	posts, err := chain.GetPosts(context.Background(), models.PlatformInstagram)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t, 1, primary.calls["GetPosts"])
	assert.Equal(t, 1, fallback.calls["GetPosts"])
}

func TestChainSurfacesOnlyLastError(t *testing.T) {
	primary := newStubProvider("primary", true)
	fallback := newStubProvider("fallback", true)
	chain := NewChain(primary, fallback)

	err := chain.CreatePost(context.Background(), &models.ContentPost{ID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallback")
}

func TestChainWriteStopsAfterFirstSuccess(t *testing.T) {
	primary := newStubProvider("primary", false)
	fallback := newStubProvider("fallback", false)
	chain := NewChain(primary, fallback)

	status := models.PostStatusPending
	err := chain.UpdatePost(context.Background(), &models.ContentPost{ID: "1"}, &transfer.PostPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 1, primary.calls["UpdatePost"])
	assert.Zero(t, fallback.calls["UpdatePost"])
}

func TestChainUploadFallsBack(t *testing.T) {
	primary := newStubProvider("primary", true)
	fallback := newStubProvider("fallback", false)
	chain := NewChain(primary, fallback)

	url, err := chain.UploadMedia(context.Background(), "post-media/abc", []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://fallback/post-media/abc", url)
}

func TestChainWithoutProviders(t *testing.T) {
	chain := NewChain()

	_, err := chain.GetPlatforms(context.Background())
	require.Error(t, err)
}
