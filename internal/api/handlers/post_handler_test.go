package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/store"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type stubContentRepo struct{}

func (stubContentRepo) GetPlatforms(ctx context.Context) ([]string, error) {
	return []string{models.PlatformInstagram}, nil
}

func (stubContentRepo) GetPosts(ctx context.Context, platform string) ([]*models.ContentPost, error) {
	return nil, nil
}

func (stubContentRepo) CreatePost(ctx context.Context, post *models.ContentPost) error {
	return nil
}

func (stubContentRepo) UpdatePost(ctx context.Context, post *models.ContentPost, patch *transfer.PostPatch) error {
	return nil
}

func (stubContentRepo) DeletePost(ctx context.Context, post *models.ContentPost) error {
	return nil
}

func (stubContentRepo) UploadMedia(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return "https://media.example/" + key, nil
}

type stubMedia struct{}

func (stubMedia) ProcessUploads(ctx context.Context, files []*multipart.FileHeader) ([]models.MediaFile, error) {
	return nil, nil
}

func postApp() (*fiber.App, *store.Store) {
	st := store.New(stubContentRepo{}, nil)
	app := fiber.New()
	h := NewPostHandler(st, stubMedia{})
	app.Post("/api/posts/create", h.CreatePost)
	return app, st
}

func createPost(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreatePostRejectsMalformedScheduledTime(t *testing.T) {
	app, st := postApp()

	resp := createPost(t, app, url.Values{
		"platform":       {models.PlatformInstagram},
		"idea":           {"spring launch"},
		"scheduled_time": {"tomorrow at noon"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Invalid scheduled time")
	assert.Empty(t, st.Posts())
}

func TestCreatePostRequiresIdeaOrCaption(t *testing.T) {
	app, st := postApp()

	resp := createPost(t, app, url.Values{
		"platform": {models.PlatformInstagram},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, st.Posts())
}

func TestCreatePostAcceptsValidForm(t *testing.T) {
	app, st := postApp()

	resp := createPost(t, app, url.Values{
		"platform":       {models.PlatformInstagram},
		"idea":           {"spring launch"},
		"scheduled_time": {"2026-09-01T10:00"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	posts := st.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "2026-09-01T10:00", posts[0].ScheduledTime.Format("2006-01-02T15:04"))
	assert.Equal(t, models.PostStatusDraft, posts[0].Status)
}
