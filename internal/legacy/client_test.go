package legacy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

func legacyServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var requests []string

	mux := http.NewServeMux()
	mux.HandleFunc("/platforms", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"platforms": []map[string]string{
				{"gid": "111", "name": "instagram"},
				{"gid": "222", "name": "tiktok"},
			},
		})
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path+"?gid="+r.URL.Query().Get("gid"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"posts": []map[string]interface{}{
				{
					"row":            2,
					"content_type":   "reel",
					"idea":           "spring launch",
					"caption":        "new drop",
					"status":         "pending",
					"scheduled_date": "2026-09-01T10:00",
					"media_urls":     []string{"https://img.example/a.png"},
				},
				{
					"row":  3,
					"idea": "no status yet",
				},
			},
		})
	})
	mux.HandleFunc("/post/create", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"row": 7})
	})
	mux.HandleFunc("/post/update", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path+"?gid="+r.URL.Query().Get("gid")+"&row="+r.URL.Query().Get("row"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})
	mux.HandleFunc("/post/caption/update", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})
	mux.HandleFunc("/upload-image", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), content)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://sheet.example/media/abc"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &requests
}

func TestGetPlatforms(t *testing.T) {
	server, _ := legacyServer(t)
	client := NewClient(server.URL)

	platforms, err := client.GetPlatforms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"instagram", "tiktok"}, platforms)
}

func TestGetPostsMapsSheetRows(t *testing.T) {
	server, requests := legacyServer(t)
	client := NewClient(server.URL)

	posts, err := client.GetPosts(context.Background(), "instagram")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	assert.Equal(t, "sheet-111-2", first.ID)
	assert.Equal(t, "instagram", first.Platform)
	assert.Equal(t, "111", first.SheetGID)
	assert.Equal(t, 2, first.SheetRow)
	assert.Equal(t, models.PostStatusPending, first.Status)
	require.Len(t, first.Media, 1)
	assert.Equal(t, "https://img.example/a.png", first.Media[0].FileURL)
	assert.Equal(t, "2026-09-01", first.ScheduledTime.Format("2006-01-02"))

	// Rows with no status come back as drafts.
	assert.Equal(t, models.PostStatusDraft, posts[1].Status)

	assert.Contains(t, *requests, "/posts?gid=111")
}

func TestCreatePostRecordsSheetCoordinates(t *testing.T) {
	server, _ := legacyServer(t)
	client := NewClient(server.URL)

	post := &models.ContentPost{Platform: "tiktok", Idea: "x", Status: models.PostStatusDraft}
	err := client.CreatePost(context.Background(), post)
	require.NoError(t, err)

	assert.Equal(t, "222", post.SheetGID)
	assert.Equal(t, 7, post.SheetRow)
}

func TestUpdatePostRoutesCaptionOnlyEdits(t *testing.T) {
	server, requests := legacyServer(t)
	client := NewClient(server.URL)

	post := &models.ContentPost{ID: "sheet-111-2", SheetGID: "111", SheetRow: 2}
	caption := "tweaked"
	err := client.UpdatePost(context.Background(), post, &transfer.PostPatch{Caption: &caption})
	require.NoError(t, err)
	assert.Contains(t, *requests, "/post/caption/update")

	idea := "broader edit"
	err = client.UpdatePost(context.Background(), post, &transfer.PostPatch{Caption: &caption, Idea: &idea})
	require.NoError(t, err)
	assert.Contains(t, *requests, "/post/update?gid=111&row=2")
}

func TestUpdatePostWithoutSheetCoordinates(t *testing.T) {
	server, _ := legacyServer(t)
	client := NewClient(server.URL)

	caption := "x"
	err := client.UpdatePost(context.Background(), &models.ContentPost{ID: "db-only"}, &transfer.PostPatch{Caption: &caption})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDeletePostIsUnsupported(t *testing.T) {
	server, _ := legacyServer(t)
	client := NewClient(server.URL)

	err := client.DeletePost(context.Background(), &models.ContentPost{ID: "sheet-111-2"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestUploadMedia(t *testing.T) {
	server, _ := legacyServer(t)
	client := NewClient(server.URL)

	url, err := client.UploadMedia(context.Background(), "post-media/abc", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://sheet.example/media/abc", url)
}

func TestServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL)

	_, err := client.GetPlatforms(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
