// Package legacy talks to the spreadsheet-backed HTTP API that predates the
// hosted database. It is only used as a fallback provider when the primary
// path fails.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

// ErrUnsupported is returned for operations the spreadsheet API has no
// endpoint for.
var ErrUnsupported = errors.New("operation not supported by legacy api")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// The legacy Apps Script endpoint is slow; this is the only network
		// path with an explicit client-side timeout.
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type legacyPlatform struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

type legacyPost struct {
	Row           int      `json:"row"`
	ContentType   string   `json:"content_type"`
	Idea          string   `json:"idea"`
	Caption       string   `json:"caption"`
	Notes         string   `json:"notes"`
	Status        string   `json:"status"`
	ScheduledDate string   `json:"scheduled_date"`
	MediaURLs     []string `json:"media_urls"`
	Tags          []string `json:"tags"`
}

func (c *Client) GetPlatforms(ctx context.Context) ([]string, error) {
	platforms, err := c.fetchPlatforms(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		names = append(names, p.Name)
	}
	return names, nil
}

func (c *Client) GetPosts(ctx context.Context, platform string) ([]*models.ContentPost, error) {
	gid, err := c.resolveGID(ctx, platform)
	if err != nil {
		return nil, err
	}

	var result struct {
		Posts []legacyPost `json:"posts"`
	}
	if err := c.getJSON(ctx, "/posts?gid="+url.QueryEscape(gid), &result); err != nil {
		return nil, err
	}

	posts := make([]*models.ContentPost, 0, len(result.Posts))
	for _, lp := range result.Posts {
		posts = append(posts, lp.toContentPost(platform, gid))
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, post *models.ContentPost) error {
	gid, err := c.resolveGID(ctx, post.Platform)
	if err != nil {
		return err
	}

	mediaURLs := make([]string, 0, len(post.Media))
	for _, m := range post.Media {
		mediaURLs = append(mediaURLs, m.FileURL)
	}

	body := map[string]interface{}{
		"gid":            gid,
		"content_type":   post.ContentType,
		"idea":           post.Idea,
		"caption":        post.Caption,
		"notes":          post.Notes,
		"status":         post.Status,
		"scheduled_date": post.ScheduledTime.Format("2006-01-02T15:04"),
		"media_urls":     mediaURLs,
		"tags":           post.Tags,
	}

	var result struct {
		Row int `json:"row"`
	}
	if err := c.postJSON(ctx, "/post/create", body, &result); err != nil {
		return err
	}

	post.SheetGID = gid
	post.SheetRow = result.Row
	return nil
}

func (c *Client) UpdatePost(ctx context.Context, post *models.ContentPost, patch *transfer.PostPatch) error {
	if post.SheetGID == "" || post.SheetRow == 0 {
		return ErrUnsupported
	}

	// Caption-only edits have a dedicated endpoint on the spreadsheet side.
	if patch.Caption != nil && isCaptionOnly(patch) {
		body := map[string]interface{}{
			"gid":     post.SheetGID,
			"row":     post.SheetRow,
			"caption": *patch.Caption,
		}
		return c.postJSON(ctx, "/post/caption/update", body, nil)
	}

	path := fmt.Sprintf("/post/update?gid=%s&row=%d", url.QueryEscape(post.SheetGID), post.SheetRow)
	return c.postJSON(ctx, path, patch, nil)
}

func (c *Client) DeletePost(ctx context.Context, post *models.ContentPost) error {
	return ErrUnsupported
}

// UploadMedia sends a multipart upload and returns the hosted URL the legacy
// API responds with. The key is kept as the file name so both backends
// address media the same way.
func (c *Client) UploadMedia(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", key)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if err := writer.Close(); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-image", &buf)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("legacy upload failed with status %d", resp.StatusCode)
		slog.Info(err.Error())
		return "", err
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return result.URL, nil
}

func (c *Client) fetchPlatforms(ctx context.Context) ([]legacyPlatform, error) {
	var result struct {
		Platforms []legacyPlatform `json:"platforms"`
	}
	if err := c.getJSON(ctx, "/platforms", &result); err != nil {
		return nil, err
	}
	return result.Platforms, nil
}

func (c *Client) resolveGID(ctx context.Context, platform string) (string, error) {
	platforms, err := c.fetchPlatforms(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range platforms {
		if p.Name == platform {
			return p.GID, nil
		}
	}
	return "", fmt.Errorf("no sheet for platform %s", platform)
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("legacy api returned status %d for %s", resp.StatusCode, path)
		slog.Info(err.Error())
		return err
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("legacy api returned status %d for %s", resp.StatusCode, path)
		slog.Info(err.Error())
		return err
	}

	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func isCaptionOnly(patch *transfer.PostPatch) bool {
	return patch.Idea == nil && patch.Notes == nil && patch.ScheduledTime == nil &&
		patch.ContentType == nil && patch.Status == nil && patch.RejectionReason == nil &&
		patch.Media == nil && patch.Tags == nil
}

func (lp legacyPost) toContentPost(platform, gid string) *models.ContentPost {
	post := &models.ContentPost{
		ID:          "sheet-" + gid + "-" + strconv.Itoa(lp.Row),
		Platform:    platform,
		ContentType: lp.ContentType,
		Idea:        lp.Idea,
		Caption:     lp.Caption,
		Notes:       lp.Notes,
		Status:      lp.Status,
		Tags:        lp.Tags,
		SheetGID:    gid,
		SheetRow:    lp.Row,
	}
	if lp.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if scheduled, err := time.Parse("2006-01-02T15:04", lp.ScheduledDate); err == nil {
		post.ScheduledTime = scheduled
	}
	for _, u := range lp.MediaURLs {
		post.Media = append(post.Media, models.MediaFile{FileName: u, Kind: models.MediaKindImage, FileURL: u})
	}
	return post
}
