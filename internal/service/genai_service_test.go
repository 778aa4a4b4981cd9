package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/contentdeskhq/contentdesk/configs"
	"github.com/contentdeskhq/contentdesk/internal/models"
)

func genaiServer(t *testing.T) (*httptest.Server, *[]map[string]interface{}) {
	t.Helper()
	var bodies []map[string]interface{}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "  warm golden-hour light  "}},
			},
		})
	})
	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString([]byte("png-bytes"))},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &bodies
}

func testService(baseURL string) GenAIService {
	return NewGenAIService(cfg.Config{GenAIAPIKey: "test-key", GenAIBaseURL: baseURL})
}

func TestDisabledWithoutKey(t *testing.T) {
	svc := NewGenAIService(cfg.Config{})

	assert.False(t, svc.Enabled())

	_, err := svc.ExtractStyle(context.Background(), []string{"https://img.example/a.png"})
	assert.ErrorIs(t, err, ErrGenAIDisabled)

	_, _, err = svc.GenerateImage(context.Background(), "a poster", nil, "")
	assert.ErrorIs(t, err, ErrGenAIDisabled)
}

func TestExtractStyleSendsImages(t *testing.T) {
	server, bodies := genaiServer(t)
	svc := testService(server.URL)

	style, err := svc.ExtractStyle(context.Background(), []string{"https://img.example/a.png", "https://img.example/b.png"})
	require.NoError(t, err)
	assert.Equal(t, "warm golden-hour light", style)

	require.Len(t, *bodies, 1)
	messages := (*bodies)[0]["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	// One text part plus one part per reference image.
	assert.Len(t, content, 3)
}

func TestGenerateImageUsesPresetParameters(t *testing.T) {
	server, bodies := genaiServer(t)
	svc := testService(server.URL)

	preset := &models.StylePreset{
		OutputStyle:    "editorial photography",
		AspectRatio:    "9:16",
		UseBrandColors: true,
	}

	image, mime, err := svc.GenerateImage(context.Background(), "launch teaser", preset, "moody light")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), image)
	assert.Equal(t, "image/png", mime)

	require.Len(t, *bodies, 1)
	body := (*bodies)[0]
	assert.Equal(t, "1024x1792", body["size"])
	prompt := body["prompt"].(string)
	assert.Contains(t, prompt, "launch teaser")
	assert.Contains(t, prompt, "moody light")
	assert.Contains(t, prompt, "editorial photography")
	assert.Contains(t, prompt, "brand color palette")
}

func TestAPIErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	t.Cleanup(server.Close)
	svc := testService(server.URL)

	_, err := svc.ExtractScene(context.Background(), []string{"https://img.example/a.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
