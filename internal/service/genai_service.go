package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	cfg "github.com/contentdeskhq/contentdesk/configs"
	"github.com/contentdeskhq/contentdesk/internal/models"
)

// ErrGenAIDisabled is returned when no API key was configured. Handlers turn
// this into a disabled-feature notice instead of a call failure.
var ErrGenAIDisabled = errors.New("image generation is not configured")

type GenAIService interface {
	Enabled() bool
	ExtractStyle(ctx context.Context, imageURLs []string) (string, error)
	ExtractScene(ctx context.Context, imageURLs []string) (string, error)
	GenerateImage(ctx context.Context, prompt string, preset *models.StylePreset, referenceStyle string) ([]byte, string, error)
}

type genAIService struct {
	cfg  cfg.Config
	http *http.Client
}

func NewGenAIService(cfg cfg.Config) GenAIService {
	return &genAIService{cfg: cfg, http: &http.Client{}}
}

func (g *genAIService) Enabled() bool {
	return g.cfg.GenAIEnabled()
}

const stylePrompt = "Describe the photographic style of these reference images: lighting, color palette, composition and mood. Answer with a single dense paragraph usable as an image-generation style hint."

const scenePrompt = "Describe the scene and subject of these reference images in concrete visual terms. Answer with a single dense paragraph."

func (g *genAIService) ExtractStyle(ctx context.Context, imageURLs []string) (string, error) {
	return g.describeImages(ctx, stylePrompt, imageURLs)
}

func (g *genAIService) ExtractScene(ctx context.Context, imageURLs []string) (string, error) {
	return g.describeImages(ctx, scenePrompt, imageURLs)
}

func (g *genAIService) describeImages(ctx context.Context, prompt string, imageURLs []string) (string, error) {
	if !g.Enabled() {
		return "", ErrGenAIDisabled
	}

	content := []map[string]interface{}{
		{"type": "text", "text": prompt},
	}
	for _, u := range imageURLs {
		content = append(content, map[string]interface{}{
			"type":      "image_url",
			"image_url": map[string]string{"url": u},
		})
	}

	body := map[string]interface{}{
		"model": "gpt-4o",
		"messages": []map[string]interface{}{
			{"role": "user", "content": content},
		},
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := g.call(ctx, "/chat/completions", body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// GenerateImage synthesizes one image from the prompt plus the preset's
// parameters and the extracted style hint. Returns raw bytes and mime type.
func (g *genAIService) GenerateImage(ctx context.Context, prompt string, preset *models.StylePreset, referenceStyle string) ([]byte, string, error) {
	if !g.Enabled() {
		return nil, "", ErrGenAIDisabled
	}

	full := prompt
	if referenceStyle != "" {
		full = fmt.Sprintf("%s\n\nStyle: %s", prompt, referenceStyle)
	}
	size := "1024x1024"
	if preset != nil {
		if preset.OutputStyle != "" {
			full = fmt.Sprintf("%s\n\nOutput style: %s", full, preset.OutputStyle)
		}
		if preset.UseBrandColors {
			full += "\nUse the brand color palette of the reference images."
		}
		switch preset.AspectRatio {
		case "9:16":
			size = "1024x1792"
		case "16:9":
			size = "1792x1024"
		}
	}

	body := map[string]interface{}{
		"model":           "gpt-image-1",
		"prompt":          full,
		"size":            size,
		"response_format": "b64_json",
	}

	var result struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := g.call(ctx, "/images/generations", body, &result); err != nil {
		return nil, "", err
	}
	if len(result.Data) == 0 {
		return nil, "", errors.New("empty image response")
	}

	raw, err := base64.StdEncoding.DecodeString(result.Data[0].B64JSON)
	if err != nil {
		slog.Info(err.Error())
		return nil, "", err
	}
	return raw, "image/png", nil
}

func (g *genAIService) call(ctx context.Context, path string, body interface{}, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.GenAIBaseURL+path, bytes.NewReader(payload))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.GenAIAPIKey)

	resp, err := g.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		err = fmt.Errorf("generation api returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
		slog.Info(err.Error())
		return err
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
