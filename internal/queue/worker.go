package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/contentdeskhq/contentdesk/internal/models"
	"github.com/contentdeskhq/contentdesk/internal/service"
	"github.com/contentdeskhq/contentdesk/internal/store"
)

func (j *Queue) HandleGenerateImageTask(ctx context.Context, task *asynq.Task) error {
	var payload GenerateImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.GenerateImage(ctx, payload); err != nil {
		log.Printf("Error generating image: %v", err)
		j.notify(store.NoticeError, "Image generation failed")
		return err
	}

	j.notify(store.NoticeSuccess, "Generated image added to the asset library")
	return nil
}

// GenerateImage runs the full panel pipeline: resolve the preset's reference
// images, extract a style hint, synthesize, upload, and file the result as a
// brand asset under the Generated folder.
func (j *Queue) GenerateImage(ctx context.Context, payload GenerateImagePayload) error {
	var preset *models.StylePreset
	var err error

	if payload.PresetID != "" {
		preset, err = j.pr.GetByID(ctx, payload.PresetID)
		if err != nil {
			return err
		}
	}

	referenceStyle := ""
	if refs := j.referenceURLs(ctx, preset); len(refs) > 0 {
		style, err := j.genai.ExtractStyle(ctx, refs)
		if err != nil {
			return err
		}
		scene, err := j.genai.ExtractScene(ctx, refs)
		if err != nil {
			return err
		}
		referenceStyle = style + "\nSubject reference: " + scene
	}

	image, mime, err := j.genai.GenerateImage(ctx, payload.Prompt, preset, referenceStyle)
	if err != nil {
		return err
	}

	name, err := gonanoid.New()
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s/%s", service.PrefixGeneratedImages, name)
	url, err := j.storage.Upload(ctx, key, image, mime)
	if err != nil {
		return err
	}

	asset := &models.BrandAsset{
		ID:       uuid.NewString(),
		FileName: name,
		Kind:     models.MediaKindImage,
		FileURL:  url,
		Folder:   "Generated",
		Tags:     []string{"generated"},
		FileSize: int64(len(image)),
	}
	return j.ar.Create(ctx, asset)
}

// referenceURLs resolves the preset's training-image IDs to URLs, capped at
// the preset's reference count. Dangling IDs are skipped silently.
func (j *Queue) referenceURLs(ctx context.Context, preset *models.StylePreset) []string {
	if preset == nil {
		return nil
	}

	limit := preset.ReferenceCount
	if limit <= 0 || limit > len(preset.ImageIDs) {
		limit = len(preset.ImageIDs)
	}

	var urls []string
	for _, id := range preset.ImageIDs {
		if len(urls) >= limit {
			break
		}
		img, err := j.tr.GetByID(ctx, id)
		if err != nil || img == nil {
			continue
		}
		urls = append(urls, img.FileURL)
	}
	return urls
}

func (j *Queue) notify(level, message string) {
	if j.notifier != nil {
		j.notifier.Notify(store.Notification{Level: level, Message: message})
	}
}
