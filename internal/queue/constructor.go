package queue

import (
	"github.com/contentdeskhq/contentdesk/internal/repository"
	"github.com/contentdeskhq/contentdesk/internal/service"
	"github.com/contentdeskhq/contentdesk/internal/store"
)

type Queue struct {
	pr       repository.StylePresetRepository
	tr       repository.TrainingImageRepository
	ar       repository.BrandAssetRepository
	genai    service.GenAIService
	storage  *service.StorageService
	notifier store.Notifier
}

func NewQueue(
	pr repository.StylePresetRepository,
	tr repository.TrainingImageRepository,
	ar repository.BrandAssetRepository,
	genai service.GenAIService,
	storage *service.StorageService,
	notifier store.Notifier) *Queue {
	return &Queue{
		pr:       pr,
		tr:       tr,
		ar:       ar,
		genai:    genai,
		storage:  storage,
		notifier: notifier,
	}
}

const TaskTypeGenerateImage = "generate:image"

type GenerateImagePayload struct {
	Prompt   string `json:"prompt"`
	PresetID string `json:"preset_id"`
}
