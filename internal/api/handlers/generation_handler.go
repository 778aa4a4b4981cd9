package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/contentdeskhq/contentdesk/internal/queue"
	"github.com/contentdeskhq/contentdesk/internal/service"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type GenerationHandler struct {
	genai       service.GenAIService
	AsynqClient *asynq.Client
}

func NewGenerationHandler(genai service.GenAIService, asynqClient *asynq.Client) *GenerationHandler {
	return &GenerationHandler{genai: genai, AsynqClient: asynqClient}
}

// Status lets the panel ask whether generation is available; a missing API
// key shows up here as a disabled feature, not as a call-time failure.
func (h *GenerationHandler) Status(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"enabled": h.genai.Enabled(),
	})
}

func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	if !h.genai.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Image generation is not configured",
		})
	}

	var req transfer.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt cannot be empty",
		})
	}

	err := queue.EnqueueGeneration(h.AsynqClient, queue.GenerateImagePayload{
		Prompt:   req.Prompt,
		PresetID: req.PresetID,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error queueing generation",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Generation queued",
	})
}
