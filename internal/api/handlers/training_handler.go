package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/contentdeskhq/contentdesk/internal/service"
)

type TrainingHandler struct {
	s service.TrainingService
}

func NewTrainingHandler(service service.TrainingService) *TrainingHandler {
	return &TrainingHandler{s: service}
}

func (h *TrainingHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files selected",
		})
	}

	source := c.FormValue("source")

	var uploaded []interface{}
	for _, file := range files {
		img, err := h.s.Upload(c.Context(), source, file)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		uploaded = append(uploaded, img)
	}

	return c.Status(fiber.StatusOK).JSON(uploaded)
}

func (h *TrainingHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list training images",
		})
	}

	return c.Status(fiber.StatusOK).JSON(images)
}

func (h *TrainingHandler) RemoveImage(c *fiber.Ctx) error {
	id := c.Query("id")

	if err := h.s.Remove(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove training image",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
