package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/contentdeskhq/contentdesk/internal/service"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type PresetHandler struct {
	s service.PresetService
}

func NewPresetHandler(service service.PresetService) *PresetHandler {
	return &PresetHandler{s: service}
}

func (h *PresetHandler) CreatePreset(c *fiber.Ctx) error {
	var pc transfer.PresetCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse preset",
		})
	}

	preset, err := h.s.Create(c.Context(), &pc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create preset",
		})
	}

	return c.Status(fiber.StatusOK).JSON(preset)
}

func (h *PresetHandler) ListPresets(c *fiber.Ctx) error {
	presets, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list presets",
		})
	}

	return c.Status(fiber.StatusOK).JSON(presets)
}

func (h *PresetHandler) UpdatePreset(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing preset id",
		})
	}

	var pc transfer.PresetCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse preset",
		})
	}

	if err := h.s.Update(c.Context(), id, &pc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to update preset",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PresetHandler) RemovePreset(c *fiber.Ctx) error {
	id := c.Query("id")

	if err := h.s.Remove(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove preset",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
