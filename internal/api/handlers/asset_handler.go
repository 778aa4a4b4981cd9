package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/contentdeskhq/contentdesk/internal/service"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type AssetHandler struct {
	s service.AssetService
}

func NewAssetHandler(service service.AssetService) *AssetHandler {
	return &AssetHandler{s: service}
}

func (h *AssetHandler) UploadAsset(c *fiber.Ctx) error {
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

	folder := c.FormValue("folder")
	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	var uploaded []interface{}
	for _, file := range files {
		asset, err := h.s.Upload(c.Context(), folder, tags, file)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		uploaded = append(uploaded, asset)
	}

	return c.Status(fiber.StatusOK).JSON(uploaded)
}

func (h *AssetHandler) ListAssets(c *fiber.Ctx) error {
	assets, err := h.s.List(c.Context(), c.Query("folder"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list assets",
		})
	}

	return c.Status(fiber.StatusOK).JSON(assets)
}

func (h *AssetHandler) UpdateAsset(c *fiber.Ctx) error {
	var update transfer.AssetUpdate
	if err := c.BodyParser(&update); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse update",
		})
	}

	if err := h.s.Update(c.Context(), update.ID, update.Folder, update.Tags); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to update asset",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *AssetHandler) RemoveAsset(c *fiber.Ctx) error {
	id := c.Query("id")

	if err := h.s.Remove(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove asset",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
