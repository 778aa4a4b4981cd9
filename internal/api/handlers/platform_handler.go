package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contentdeskhq/contentdesk/internal/store"
)

type PlatformHandler struct {
	st *store.Store
}

func NewPlatformHandler(st *store.Store) *PlatformHandler {
	return &PlatformHandler{st: st}
}

func (h *PlatformHandler) ListPlatforms(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.st.Platforms())
}

func (h *PlatformHandler) AppState(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.st.State())
}
