package handlers

import (
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	config "github.com/contentdeskhq/contentdesk/configs"
	"github.com/contentdeskhq/contentdesk/pkg/utils"
)

const sessionDuration = 30 * 24 * time.Hour

type AuthHandler struct {
	cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// CreateSession exchanges the service key for a session cookie, so the
// desktop app only handles the key once at sign-in and sends the cookie
// afterwards.
func (h *AuthHandler) CreateSession(c *fiber.Ctx) error {
	var body struct {
		Key string `json:"key"`
	}
	if err := c.BodyParser(&body); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if h.cfg.ServiceKey == "" ||
		subtle.ConstantTimeCompare([]byte(body.Key), []byte(h.cfg.ServiceKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid key",
		})
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, "desktop", sessionDuration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.SendStatus(fiber.StatusOK)
}

func (h *AuthHandler) DestroySession(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1, // Delete cookie
	})

	return c.SendStatus(fiber.StatusOK)
}
