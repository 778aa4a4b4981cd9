package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contentdeskhq/contentdesk/internal/service"
	"github.com/contentdeskhq/contentdesk/internal/store"
	"github.com/contentdeskhq/contentdesk/internal/transfer"
)

type PostHandler struct {
	st    *store.Store
	media service.MediaService
}

func NewPostHandler(st *store.Store, media service.MediaService) *PostHandler {
	return &PostHandler{st: st, media: media}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	status := c.Query("status")
	platform := c.Query("platform")

	posts := h.st.Filtered(status, platform)
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) Calendar(c *fiber.Ctx) error {
	status := c.Query("status")
	platform := c.Query("platform")

	return c.Status(fiber.StatusOK).JSON(h.st.ByDate(status, platform))
}

func (h *PostHandler) Counts(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.st.StatusCounts())
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	pc := transfer.PostCreation{
		Platform:      c.FormValue("platform"),
		ContentType:   c.FormValue("content_type"),
		Idea:          c.FormValue("idea"),
		Caption:       c.FormValue("caption"),
		Notes:         c.FormValue("notes"),
		ScheduledTime: c.FormValue("scheduled_time"),
	}

	// The store does not enforce this; creation requires at least an idea or
	// a caption and the check lives with the caller.
	if pc.Idea == "" && pc.Caption == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Post needs an idea or a caption",
		})
	}

	if pc.ScheduledTime != "" {
		if _, err := time.Parse("2006-01-02T15:04", pc.ScheduledTime); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid scheduled time",
			})
		}
	}

	if form, err := c.MultipartForm(); err == nil {
		files := form.File["files"]
		if len(files) > 0 {
			media, err := h.media.ProcessUploads(c.Context(), files)
			if err != nil {
				slog.Error(err.Error())
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			pc.Media = media
		}
	}

	post, err := h.st.CreatePost(c.Context(), &pc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to create post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post id",
		})
	}

	var patch transfer.PostPatch
	if err := c.BodyParser(&patch); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse patch",
		})
	}

	if err := h.st.UpdatePost(c.Context(), id, &patch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save changes",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) SubmitForReview(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing post id",
		})
	}

	if err := h.st.SubmitForReview(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to submit for review",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	id := c.Query("id")

	if err := h.st.DeletePost(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove post",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) SyncNow(c *fiber.Ctx) error {
	if err := h.st.SyncWithServer(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to sync",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.st.Posts())
}

func (h *PostHandler) LoadPlatform(c *fiber.Ctx) error {
	platform := c.Query("platform")
	if platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing platform",
		})
	}

	if err := h.st.LoadPosts(c.Context(), platform); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.st.Posts())
}
