package handlers

import (
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/fathima-sithara/files-service/internal/sessions"
	"github.com/fathima-sithara/files-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// AppHandler serves the liveness and counters endpoints.
type AppHandler struct {
	sessions *sessions.Store
	users    repository.UserRepository
	files    repository.FileRepository
}

func NewAppHandler(store *sessions.Store, users repository.UserRepository, files repository.FileRepository) *AppHandler {
	return &AppHandler{sessions: store, users: users, files: files}
}

// Status handles GET /status.
func (h *AppHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"redis": h.sessions.Alive(c.Context()),
		"db":    h.users.Alive(c.Context()),
	})
}

// Stats handles GET /stats.
func (h *AppHandler) Stats(c *fiber.Ctx) error {
	users, err := h.users.Count(c.Context())
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	files, err := h.files.Count(c.Context())
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.JSON(fiber.Map{"users": users, "files": files})
}
