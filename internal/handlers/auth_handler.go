package handlers

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/fathima-sithara/files-service/internal/middleware"
	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/services"
	"github.com/fathima-sithara/files-service/internal/sessions"
	"github.com/fathima-sithara/files-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing email")
	}
	user, err := h.svc.Register(c.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingEmail):
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing email")
	case errors.Is(err, services.ErrMissingPassword):
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing password")
	case errors.Is(err, services.ErrEmailTaken):
		return utils.JSONError(c, fiber.StatusBadRequest, "Already exist")
	case err != nil:
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID.Hex(), "email": user.Email})
}

// Connect handles GET /connect: Basic auth in, session token out.
func (h *AuthHandler) Connect(c *fiber.Ctx) error {
	email, password, ok := basicCredentials(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	token, err := h.svc.Login(c.Context(), email, password)
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, sessions.ErrUnavailable):
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	case err != nil:
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.JSON(fiber.Map{"token": token})
}

// Disconnect handles GET /disconnect.
func (h *AuthHandler) Disconnect(c *fiber.Ctx) error {
	err := h.svc.Logout(c.Context(), c.Get("X-Token"))
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, sessions.ErrUnavailable):
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	case err != nil:
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /users/me; the token was already resolved by middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)
	return c.JSON(fiber.Map{"id": user.ID.Hex(), "email": user.Email})
}

func basicCredentials(header string) (email, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return "", "", false
	}
	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}
