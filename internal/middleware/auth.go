package middleware

import (
	"errors"

	"github.com/fathima-sithara/files-service/internal/services"
	"github.com/fathima-sithara/files-service/internal/sessions"
	"github.com/fathima-sithara/files-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// UserKey is the fiber locals key carrying the authenticated *models.User.
const UserKey = "user"

// RequireToken resolves the X-Token header and rejects the request when it
// does not map to a live session. A session-store outage is a 500, never a
// silent 401.
func RequireToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.UserFromToken(c.Context(), c.Get("X-Token"))
		if errors.Is(err, sessions.ErrUnavailable) {
			return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
		}
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals(UserKey, user)
		return c.Next()
	}
}

// OptionalToken resolves the X-Token header when present. An unknown or
// missing token passes through anonymously, but a session-store outage is
// still a 500: unavailable is not absent, and downgrading the caller to
// anonymous would change what the data endpoints serve.
func OptionalToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.UserFromToken(c.Context(), c.Get("X-Token"))
		if errors.Is(err, sessions.ErrUnavailable) {
			return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
		}
		if err == nil {
			c.Locals(UserKey, user)
		}
		return c.Next()
	}
}
