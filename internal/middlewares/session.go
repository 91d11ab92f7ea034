package middlewares

import (
	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const (
	// TokenHeader carries the session token on authenticated requests.
	TokenHeader = "X-Token"

	// LocalUserID is the fiber.Locals key holding the resolved user id.
	LocalUserID = "userID"

	// LocalToken is the fiber.Locals key holding the presented token.
	LocalToken = "token"
)

// RequireSession resolves the X-Token header against the session store
// and rejects the request when the token is absent, unknown, or expired.
func RequireSession(sessions domain.SessionStore) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return unauthorized(c)
		}

		userID, ok, err := sessions.Resolve(c.RequestCtx(), token)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve session")
			return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
		}
		if !ok {
			return unauthorized(c)
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalToken, token)

		return c.Next()
	}
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}

// UserID returns the user id stored by RequireSession, or "" when the
// request is anonymous.
func UserID(c fiber.Ctx) string {
	if id, ok := c.Locals(LocalUserID).(string); ok {
		return id
	}
	return ""
}
