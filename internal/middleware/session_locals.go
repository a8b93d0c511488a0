package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/talentgate/recruitment-api/internal/session"
)

// AttachSessionLocals copies identity fields out of the session so
// handlers can read plain locals.
func AttachSessionLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := c.Locals("session").(*session.Session)
		if !ok || sess == nil {
			return fiber.ErrUnauthorized
		}

		if sess.UserID == uuid.Nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", sess.UserID)
		c.Locals("role", sess.Role)

		return c.Next()
	}
}
