package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/recruitment-api/internal/session"
)

// RequireRoles allows the request through only when the session role is
// exactly one of the given tags. Roles do not imply each other.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		sess, ok := c.Locals("session").(*session.Session)
		if !ok || sess == nil {
			return fiber.ErrUnauthorized
		}

		if !allowedSet[sess.Role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}

		return c.Next()
	}
}
