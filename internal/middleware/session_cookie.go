package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/recruitment-api/internal/session"
	"github.com/talentgate/recruitment-api/internal/utils"
)

// CookieName is the session cookie set at login and cleared at logout.
const CookieName = "rp_session"

// SessionFromCookie verifies the signed cookie and loads the live
// session from the store. Requests without a valid, unexpired session
// are rejected.
func SessionFromCookie(secret string, sessions session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		sid, err := utils.ParseSessionToken(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		sess, err := sessions.Get(c.UserContext(), sid)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("session", sess)
		return c.Next()
	}
}
