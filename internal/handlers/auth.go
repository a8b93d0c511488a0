package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentgate/recruitment-api/internal/auth"
	"github.com/talentgate/recruitment-api/internal/middleware"
	"github.com/talentgate/recruitment-api/internal/utils"
)

// AuthHandler is the single form-encoded auth endpoint. Clients POST an
// `action` field (login, register, logout) and always get back one
// {success, message, ...} JSON envelope.
type AuthHandler struct {
	Svc           *auth.Service
	SessionSecret string
	SessionTTL    time.Duration
	Log           zerolog.Logger
}

const msgServerError = "Something went wrong. Please try again."

func fail(c *fiber.Ctx, message string) error {
	// Logical failures ride on HTTP 200 so form handlers can read the
	// envelope without tripping on the status code.
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func (h *AuthHandler) Dispatch(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodOptions:
		return c.SendStatus(fiber.StatusNoContent)
	case fiber.MethodPost:
	default:
		return fail(c, "Invalid request method")
	}

	switch c.FormValue("action") {
	case "login":
		return h.login(c)
	case "register":
		return h.register(c)
	case "logout":
		return h.logout(c)
	default:
		return fail(c, "Invalid action")
	}
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	// Passwords are stored exactly as typed; trimming here would lock out
	// anyone who registered with surrounding whitespace.
	password := c.FormValue("password")

	if username == "" || password == "" {
		return fail(c, "Please fill in all fields")
	}

	sess, err := h.Svc.Login(c.UserContext(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fail(c, "Invalid username or password")
		}
		h.Log.Error().Err(err).Msg("login failed")
		return fail(c, msgServerError)
	}

	token, err := utils.SignSessionToken(h.SessionSecret, sess.ID, h.SessionTTL)
	if err != nil {
		h.Log.Error().Err(err).Msg("session token signing failed")
		return fail(c, msgServerError)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   int(h.SessionTTL.Seconds()),
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"role":    sess.Role,
	})
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	in := auth.RegisterInput{
		Username:  c.FormValue("username"),
		Email:     c.FormValue("email"),
		Password:  c.FormValue("password"),
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Role:      c.FormValue("role"),
		Phone:     c.FormValue("phone"),
	}

	if _, err := h.Svc.Register(c.UserContext(), in); err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			return fail(c, verr.Message)
		}
		if errors.Is(err, auth.ErrDuplicateUser) {
			return fail(c, "Registration failed. Username or email may already exist.")
		}
		h.Log.Error().Err(err).Msg("registration failed")
		return fail(c, msgServerError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful",
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	// Best effort: a missing or mangled cookie still logs out cleanly.
	if tokenStr := c.Cookies(middleware.CookieName); tokenStr != "" {
		if sid, err := utils.ParseSessionToken(h.SessionSecret, tokenStr); err == nil {
			if err := h.Svc.Logout(c.UserContext(), sid); err != nil {
				h.Log.Error().Err(err).Msg("logout failed")
				return fail(c, msgServerError)
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}
