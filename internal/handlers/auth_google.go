package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/talentgate/recruitment-api/internal/auth"
	"github.com/talentgate/recruitment-api/internal/middleware"
	"github.com/talentgate/recruitment-api/internal/models"
	"github.com/talentgate/recruitment-api/internal/store"
	"github.com/talentgate/recruitment-api/internal/utils"
)

// GoogleOAuthHandler signs users in with Google. First-time visitors are
// provisioned as candidates; returning users are matched by email.
type GoogleOAuthHandler struct {
	Users           store.UserStore
	Svc             *auth.Service
	SessionSecret   string
	SessionTTL      time.Duration
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
	Log             zerolog.Logger
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	next := c.Query("next", "/")
	st := randomState(32)

	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    st,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_next",
		Value:    next,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})

	authURL := h.oauthCfg().AuthCodeURL(st, oauth2.AccessTypeOffline)

	return c.Redirect(authURL, http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing code/state")
	}

	stCookie := c.Cookies("oauth_state")
	next := c.Cookies("oauth_next")
	if next == "" {
		next = "/"
	}

	if stCookie == "" || stCookie != state {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid state")
	}

	tok, err := h.oauthCfg().Exchange(c.UserContext(), code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to exchange code")
	}

	client := h.oauthCfg().Client(c.UserContext(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Failed to decode userinfo")
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	if email == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Email not found from Google")
	}

	u, err := h.findOrCreate(c, email, gu)
	if err != nil {
		h.Log.Error().Err(err).Msg("google sign-in provisioning failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong. Please try again.",
		})
	}

	if !u.IsActive {
		u2 := h.FrontendBaseURL + "/login.html?err=" + url.QueryEscape("Account is inactive")
		return c.Redirect(u2, http.StatusTemporaryRedirect)
	}

	sess, err := h.Svc.StartSession(c.UserContext(), u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to start session")
	}

	token, err := utils.SignSessionToken(h.SessionSecret, sess.ID, h.SessionTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to sign session token")
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

	c.Cookie(&fiber.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1, HTTPOnly: true, Secure: false, SameSite: "Lax"})
	c.Cookie(&fiber.Cookie{Name: "oauth_next", Value: "", Path: "/", MaxAge: -1, HTTPOnly: true, Secure: false, SameSite: "Lax"})

	redirectURL := h.FrontendBaseURL + next
	if !strings.HasPrefix(next, "/") {
		redirectURL = h.FrontendBaseURL + "/"
	}

	return c.Redirect(redirectURL, http.StatusTemporaryRedirect)
}

func (h *GoogleOAuthHandler) findOrCreate(c *fiber.Ctx, email string, gu googleUserInfo) (*models.User, error) {
	u, err := h.Users.FindByUsernameOrEmail(c.UserContext(), email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	// The password column is not nullable; Google accounts get a random
	// secret that is never usable for form login.
	hash, err := bcrypt.GenerateFromPassword([]byte(randomState(24)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	localPart, _, _ := strings.Cut(email, "@")

	firstName := strings.TrimSpace(gu.GivenName)
	lastName := strings.TrimSpace(gu.FamilyName)
	if firstName == "" {
		firstName = localPart
	}
	if lastName == "" {
		lastName = "-"
	}

	username := localPart
	newUser := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleCandidate,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
	}
	err = h.Users.Create(c.UserContext(), newUser)
	if errors.Is(err, store.ErrDuplicateUser) {
		// Username collision with an existing account; retry once with a
		// random suffix.
		newUser.Username = username + "_" + randomState(4)
		err = h.Users.Create(c.UserContext(), newUser)
	}
	if err != nil {
		return nil, err
	}
	return newUser, nil
}
