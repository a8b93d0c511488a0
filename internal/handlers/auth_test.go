package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentgate/recruitment-api/internal/auth"
	"github.com/talentgate/recruitment-api/internal/middleware"
	"github.com/talentgate/recruitment-api/internal/models"
	"github.com/talentgate/recruitment-api/internal/session"
	"github.com/talentgate/recruitment-api/internal/store"
)

type stubUserStore struct {
	users []*models.User
}

func (s *stubUserStore) FindByUsernameOrEmail(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == identifier {
			clone := *u
			return &clone, nil
		}
	}
	for _, u := range s.users {
		if u.Email == strings.ToLower(identifier) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return store.ErrDuplicateUser
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	clone := *u
	s.users = append(s.users, &clone)
	return nil
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Role    string `json:"role"`
}

func newTestApp() (*fiber.App, *stubUserStore) {
	users := &stubUserStore{}
	sessions := session.NewMemoryStore()
	svc := auth.NewService(users, sessions, bcrypt.MinCost, time.Hour, zerolog.Nop())

	h := &AuthHandler{
		Svc:           svc,
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		Log:           zerolog.Nop(),
	}

	app := fiber.New()
	app.All("/api/auth", h.Dispatch)
	return app, users
}

func postForm(t *testing.T, app *fiber.App, form url.Values, cookies ...*http.Cookie) (*http.Response, envelope) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, "/api/auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding envelope failed: %v", err)
	}
	return resp, env
}

func registerForm() url.Values {
	return url.Values{
		"action":     {"register"},
		"username":   {"jdoe"},
		"email":      {"j@x.com"},
		"password":   {"secret1"},
		"first_name": {"J"},
		"last_name":  {"Doe"},
	}
}

func TestDispatchInvalidMethod(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/api/auth", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding envelope failed: %v", err)
	}
	if env.Success || env.Message != "Invalid request method" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestDispatchOptionsPreflight(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(fiber.MethodOptions, "/api/auth", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.StatusCode)
	}
}

func TestDispatchInvalidAction(t *testing.T) {
	app, _ := newTestApp()

	for _, action := range []string{"", "delete_everything"} {
		_, env := postForm(t, app, url.Values{"action": {action}})
		if env.Success || env.Message != "Invalid action" {
			t.Fatalf("action %q: unexpected envelope %+v", action, env)
		}
	}
}

func TestLoginMissingFields(t *testing.T) {
	app, _ := newTestApp()

	_, env := postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"jdoe"},
	})
	if env.Success || env.Message != "Please fill in all fields" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := newTestApp()

	_, env := postForm(t, app, registerForm())
	if !env.Success || env.Message != "Registration successful" {
		t.Fatalf("unexpected register envelope: %+v", env)
	}

	resp, env := postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"jdoe"},
		"password": {"secret1"},
	})
	if !env.Success || env.Message != "Login successful" {
		t.Fatalf("unexpected login envelope: %+v", env)
	}
	if env.Role != "candidate" {
		t.Fatalf("expected role candidate, got %q", env.Role)
	}

	var sessionCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.CookieName {
			sessionCookie = ck
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("expected a session cookie on successful login")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestLoginKeepsPasswordWhitespace(t *testing.T) {
	app, _ := newTestApp()

	form := registerForm()
	form.Set("password", "secret1 ")
	if _, env := postForm(t, app, form); !env.Success {
		t.Fatalf("register failed: %+v", env)
	}

	// The dispatcher must pass the password through untouched; whoever
	// registered with a trailing space logs in with a trailing space.
	_, env := postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"jdoe"},
		"password": {"secret1 "},
	})
	if !env.Success || env.Message != "Login successful" {
		t.Fatalf("unexpected login envelope: %+v", env)
	}

	_, env = postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"jdoe"},
		"password": {"secret1"},
	})
	if env.Success {
		t.Fatalf("trimmed password must not log in: %+v", env)
	}
}

func TestLoginWithMixedCaseEmail(t *testing.T) {
	app, _ := newTestApp()

	form := registerForm()
	form.Set("email", "J@X.com")
	if _, env := postForm(t, app, form); !env.Success {
		t.Fatalf("register failed: %+v", env)
	}

	_, env := postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"J@X.com"},
		"password": {"secret1"},
	})
	if !env.Success || env.Role != "candidate" {
		t.Fatalf("login with typed email casing failed: %+v", env)
	}
}

func TestRegisterValidationMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		wantMsg string
	}{
		{"missing field", func(f url.Values) { f.Set("last_name", "") }, "Please fill in all required fields"},
		{"invalid email", func(f url.Values) { f.Set("email", "nope") }, "Please enter a valid email address"},
		{"short password", func(f url.Values) { f.Set("password", "ab") }, "Password must be at least 6 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, users := newTestApp()
			form := registerForm()
			tt.mutate(form)

			_, env := postForm(t, app, form)
			if env.Success || env.Message != tt.wantMsg {
				t.Fatalf("unexpected envelope: %+v", env)
			}
			if len(users.users) != 0 {
				t.Fatalf("expected no row written")
			}
		})
	}
}

func TestRegisterDuplicateIsGeneric(t *testing.T) {
	app, users := newTestApp()

	if _, env := postForm(t, app, registerForm()); !env.Success {
		t.Fatalf("first register failed: %+v", env)
	}

	form := registerForm()
	form.Set("email", "different@x.com")
	_, env := postForm(t, app, form)
	if env.Success || env.Message != "Registration failed. Username or email may already exist." {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected row count unchanged (1), got %d", len(users.users))
	}
}

func TestLoginFailureMessageDoesNotEnumerate(t *testing.T) {
	app, _ := newTestApp()

	if _, env := postForm(t, app, registerForm()); !env.Success {
		t.Fatalf("register failed: %+v", env)
	}

	_, wrongPass := postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"jdoe"},
		"password": {"wrong"},
	})
	_, unknownUser := postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"ghost"},
		"password": {"whatever"},
	})

	if wrongPass.Success || unknownUser.Success {
		t.Fatalf("expected both logins to fail")
	}
	if wrongPass.Message != "Invalid username or password" || wrongPass.Message != unknownUser.Message {
		t.Fatalf("failure messages must be identical and generic: %q vs %q", wrongPass.Message, unknownUser.Message)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	app, _ := newTestApp()

	if _, env := postForm(t, app, registerForm()); !env.Success {
		t.Fatalf("register failed: %+v", env)
	}
	resp, env := postForm(t, app, url.Values{
		"action":   {"login"},
		"username": {"jdoe"},
		"password": {"secret1"},
	})
	if !env.Success {
		t.Fatalf("login failed: %+v", env)
	}

	var sessionCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.CookieName {
			sessionCookie = ck
		}
	}
	if sessionCookie == nil {
		t.Fatalf("expected a session cookie")
	}

	logout := url.Values{"action": {"logout"}}
	if _, env := postForm(t, app, logout, sessionCookie); !env.Success || env.Message != "Logout successful" {
		t.Fatalf("unexpected logout envelope: %+v", env)
	}
	// Replaying the same cookie after the session is gone still succeeds.
	if _, env := postForm(t, app, logout, sessionCookie); !env.Success {
		t.Fatalf("second logout must succeed: %+v", env)
	}
	// And without any cookie at all.
	if _, env := postForm(t, app, logout); !env.Success {
		t.Fatalf("cookieless logout must succeed: %+v", env)
	}
}
