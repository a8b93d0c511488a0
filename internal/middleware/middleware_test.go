package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/talentgate/recruitment-api/internal/session"
	"github.com/talentgate/recruitment-api/internal/utils"
)

const testSecret = "test-secret"

func seedSession(t *testing.T, sessions session.Store, role string) *session.Session {
	t.Helper()
	sess := &session.Session{
		ID:        uuid.NewString(),
		UserID:    uuid.New(),
		Username:  "jdoe",
		Role:      role,
		FullName:  "J Doe",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := sessions.Create(context.Background(), sess); err != nil {
		t.Fatalf("seed session failed: %v", err)
	}
	return sess
}

func protectedApp(sessions session.Store, roles ...string) *fiber.App {
	app := fiber.New()
	grp := app.Group("/", SessionFromCookie(testSecret, sessions), AttachSessionLocals())
	handlers := []fiber.Handler{}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": c.Locals("role")})
	})
	grp.Get("/secure", handlers...)
	return app
}

func TestSessionFromCookie(t *testing.T) {
	sessions := session.NewMemoryStore()
	sess := seedSession(t, sessions, "candidate")

	token, err := utils.SignSessionToken(testSecret, sess.ID, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	app := protectedApp(sessions)

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
	}{
		{"valid cookie", token, fiber.StatusOK},
		{"no cookie", "", fiber.StatusUnauthorized},
		{"garbage cookie", "garbage", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/secure", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestSessionFromCookieRejectsDestroyedSession(t *testing.T) {
	sessions := session.NewMemoryStore()
	sess := seedSession(t, sessions, "candidate")

	token, err := utils.SignSessionToken(testSecret, sess.ID, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if err := sessions.Delete(context.Background(), sess.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	app := protectedApp(sessions)
	req := httptest.NewRequest("GET", "/secure", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("a signed token for a destroyed session must be rejected, got %d", resp.StatusCode)
	}
}

func TestRequireRoles(t *testing.T) {
	sessions := session.NewMemoryStore()
	recruiter := seedSession(t, sessions, "recruiter")
	admin := seedSession(t, sessions, "admin")

	app := protectedApp(sessions, "admin")

	tests := []struct {
		name       string
		sessID     string
		wantStatus int
	}{
		{"admin allowed", admin.ID, fiber.StatusOK},
		{"recruiter forbidden", recruiter.ID, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := utils.SignSessionToken(testSecret, tt.sessID, time.Hour)
			if err != nil {
				t.Fatalf("sign failed: %v", err)
			}
			req := httptest.NewRequest("GET", "/secure", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}
