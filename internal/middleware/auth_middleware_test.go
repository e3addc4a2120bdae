package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionApp() *fiber.App {
	sessions := NewSessions(time.Hour, false)
	app := fiber.New()
	app.Use(sessions.Attach())

	app.Post("/login/recruiter", func(c *fiber.Ctx) error {
		return sessions.Start(c, auth.Identity{Kind: auth.KindRecruiter, Email: "hr@acme.io", Role: "admin"})
	})
	app.Post("/login/candidate", func(c *fiber.Ctx) error {
		return sessions.Start(c, auth.Identity{Kind: auth.KindCandidate, Email: "a@x.com", QuizToken: "tok"})
	})
	app.Post("/logout", func(c *fiber.Ctx) error { return sessions.End(c) })
	app.Get("/recruiter", RequireRecruiter(), func(c *fiber.Ctx) error {
		id, _ := auth.Recruiter(c.UserContext())
		return c.SendString(id.Email + "/" + id.Role)
	})
	app.Get("/candidate", RequireCandidate(), func(c *fiber.Ctx) error {
		id, _ := auth.Candidate(c.UserContext())
		return c.SendString(id.QuizToken)
	})
	return app
}

func sessionCookie(t *testing.T, app *fiber.App, path string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil))
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == "ai_recruiter_session" {
			return ck
		}
	}
	t.Fatalf("no session cookie set by %s", path)
	return nil
}

func get(t *testing.T, app *fiber.App, path string, ck *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSessions_RecruiterIdentity(t *testing.T) {
	app := newSessionApp()
	ck := sessionCookie(t, app, "/login/recruiter")

	assert.Equal(t, fiber.StatusOK, get(t, app, "/recruiter", ck).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/candidate", ck).StatusCode)
}

func TestSessions_CandidateIdentity(t *testing.T) {
	app := newSessionApp()
	ck := sessionCookie(t, app, "/login/candidate")

	assert.Equal(t, fiber.StatusOK, get(t, app, "/candidate", ck).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/recruiter", ck).StatusCode)
}

func TestSessions_Anonymous(t *testing.T) {
	app := newSessionApp()
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/recruiter", nil).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/candidate", nil).StatusCode)
}

func TestSessions_Logout(t *testing.T) {
	app := newSessionApp()
	ck := sessionCookie(t, app, "/login/recruiter")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(ck)
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/recruiter", ck).StatusCode)
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(2, time.Minute), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
