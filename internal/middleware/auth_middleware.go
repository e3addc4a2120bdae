package middleware

import (
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionKind  = "kind"
	sessionEmail = "email"
	sessionRole  = "role"
	sessionToken = "quiz_token"
)

// Sessions keeps the caller's identity in a server-side session keyed by
// cookie.
type Sessions struct {
	store *session.Store
}

func NewSessions(ttl time.Duration, secure bool) *Sessions {
	return &Sessions{store: session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:ai_recruiter_session",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})}
}

// Start replaces any existing session with one holding id.
func (s *Sessions) Start(c *fiber.Ctx, id auth.Identity) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionKind, string(id.Kind))
	sess.Set(sessionEmail, id.Email)
	sess.Set(sessionRole, id.Role)
	sess.Set(sessionToken, id.QuizToken)
	return sess.Save()
}

func (s *Sessions) End(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// Attach copies the session identity, if any, into the request context.
func (s *Sessions) Attach() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.store.Get(c)
		if err != nil {
			return c.Next()
		}
		kind, _ := sess.Get(sessionKind).(string)
		email, _ := sess.Get(sessionEmail).(string)
		if kind == "" || email == "" {
			return c.Next()
		}
		role, _ := sess.Get(sessionRole).(string)
		token, _ := sess.Get(sessionToken).(string)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), auth.Identity{
			Kind:      auth.Kind(kind),
			Email:     email,
			Role:      role,
			QuizToken: token,
		}))
		return c.Next()
	}
}

func RequireRecruiter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := auth.Recruiter(c.UserContext()); !ok {
			return unauthorized(c, "Recruiter login required")
		}
		return c.Next()
	}
}

func RequireCandidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := auth.Candidate(c.UserContext()); !ok {
			return unauthorized(c, "Quiz login required")
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusUnauthorized,
		Message: message,
	})
}
