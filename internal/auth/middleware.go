package auth

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// SessionHeader carries the session id issued at login.
	SessionHeader = "Session-ID"
	usernameKey   = "auth_username"
)

// SessionMiddleware rejects requests without a live session.
type SessionMiddleware struct {
	sessions SessionStore
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions SessionStore) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	username, err := m.sessions.Lookup(c.UserContext(), c.Get(SessionHeader))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	c.Locals(usernameKey, username)
	return c.Next()
}

// UsernameFromContext returns the username bound to the request's session.
func UsernameFromContext(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals(usernameKey).(string)
	return username, ok && username != ""
}
