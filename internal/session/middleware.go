package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CookieName carries the opaque session id in the browser.
const CookieName = "dlh_session"

const (
	localsSession = "session"
	localsID      = "session_id"
)

// Middleware binds the persisted session (or an unauthenticated zero value)
// to the request. Every route that touches session state must sit behind it.
func Middleware(mgr *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(CookieName)
		if id == "" {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     CookieName,
				Value:    id,
				HTTPOnly: true,
				SameSite: "Lax",
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			})
		}
		c.Locals(localsID, id)
		c.Locals(localsSession, mgr.Current(c.Context(), id))
		return c.Next()
	}
}

// FromCtx returns the request's session. Calling it outside the middleware
// scope is a wiring bug, so it fails fast instead of handing back a default.
func FromCtx(c *fiber.Ctx) Session {
	v := c.Locals(localsSession)
	s, ok := v.(Session)
	if !ok {
		panic("session: FromCtx called without session.Middleware installed")
	}
	return s
}

// IDFromCtx returns the opaque session id bound by the middleware.
func IDFromCtx(c *fiber.Ctx) string {
	v := c.Locals(localsID)
	id, ok := v.(string)
	if !ok {
		panic("session: IDFromCtx called without session.Middleware installed")
	}
	return id
}
