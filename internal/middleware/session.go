package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookie = "shop_session"
	sessionKey    = "session_id"
)

// Session guarantees every request carries an opaque session id, issuing a
// cookie on first contact. The basket is keyed by this id.
func Session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sid := ""
		if cookie, err := c.Cookie(sessionCookie); err == nil {
			sid = cookie.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(sessionKey, sid)
		return next(c)
	}
}

// SessionID returns the session id set by Session.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(sessionKey).(string)
	return sid
}
