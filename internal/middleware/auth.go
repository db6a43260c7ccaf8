package middleware

import (
	"net/http"
	"strings"

	"github.com/avolkov/goshop/internal/auth"
	"github.com/labstack/echo/v4"
)

const (
	uidKey   = "uid"
	staffKey = "staff"
)

type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func bearerToken(c echo.Context) string {
	authz := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authz, "Bearer ")
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		claims, err := m.tokens.Parse(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		c.Set(uidKey, claims.UserID)
		c.Set(staffKey, claims.IsStaff)
		return next(c)
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets
// anonymous requests through. Used by checkout for guest purchases.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			if claims, err := m.tokens.Parse(token); err == nil {
				c.Set(uidKey, claims.UserID)
				c.Set(staffKey, claims.IsStaff)
			}
		}
		return next(c)
	}
}

// RequireStaff must be chained after RequireAuth.
func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if staff, _ := c.Get(staffKey).(bool); !staff {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
		return next(c)
	}
}

// UserID returns the authenticated user id, ok=false for anonymous requests.
func UserID(c echo.Context) (uint64, bool) {
	uid, ok := c.Get(uidKey).(uint64)
	return uid, ok
}
