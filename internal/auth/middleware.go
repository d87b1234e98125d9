package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"movievault/internal/model"
	"movievault/internal/session"
)

const (
	// ContextUserKey is the echo.Context key the resolved snapshot is stored under.
	ContextUserKey = "currentUser"
	// SessionCookieName is the cookie checked when no Authorization header is sent.
	SessionCookieName = "sessionId"

	bearerPrefix = "Bearer "
)

// ExtractToken pulls the bearer token from the Authorization header or the
// session cookie. The two transports are interchangeable.
func ExtractToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// SessionMiddleware guards a route group: it resolves the request's bearer
// token against the registry and attaches the user snapshot to the context,
// or rejects the request with 401.
func SessionMiddleware(registry session.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return unauthenticated(c)
			}
			sess, err := registry.Resolve(c.Request().Context(), token)
			if err != nil {
				log.Printf("resolve session: %v", err)
				return unauthenticated(c)
			}
			if sess == nil {
				return unauthenticated(c)
			}
			c.Set(ContextUserKey, sess.User)
			return next(c)
		}
	}
}

// CurrentUser returns the snapshot attached by SessionMiddleware.
func CurrentUser(c echo.Context) (model.UserSnapshot, bool) {
	user, ok := c.Get(ContextUserKey).(model.UserSnapshot)
	return user, ok
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"message": "Authentication required",
	})
}
