package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shishikan-sg/shishikan/internal/server/session"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
)

const (
	// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
	CurrentUserContextKey = "current_user"
	// CurrentSessionContextKey is the key to retrieve the current_session from echo.Context.
	CurrentSessionContextKey = "current_session"
)

// Session returns a Session auth middleware rejecting unauthenticated requests.
// It stores current_user and current_session into echo.Context.
func Session(m session.Manager) echo.MiddlewareFunc {
	return authenticate(m, true)
}

// Identify returns a Session auth middleware accepting anonymous requests.
// When an access token is provided, it must be valid.
func Identify(m session.Manager) echo.MiddlewareFunc {
	return authenticate(m, false)
}

func authenticate(m session.Manager, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorization := c.Request().Header.Get(echo.HeaderAuthorization)
			if authorization == "" && !required {
				return next(c)
			}

			token := token(authorization)
			if token == "" {
				return sskerror.NewWithTagCode(http.StatusUnauthorized, sskerror.TagInvalidToken, "Invalid login credentials.")
			}

			user, session, err := m.Authenticate(token)
			if err != nil {
				return err
			}

			// Store current_user and current_session for handlers.
			c.Set(CurrentUserContextKey, user)
			c.Set(CurrentSessionContextKey, session)
			return next(c)
		}
	}
}

func token(authorization string) string {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
