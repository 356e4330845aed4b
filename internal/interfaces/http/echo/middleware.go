package echo

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/orgstack/orgstack/internal/application/auth"
	domain "github.com/orgstack/orgstack/internal/domain/user"
)

const (
	userContextKey  = "user"
	tokenContextKey = "session_token"
)

type sessionResolver interface {
	FindUser(ctx context.Context, tokenHash string) (domain.User, error)
}

// RequireAuth resolves the Bearer token to its user and stores both on
// the request context. Requests without a valid session get 401.
func RequireAuth(sessions sessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return respondError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			}

			u, err := sessions.FindUser(c.Request().Context(), auth.HashToken(token))
			if err != nil {
				return respondError(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			}

			c.Set(userContextKey, u)
			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

func currentUser(c echo.Context) domain.User {
	u, _ := c.Get(userContextKey).(domain.User)
	return u
}

func currentToken(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}
