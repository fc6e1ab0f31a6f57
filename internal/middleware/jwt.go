package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/movie-catalog/internal/model"
)

// TokenParser resolves a raw bearer token to a principal.  The auth service
// implements it.
type TokenParser interface {
	ParseToken(raw string) (model.Principal, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the resolved principal into the request context.  It should wrap
// protected routes so that handlers can access the caller via PrincipalFrom.
// Failures are returned as 401 HTTPErrors and rendered by the error handler.
func JWTAuth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer <jwt>"; the scheme is case-insensitive.
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			p, err := tokens.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil || p.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// Store the principal; handlers read it with PrincipalFrom.
			setPrincipal(c, p)
			return next(c)
		}
	}
}
