package middleware

// identity.go holds the helpers that move the authenticated principal through
// the Echo context.  JWTAuth stores it; handlers and the rate limiter read it.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
)

const principalKey = "principal"

func setPrincipal(c echo.Context, p model.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal stored by JWTAuth, if any.
func PrincipalFrom(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(principalKey).(model.Principal)
	return p, ok && p.UserID != 0
}

// userID extracts a user identifier for keys and logs.  It returns "anon"
// when no user is authenticated.
func userID(c echo.Context) string {
	if p, ok := PrincipalFrom(c); ok {
		return strconv.FormatUint(p.UserID, 10)
	}
	return "anon"
}
