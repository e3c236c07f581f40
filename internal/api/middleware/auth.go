package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// Context keys populated by Identity.
const (
	UsernameKey = "username"
	RolesKey    = "roles"
)

// Identity extracts and validates the bearer token, attaching the caller's
// username and roles to the echo context. It is deliberately fail-open: a
// missing, malformed, or expired token leaves the request anonymous instead
// of rejecting it. Rejection is RequireAuth/RequireRole's job, so that the
// access policy lives in one place (the route table) rather than here.
func Identity(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			identity, err := tokens.Validate(parts[1])
			if err != nil {
				// invalid token == no token at this layer
				return next(c)
			}

			c.Set(UsernameKey, identity.Username)
			c.Set(RolesKey, identity.Roles)

			return next(c)
		}
	}
}

// CallerIdentity reads the identity attached by Identity. ok is false for
// anonymous requests.
func CallerIdentity(c echo.Context) (ports.Identity, bool) {
	username, _ := c.Get(UsernameKey).(string)
	if username == "" {
		return ports.Identity{}, false
	}
	roles, _ := c.Get(RolesKey).([]string)
	return ports.Identity{Username: username, Roles: roles}, true
}
