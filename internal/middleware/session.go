package middleware

import (
	"strings"

	"sanctuary/internal/dto"
	"sanctuary/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionHeader     = "X-Session-Token"
	SessionCookie     = "sanctuary_session"
	SessionClaimsKey  = "sessionClaims" // Key for storing claims in fiber.Ctx locals
	authBearerPrefix  = "Bearer "
	authorizationName = "Authorization"
)

// Session reads the session token from the X-Session-Token header, an
// Authorization bearer token or the session cookie. A missing or invalid
// token is not an error; the request simply has no selection.
func Session(sessions service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(SessionHeader)
		if token == "" {
			if auth := c.Get(authorizationName); strings.HasPrefix(auth, authBearerPrefix) {
				token = strings.TrimPrefix(auth, authBearerPrefix)
			}
		}
		if token == "" {
			token = c.Cookies(SessionCookie)
		}
		if token == "" {
			return c.Next()
		}

		if claims, err := sessions.Parse(token); err == nil {
			c.Locals(SessionClaimsKey, claims)
		}
		return c.Next()
	}
}

// SessionClaims returns the verified claims stored by Session, or nil.
func SessionClaims(c *fiber.Ctx) *dto.SessionClaims {
	claims, _ := c.Locals(SessionClaimsKey).(*dto.SessionClaims)
	return claims
}
