package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CallerIDLocalKey is the key used to store the authenticated user ID in
// Fiber's context locals. Anonymous requests leave it unset.
const CallerIDLocalKey = "caller_id"

// Auth parses a Bearer token when one is present and stores the subject claim
// in context locals. A missing token is not an error here: read endpoints
// accept anonymous callers, the access policy decides what they may see. A
// malformed or forged token is rejected outright.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "malformed authorization header")
		}

		token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims := token.Claims.(*jwt.RegisteredClaims)
		c.Locals(CallerIDLocalKey, claims.Subject)
		return c.Next()
	}
}

// RequireCaller rejects requests that did not authenticate. Mutating routes
// sit behind it; read routes do not.
func RequireCaller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CallerID(c) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// CallerID returns the authenticated user ID, or "" for anonymous requests.
func CallerID(c *fiber.Ctx) string {
	if v, ok := c.Locals(CallerIDLocalKey).(string); ok {
		return v
	}
	return ""
}
