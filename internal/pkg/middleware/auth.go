package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/albumnest/albumnest/internal/pkg/token"
	"github.com/albumnest/albumnest/internal/pkg/usercontext"
)

// RequireToken authenticates requests carrying a bearer token. Missing tokens
// yield 401, invalid or expired tokens 403.
func RequireToken(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing token"})
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Invalid token"})
		}

		userCtx := usercontext.UserContext{
			UserID:     claims.UserID,
			Email:      claims.Email,
			IsLoggedIn: true,
		}
		c.Locals(usercontext.KeyUserContext, userCtx)
		c.Locals(usercontext.KeyUserID, claims.UserID)
		c.Locals(usercontext.KeyUserEmail, claims.Email)

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
