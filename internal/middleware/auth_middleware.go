package middleware

import (
	"strings"

	"go-catalog-ws/internal/model"
	"go-catalog-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const callerKey = "caller"

// RequireAuth validates the bearer token from the identity provider and
// stores the resolved caller in the request context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(callerKey, model.Caller{ID: claims.UserID, Role: claims.Role})
		return c.Next()
	}
}

// RequireRole gates a route on the caller's role claim. Services re-check
// the role before mutating, this is the transport-level fence.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFromCtx(c)
		if !caller.Authenticated() {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}
		if caller.Role != role {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires " + role + " role"})
		}
		return c.Next()
	}
}

// CallerFromCtx returns the caller resolved by RequireAuth, or a zero
// Caller on unauthenticated routes.
func CallerFromCtx(c *fiber.Ctx) model.Caller {
	if caller, ok := c.Locals(callerKey).(model.Caller); ok {
		return caller
	}
	return model.Caller{}
}
