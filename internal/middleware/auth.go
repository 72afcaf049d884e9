package middleware

import (
	"errors"
	"strings"

	"lavka/internal/models"
	"lavka/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "currentUser"

// Static role policies used throughout the route table.
var (
	AdminOnly      = []models.UserRole{models.RoleAdmin}
	ManagerOrAdmin = []models.UserRole{models.RoleManager, models.RoleAdmin}
)

// CurrentUser returns the authenticated user stored by AuthRequired or
// AuthOptional, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

// AuthRequired rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func AuthRequired(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Authorization header with a Bearer token is required")
		}
		user, err := auth.Authenticate(token)
		if err != nil {
			return unauthorized(c, authFailureMessage(err))
		}
		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// AuthOptional authenticates when a bearer token is present and continues
// anonymously when it is not. A token that is present but bad still fails:
// silently downgrading a broken credential to anonymous would mask client
// bugs.
func AuthOptional(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		user, err := auth.Authenticate(token)
		if err != nil {
			return unauthorized(c, authFailureMessage(err))
		}
		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequireRoles allows only callers whose role is in the list. It must run
// after AuthRequired.
func RequireRoles(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "Authentication required")
		}
		if err := services.RequireRole(user, roles...); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Not enough permissions",
			})
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, services.ErrInvalidToken):
		return "Invalid token"
	default:
		return "Authentication failed"
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
