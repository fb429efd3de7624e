package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/localkart/core-api/models"
	"github.com/localkart/core-api/utils"
)

// Protected validates the bearer token and re-checks the account against the
// database: a deleted or deactivated user is rejected even with a valid
// token. On success userID, email and role are available in c.Locals.
func Protected(gdb *gorm.DB, secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid token claims")
			}

			userID, ok := claims["userId"].(float64)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid user ID in token")
			}

			var user models.User
			if err := gdb.First(&user, uint(userID)).Error; err != nil {
				return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "User not found")
			}
			if !user.IsActive {
				return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Account is deactivated")
			}

			c.Locals("userID", user.ID)
			c.Locals("email", user.Email)
			c.Locals("role", user.Role)
			return c.Next()
		},
	})
}

// RequireRole allows the request through only when the authenticated role is
// in the given set. Must run after Protected.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.UserRole)
		if !ok {
			return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Authentication required")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return utils.Fail(c, fiber.StatusForbidden, utils.CodeForbidden, "Insufficient role for this action")
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid or expired token")
}
