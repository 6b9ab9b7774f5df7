package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"smartcanteen/models"
	"smartcanteen/utils"
)

// JWTMiddleware validates the JWT token provided in the Authorization header.
func JWTMiddleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing or malformed JWT"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing or malformed JWT"})
		}

		claims := &models.JwtClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			// Ensure the token signing method is what you expect
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid or expired JWT"})
		}
		if !utils.IsValidRole(claims.Role) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unknown user role"})
		}

		c.Locals("username", claims.Username)
		c.Locals("userRole", claims.Role)

		return c.Next()
	}
}

// StaffRequired is a middleware function that checks if the user has a staff or admin role.
func StaffRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || !utils.IsStaffRole(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Staff access required"})
	}
	return c.Next()
}
