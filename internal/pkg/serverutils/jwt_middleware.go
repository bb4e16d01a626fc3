package serverutils

import (
	"strings"

	"agrisense-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const UserIDLocal = "user_id"

// JwtMiddleware verifies the bearer token and stores the caller's uuid in ctx.Locals("user_id").
func JwtMiddleware(issuer *token.Issuer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Authentication required"))
		}
		tokenStr := strings.TrimSpace(authHeader[7:])
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Authentication required"))
		}

		userID, err := issuer.Verify(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid or expired token"))
		}

		ctx.Locals(UserIDLocal, userID)
		return ctx.Next()
	}
}

// UserID reads the id placed by JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := ctx.Locals(UserIDLocal).(uuid.UUID)
	return userID, ok
}
