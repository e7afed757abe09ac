package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/pos-backoffice/pkg/util"
)

// RequireRole ensures the verified session carries one of the allowed roles.
// It must run after Gate.Handle or Gate.RequireSession.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		if !claims.HasAnyRole(allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
