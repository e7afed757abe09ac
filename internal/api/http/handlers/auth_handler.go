package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-backoffice/internal/api/dto"
	"github.com/spec-kit/pos-backoffice/internal/auth"
	"github.com/spec-kit/pos-backoffice/internal/config"
	"github.com/spec-kit/pos-backoffice/internal/service"
	apperrors "github.com/spec-kit/pos-backoffice/pkg/util"
)

// AuthHandler exposes login, logout and session endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	verifier *auth.Verifier
	cookies  config.AuthConfig
	secure   bool
	now      func() time.Time
}

// NewAuthHandler constructs handler. secure marks cookies Secure.
func NewAuthHandler(authService *service.AuthService, verifier *auth.Verifier, cookies config.AuthConfig, secure bool) *AuthHandler {
	return &AuthHandler{auth: authService, verifier: verifier, cookies: cookies, secure: secure, now: time.Now}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.UserContext(), c.IP(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(auth.NewSessionCookie(h.cookies.SessionCookie, result.Token, result.ExpiresAt, h.now(), h.secure))
	return c.JSON(fiber.Map{
		"data": dto.LoginResponse{
			User:      dto.NewUserResponse(result.User),
			ExpiresAt: result.ExpiresAt,
		},
	})
}

// Logout handles POST /api/auth/logout. It always clears both cookies, even
// when the session has already lapsed.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var claims *auth.SessionClaims
	if token := c.Cookies(h.cookies.SessionCookie); token != "" && h.verifier != nil {
		claims, _ = h.verifier.Verify(token)
	}
	h.auth.Logout(c.UserContext(), claims, c.IP())

	c.Cookie(auth.ExpiredCookie(h.cookies.SessionCookie, h.secure))
	c.Cookie(auth.ExpiredCookie(h.cookies.OutletCookie, h.secure))
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	resp := dto.NewSessionResponse(claims)
	if outletID, ok := service.SelectedOutlet(c, h.cookies.OutletCookie); ok {
		resp.OutletID = &outletID
	}
	return c.JSON(fiber.Map{"data": resp})
}
