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

// OutletsHandler exposes outlet listing and selection.
type OutletsHandler struct {
	outlets *service.OutletService
	cookies config.AuthConfig
	secure  bool
	now     func() time.Time
}

// NewOutletsHandler constructs handler.
func NewOutletsHandler(outlets *service.OutletService, cookies config.AuthConfig, secure bool) *OutletsHandler {
	return &OutletsHandler{outlets: outlets, cookies: cookies, secure: secure, now: time.Now}
}

// My handles GET /api/outlets/my.
func (h *OutletsHandler) My(c *fiber.Ctx) error {
	claims, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	memberships, err := h.outlets.ListForUser(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOutletResponses(memberships)})
}

// Select handles POST /api/outlets/select.
func (h *OutletsHandler) Select(c *fiber.Ctx) error {
	claims, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}

	var req dto.SelectOutletRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"field": "outletId"})
	}

	membership, err := h.outlets.Select(c.UserContext(), claims.UserID, int64(req.OutletID))
	if err != nil {
		return err
	}

	c.Cookie(auth.NewOutletCookie(h.cookies.OutletCookie, membership.OutletID, h.cookies.OutletTTL(), h.now(), h.secure))
	return c.JSON(fiber.Map{"data": dto.NewOutletResponse(*membership)})
}
