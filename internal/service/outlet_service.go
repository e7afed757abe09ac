package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/pos-backoffice/internal/domain"
	"github.com/spec-kit/pos-backoffice/internal/events"
	"github.com/spec-kit/pos-backoffice/internal/repository"
	apperrors "github.com/spec-kit/pos-backoffice/pkg/util"
)

// OutletService lists and selects the outlets a user may operate.
type OutletService struct {
	outlets    repository.OutletRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewOutletService constructs the service.
func NewOutletService(outlets repository.OutletRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OutletService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutletService{outlets: outlets, dispatcher: dispatcher, logger: logger}
}

// ListForUser returns the active outlets assigned to userID.
func (s *OutletService) ListForUser(ctx context.Context, userID int64) ([]domain.UserOutlet, error) {
	outlets, err := s.outlets.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if outlets == nil {
		outlets = []domain.UserOutlet{}
	}
	return outlets, nil
}

// Select confirms userID belongs to outletID. The caller persists the choice.
func (s *OutletService) Select(ctx context.Context, userID, outletID int64) (*domain.UserOutlet, error) {
	if outletID <= 0 {
		return nil, apperrors.NewValidationError("outletId is required", map[string]any{"field": "outletId"})
	}

	membership, err := s.outlets.GetMembership(ctx, userID, outletID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewForbidden("You do not have access to this outlet")
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventOutletSelected, events.Actor{UserID: userID}, events.OutletSelectedPayload{
			OutletID:   membership.OutletID,
			OutletCode: membership.Outlet.Code,
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return membership, nil
}

// SelectedOutlet reads the outlet chosen earlier in this browser session.
func SelectedOutlet(c *fiber.Ctx, cookieName string) (int64, bool) {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
