package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"wrapped domain error", fmt.Errorf("select: %w", NewValidationError("bad", nil)), "VALIDATION_FAILED", http.StatusBadRequest},
		{"fiber error", fiber.NewError(http.StatusNotFound, "Cannot GET /x"), "NOT_FOUND", http.StatusNotFound},
		{"fiber teapot", fiber.NewError(http.StatusTeapot, "teapot"), "REQUEST_FAILED", http.StatusTeapot},
		{"no rows", fmt.Errorf("get user: %w", pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"throttled", NewTooManyRequests("slow down", 30), "TOO_MANY_REQUESTS", http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("Code: expected %q, got %q", tt.wantCode, got.Code)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus: expected %d, got %d", tt.wantStatus, got.HTTPStatus)
			}
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError(cause)
	if !errors.Is(err, cause) {
		t.Error("expected internal error to wrap its cause")
	}
	if err.Error() != "internal server error: connection reset" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTooManyRequestsDetails(t *testing.T) {
	de := ToDomainError(NewTooManyRequests("slow down", 0))
	if de.Details != nil {
		t.Errorf("expected no details without retry hint, got %v", de.Details)
	}
	de = ToDomainError(NewTooManyRequests("slow down", 12))
	if de.Details["retry_after_seconds"] != 12 {
		t.Errorf("expected retry hint 12, got %v", de.Details["retry_after_seconds"])
	}
}
