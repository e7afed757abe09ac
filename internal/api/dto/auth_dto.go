package dto

import (
	"time"

	"github.com/spec-kit/pos-backoffice/internal/auth"
	"github.com/spec-kit/pos-backoffice/internal/domain"
)

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// LoginResponse is returned after a successful login. The token itself only
// travels in the session cookie.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// SessionResponse describes the verified session of the caller.
type SessionResponse struct {
	UserID    int64      `json:"userId"`
	Email     string     `json:"email"`
	Roles     []string   `json:"roles"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	OutletID  *int64     `json:"outletId,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Roles: roles}
}

// NewSessionResponse maps verified claims.
func NewSessionResponse(claims *auth.SessionClaims) SessionResponse {
	resp := SessionResponse{UserID: claims.UserID, Email: claims.Email, Roles: claims.Roles}
	if resp.Roles == nil {
		resp.Roles = []string{}
	}
	if exp, ok := claims.Expiry(); ok {
		resp.ExpiresAt = &exp
	}
	return resp
}
