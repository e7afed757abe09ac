package auth

import (
	"encoding/json"
	"fmt"
	"time"
)

// Subject identifies who a session token is issued for.
type Subject struct {
	UserID int64
	Email  string
	Roles  []string
}

// SessionClaims is the decoded payload of a session token.
type SessionClaims struct {
	UserID    int64    `json:"userId"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	IssuedAt  int64    `json:"iat,omitempty"`
	ExpiresAt *int64   `json:"exp,omitempty"`
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c *SessionClaims) HasAnyRole(roles ...string) bool {
	for _, have := range c.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Expiry returns the expiry instant and whether one is set.
func (c *SessionClaims) Expiry() (time.Time, bool) {
	if c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return time.Unix(*c.ExpiresAt, 0), true
}

// wireClaims mirrors SessionClaims with pointers so missing fields are
// detected instead of defaulting to zero.
type wireClaims struct {
	UserID    *int64    `json:"userId"`
	Email     *string   `json:"email"`
	Roles     []string  `json:"roles"`
	IssuedAt  *int64    `json:"iat"`
	ExpiresAt *int64    `json:"exp"`
}

func decodeClaims(payload []byte) (*SessionClaims, error) {
	var wire wireClaims
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedClaims, err)
	}
	if wire.UserID == nil {
		return nil, fmt.Errorf("%w: userId is required", ErrMalformedClaims)
	}
	if wire.Email == nil {
		return nil, fmt.Errorf("%w: email is required", ErrMalformedClaims)
	}

	claims := &SessionClaims{
		UserID:    *wire.UserID,
		Email:     *wire.Email,
		Roles:     wire.Roles,
		ExpiresAt: wire.ExpiresAt,
	}
	if claims.Roles == nil {
		claims.Roles = []string{}
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = *wire.IssuedAt
	}
	return claims, nil
}
