package auth

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is used when an Issuer is built with a non-positive TTL.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Issuer mints signed session tokens for authenticated subjects.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// IssuerOption customizes an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the time source.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer builds a new issuer.
func NewIssuer(secret string, ttl time.Duration, opts ...IssuerOption) *Issuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	i := &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// TTL returns the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue builds and signs an HS256 token carrying the subject's identity.
// The returned expiry has second precision, matching the exp claim.
func (i *Issuer) Issue(subject Subject) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, ErrSecretMissing
	}

	now := i.now()
	expiresAt := now.Add(i.ttl).Unix()
	roles := subject.Roles
	if roles == nil {
		roles = []string{}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": subject.UserID,
		"email":  subject.Email,
		"roles":  roles,
		"iat":    now.Unix(),
		"exp":    expiresAt,
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, time.Unix(expiresAt, 0), nil
}
