package auth

import (
	"crypto/hmac"
	"fmt"
	"time"
)

// Verifier checks session tokens against the shared secret. It holds no
// mutable state and is safe for concurrent use.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// VerifierOption customizes a Verifier.
type VerifierOption func(*Verifier)

// WithVerifierClock overrides the time source used for expiry checks.
func WithVerifierClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

// NewVerifier builds a verifier. An empty secret is accepted so the process
// can start, but every Verify call then fails with ErrSecretMissing.
func NewVerifier(secret string, opts ...VerifierOption) *Verifier {
	v := &Verifier{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Configured reports whether a signing secret is present.
func (v *Verifier) Configured() bool {
	return len(v.secret) > 0
}

// Verify validates structure, signature and expiry, in that order, and
// returns the decoded claims.
func (v *Verifier) Verify(token string) (*SessionClaims, error) {
	if len(v.secret) == 0 {
		return nil, ErrSecretMissing
	}

	header, payload, signature, ok := splitToken(token)
	if !ok {
		return nil, fmt.Errorf("%w: expected three segments", ErrMalformedToken)
	}

	provided, err := decodeSegment(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: signature encoding: %v", ErrMalformedToken, err)
	}
	if !hmac.Equal(provided, computeMAC(v.secret, header, payload)) {
		return nil, ErrSignatureMismatch
	}

	raw, err := decodeSegment(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload encoding: %v", ErrMalformedClaims, err)
	}
	claims, err := decodeClaims(raw)
	if err != nil {
		return nil, err
	}

	if exp, ok := claims.Expiry(); ok && !v.now().Before(exp) {
		return nil, fmt.Errorf("%w at %s", ErrTokenExpired, exp.UTC().Format(time.RFC3339))
	}
	return claims, nil
}
