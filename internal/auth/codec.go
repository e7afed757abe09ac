package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// Verification failures. They are distinguishable for logging only; callers
// facing clients collapse them into a single outcome.
var (
	ErrSecretMissing     = errors.New("session secret is not configured")
	ErrMissingSession    = errors.New("session cookie missing")
	ErrMalformedToken    = errors.New("malformed session token")
	ErrSignatureMismatch = errors.New("session token signature mismatch")
	ErrMalformedClaims   = errors.New("malformed session claims")
	ErrTokenExpired      = errors.New("session token expired")
)

var segmentEncoding = base64.RawURLEncoding.Strict()

// FailureReason maps a verification error to a stable label for logs and metrics.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrSecretMissing):
		return "secret_missing"
	case errors.Is(err, ErrMissingSession):
		return "missing_cookie"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	case errors.Is(err, ErrSignatureMismatch):
		return "bad_signature"
	case errors.Is(err, ErrMalformedClaims):
		return "bad_claims"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	default:
		return "unknown"
	}
}

func encodeSegment(data []byte) string {
	return segmentEncoding.EncodeToString(data)
}

// decodeSegment accepts both padded and unpadded base64url.
func decodeSegment(seg string) ([]byte, error) {
	return segmentEncoding.DecodeString(strings.TrimRight(seg, "="))
}

// splitToken returns the header, payload and signature segments.
func splitToken(token string) (header, payload, signature string, ok bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", "", "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", false
		}
	}
	return parts[0], parts[1], parts[2], true
}

// computeMAC returns HMAC-SHA256(secret, header + "." + payload).
func computeMAC(secret []byte, header, payload string) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(header))
	mac.Write([]byte{'.'})
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
