package auth

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestVerifier_SecretScenario(t *testing.T) {
	token, _, err := NewIssuer("s3cret", 7*24*time.Hour).Issue(ownerSubject())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := NewVerifier("s3cret").Verify(token)
	if err != nil {
		t.Fatalf("same secret: %v", err)
	}
	if claims.Email != "owner@example.com" {
		t.Errorf("Email: got %q", claims.Email)
	}

	claims, err = NewVerifier("wrong").Verify(token)
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("wrong secret: expected ErrSignatureMismatch, got %v", err)
	}
	if claims != nil {
		t.Errorf("wrong secret: expected nil claims, got %+v", claims)
	}
}

func TestVerifier_MissingSecretFailsClosed(t *testing.T) {
	token, _, _ := NewIssuer("s3cret", time.Hour).Issue(ownerSubject())

	v := NewVerifier("")
	if v.Configured() {
		t.Error("expected unconfigured verifier")
	}
	if _, err := v.Verify(token); !errors.Is(err, ErrSecretMissing) {
		t.Errorf("expected ErrSecretMissing, got %v", err)
	}
	// A token signed with an empty key must not pass either.
	forged := signRaw(t, "", map[string]any{"userId": 1, "email": "x@example.com"})
	if _, err := v.Verify(forged); !errors.Is(err, ErrSecretMissing) {
		t.Errorf("empty-key token: expected ErrSecretMissing, got %v", err)
	}
}

func TestVerifier_SignatureBitFlips(t *testing.T) {
	token, _, _ := NewIssuer("s3cret", time.Hour).Issue(ownerSubject())
	v := NewVerifier("s3cret")
	sigStart := strings.LastIndex(token, ".") + 1

	for i := sigStart; i < len(token); i++ {
		for bit := 0; bit < 8; bit++ {
			tampered := []byte(token)
			tampered[i] ^= 1 << bit
			if _, err := v.Verify(string(tampered)); err == nil {
				t.Fatalf("flip of bit %d at offset %d verified", bit, i)
			}
		}
	}
}

func TestVerifier_PayloadByteFlips(t *testing.T) {
	token, _, _ := NewIssuer("s3cret", time.Hour).Issue(ownerSubject())
	v := NewVerifier("s3cret")
	start := strings.Index(token, ".") + 1
	end := strings.LastIndex(token, ".")

	for i := start; i < end; i++ {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		_, err := v.Verify(string(tampered))
		if !errors.Is(err, ErrSignatureMismatch) {
			t.Fatalf("payload change at offset %d: expected ErrSignatureMismatch, got %v", i, err)
		}
	}
}

func TestVerifier_Expiry(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	v := NewVerifier("s3cret", WithVerifierClock(fixedClock(now)))

	tests := []struct {
		name    string
		exp     any
		wantErr error
	}{
		{"past", now.Add(-time.Minute).Unix(), ErrTokenExpired},
		{"exactly now", now.Unix(), ErrTokenExpired},
		{"one second ahead", now.Add(time.Second).Unix(), nil},
		{"far future", now.Add(7 * 24 * time.Hour).Unix(), nil},
		{"absent", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := map[string]any{"userId": 1, "email": "owner@example.com", "roles": []string{"OWNER"}}
			if tt.exp != nil {
				payload["exp"] = tt.exp
			}
			_, err := v.Verify(signRaw(t, "s3cret", payload))
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifier_ExpiredIssuedToken(t *testing.T) {
	past := time.Now().Add(-8 * 24 * time.Hour)
	token, _, err := NewIssuer("s3cret", 7*24*time.Hour, WithIssuerClock(fixedClock(past))).Issue(ownerSubject())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewVerifier("s3cret").Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifier_Malformed(t *testing.T) {
	v := NewVerifier("s3cret")
	valid := signRaw(t, "s3cret", map[string]any{"userId": 1, "email": "a@example.com"})
	parts := strings.Split(valid, ".")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrMalformedToken},
		{"one segment", "abc", ErrMalformedToken},
		{"two segments", parts[0] + "." + parts[1], ErrMalformedToken},
		{"four segments", valid + ".extra", ErrMalformedToken},
		{"empty signature", parts[0] + "." + parts[1] + ".", ErrMalformedToken},
		{"empty header", "." + parts[1] + "." + parts[2], ErrMalformedToken},
		{"signature not base64", parts[0] + "." + parts[1] + ".***", ErrMalformedToken},
		{"payload not base64", signRawSegments("s3cret", parts[0], "!!!"), ErrMalformedClaims},
		{"payload not json", signRaw(t, "s3cret", "not json"), ErrMalformedClaims},
		{"payload is array", signRaw(t, "s3cret", `[1,2]`), ErrMalformedClaims},
		{"payload is null", signRaw(t, "s3cret", `null`), ErrMalformedClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifier_StrictClaims(t *testing.T) {
	v := NewVerifier("s3cret")

	tests := []struct {
		name    string
		payload string
	}{
		{"userId as string", `{"userId":"1","email":"a@example.com"}`},
		{"userId fractional", `{"userId":1.5,"email":"a@example.com"}`},
		{"missing userId", `{"email":"a@example.com"}`},
		{"missing email", `{"userId":1}`},
		{"email as number", `{"userId":1,"email":7}`},
		{"roles not a list", `{"userId":1,"email":"a@example.com","roles":"OWNER"}`},
		{"role not a string", `{"userId":1,"email":"a@example.com","roles":[1]}`},
		{"exp as string", `{"userId":1,"email":"a@example.com","exp":"soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(signRaw(t, "s3cret", tt.payload))
			if !errors.Is(err, ErrMalformedClaims) {
				t.Fatalf("expected ErrMalformedClaims, got %v", err)
			}
		})
	}
}

func TestVerifier_PaddedSignatureAccepted(t *testing.T) {
	token := signRaw(t, "s3cret", map[string]any{"userId": 3, "email": "c@example.com"})
	// 32-byte MAC encodes to 43 chars; standard padding adds one '='.
	claims, err := NewVerifier("s3cret").Verify(token + "=")
	if err != nil {
		t.Fatalf("Verify padded: %v", err)
	}
	if claims.UserID != 3 {
		t.Errorf("UserID: expected 3, got %d", claims.UserID)
	}
}

func TestVerifier_Concurrent(t *testing.T) {
	v := NewVerifier("s3cret")
	issuer := NewIssuer("s3cret", time.Hour)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			token, _, err := issuer.Issue(Subject{UserID: id, Email: "u@example.com"})
			if err != nil {
				errs <- err
				return
			}
			claims, err := v.Verify(token)
			if err != nil {
				errs <- err
				return
			}
			if claims.UserID != id {
				errs <- errors.New("claims crossed between requests")
			}
		}(int64(i + 1))
		go func() {
			defer wg.Done()
			if _, err := v.Verify("garbage.token.value"); err == nil {
				errs <- errors.New("garbage token verified")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestFailureReason(t *testing.T) {
	tests := map[error]string{
		nil:                  "none",
		ErrSecretMissing:     "secret_missing",
		ErrMissingSession:    "missing_cookie",
		ErrMalformedToken:    "malformed",
		ErrSignatureMismatch: "bad_signature",
		ErrMalformedClaims:   "bad_claims",
		ErrTokenExpired:      "expired",
		errors.New("other"):  "unknown",
	}
	for err, want := range tests {
		if got := FailureReason(err); got != want {
			t.Errorf("FailureReason(%v): expected %q, got %q", err, want, got)
		}
	}
}

func signRawSegments(secret, header, payload string) string {
	return header + "." + payload + "." + encodeSegment(computeMAC([]byte(secret), header, payload))
}
