package auth

import (
	"encoding/json"
	"testing"
	"time"
)

const testHeader = `{"alg":"HS256","typ":"JWT"}`

// signRaw signs an arbitrary payload, bypassing the Issuer, so tests can
// build tokens the Issuer never produces (no exp, odd claim shapes).
func signRaw(t *testing.T, secret string, payload any) string {
	t.Helper()
	var body []byte
	switch p := payload.(type) {
	case string:
		body = []byte(p)
	default:
		var err error
		body, err = json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	header := encodeSegment([]byte(testHeader))
	claims := encodeSegment(body)
	sig := encodeSegment(computeMAC([]byte(secret), header, claims))
	return header + "." + claims + "." + sig
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func ownerSubject() Subject {
	return Subject{UserID: 1, Email: "owner@example.com", Roles: []string{"OWNER"}}
}
