package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewSessionCookie builds the cookie carrying a session token until expiresAt.
func NewSessionCookie(name, token string, expiresAt, now time.Time, secure bool) *fiber.Cookie {
	return baseCookie(name, token, expiresAt, expiresAt.Sub(now), secure)
}

// NewOutletCookie builds the short-lived selected-outlet cookie.
func NewOutletCookie(name string, outletID int64, ttl time.Duration, now time.Time, secure bool) *fiber.Cookie {
	return baseCookie(name, strconv.FormatInt(outletID, 10), now.Add(ttl), ttl, secure)
}

// ExpiredCookie builds a cookie instructing the client to drop name.
func ExpiredCookie(name string, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		Secure:   secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func baseCookie(name, value string, expires time.Time, lifetime time.Duration, secure bool) *fiber.Cookie {
	maxAge := int(lifetime / time.Second)
	if maxAge < 1 {
		maxAge = 1
	}
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
