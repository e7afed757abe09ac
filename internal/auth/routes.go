package auth

import (
	"path"
	"strings"
)

// RoutePolicy classifies request paths for the gate. Matching runs on a
// cleaned, lower-cased path so it agrees with fiber's default
// case-insensitive, non-strict routing.
type RoutePolicy struct {
	public   map[string]struct{}
	prefixes []string
}

// NewRoutePolicy builds a policy. Public paths match exactly; a protected
// prefix matches itself and anything below it.
func NewRoutePolicy(publicPaths, protectedPrefixes []string) RoutePolicy {
	p := RoutePolicy{public: make(map[string]struct{}, len(publicPaths))}
	for _, pp := range publicPaths {
		p.public[normalizePath(pp)] = struct{}{}
	}
	for _, prefix := range protectedPrefixes {
		p.prefixes = append(p.prefixes, normalizePath(prefix))
	}
	return p
}

// IsPublic reports whether the path is on the allow-list.
func (p RoutePolicy) IsPublic(requestPath string) bool {
	_, ok := p.public[normalizePath(requestPath)]
	return ok
}

// IsProtected reports whether the path falls under a protected prefix.
func (p RoutePolicy) IsProtected(requestPath string) bool {
	clean := normalizePath(requestPath)
	for _, prefix := range p.prefixes {
		if clean == prefix || strings.HasPrefix(clean, prefix+"/") {
			return true
		}
	}
	return false
}

func normalizePath(p string) string {
	return strings.ToLower(path.Clean("/" + p))
}
