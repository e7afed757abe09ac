package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RoutesConfig lists which paths the session gate guards.
type RoutesConfig struct {
	LoginPath         string   `yaml:"login_path"`
	PublicPaths       []string `yaml:"public_paths"`
	ProtectedPrefixes []string `yaml:"protected_prefixes"`
}

// DefaultRoutes returns the built-in route policy.
func DefaultRoutes() RoutesConfig {
	return RoutesConfig{
		LoginPath:   "/login",
		PublicPaths: []string{"/login", "/api/auth/login"},
		ProtectedPrefixes: []string{
			"/dashboard",
			"/outlets",
			"/products",
			"/pos",
			"/settings",
		},
	}
}

// LoadRoutes reads a route policy from a YAML file. Fields left empty take
// their default value.
func LoadRoutes(path string) (*RoutesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading routes: %w", err)
	}

	var routes RoutesConfig
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("parsing routes: %w", err)
	}

	routes.applyDefaults()
	if err := routes.Validate(); err != nil {
		return nil, fmt.Errorf("invalid routes: %w", err)
	}
	return &routes, nil
}

// Validate checks that every configured path is absolute.
func (r *RoutesConfig) Validate() error {
	if !strings.HasPrefix(r.LoginPath, "/") {
		return fmt.Errorf("login_path %q must start with /", r.LoginPath)
	}
	for _, p := range r.PublicPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("public path %q must start with /", p)
		}
	}
	for _, p := range r.ProtectedPrefixes {
		if !strings.HasPrefix(p, "/") || p == "/" {
			return fmt.Errorf("protected prefix %q must start with / and name a segment", p)
		}
	}
	return nil
}

func (r *RoutesConfig) applyDefaults() {
	defaults := DefaultRoutes()
	if r.LoginPath == "" {
		r.LoginPath = defaults.LoginPath
	}
	if len(r.PublicPaths) == 0 {
		r.PublicPaths = defaults.PublicPaths
	}
	if len(r.ProtectedPrefixes) == 0 {
		r.ProtectedPrefixes = defaults.ProtectedPrefixes
	}
}
