package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/pos-backoffice/pkg/util"
)

const sessionLocalsKey = "auth_session"

type contextKey int

const sessionContextKey contextKey = iota

// Decision is the outcome of running a request through the gate.
type Decision int

const (
	// DecisionAllow lets the request through: public path or valid session.
	DecisionAllow Decision = iota
	// DecisionBypass skips the gate for paths outside the protected prefixes.
	DecisionBypass
	// DecisionRedirect sends the client back to the login page.
	DecisionRedirect
	// DecisionReject answers an API request with 401.
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionBypass:
		return "bypass"
	case DecisionRedirect:
		return "redirect"
	case DecisionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// DecisionRecorder receives one observation per gated request.
type DecisionRecorder interface {
	RecordGateDecision(decision, reason string)
}

// GateConfig bundles gate dependencies.
type GateConfig struct {
	Verifier   *Verifier
	Policy     RoutePolicy
	CookieName string
	LoginPath  string
	Logger     *zap.Logger
	Recorder   DecisionRecorder
}

// Gate authorizes requests from the session cookie before handlers run.
type Gate struct {
	verifier   *Verifier
	policy     RoutePolicy
	cookieName string
	loginPath  string
	logger     *zap.Logger
	recorder   DecisionRecorder
}

// NewGate constructs the gate.
func NewGate(cfg GateConfig) *Gate {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	if cfg.Verifier != nil && !cfg.Verifier.Configured() {
		logger.Error("session secret missing; every session will be rejected")
	}
	return &Gate{
		verifier:   cfg.Verifier,
		policy:     cfg.Policy,
		cookieName: cfg.CookieName,
		loginPath:  loginPath,
		logger:     logger,
		recorder:   cfg.Recorder,
	}
}

// Evaluate decides the fate of a request for path carrying token. It has no
// side effects.
func (g *Gate) Evaluate(path, token string) (Decision, *SessionClaims, error) {
	if g.policy.IsPublic(path) {
		return DecisionAllow, nil, nil
	}
	if !g.policy.IsProtected(path) {
		return DecisionBypass, nil, nil
	}
	claims, err := g.verify(token)
	if err != nil {
		return DecisionRedirect, nil, err
	}
	return DecisionAllow, claims, nil
}

// Handle is the page gate: failures redirect to the login page.
func (g *Gate) Handle(c *fiber.Ctx) error {
	decision, claims, err := g.Evaluate(c.Path(), c.Cookies(g.cookieName))
	g.observe(c, decision, err)

	switch decision {
	case DecisionRedirect:
		return c.Redirect(g.loginPath, fiber.StatusFound)
	case DecisionAllow:
		if claims != nil {
			attachSession(c, claims)
		}
	}
	return c.Next()
}

// RequireSession guards JSON endpoints: failures answer 401 without detail.
func (g *Gate) RequireSession(c *fiber.Ctx) error {
	claims, err := g.verify(c.Cookies(g.cookieName))
	if err != nil {
		g.observe(c, DecisionReject, err)
		return apperrors.NewUnauthorized("unauthorized")
	}
	g.observe(c, DecisionAllow, nil)
	attachSession(c, claims)
	return c.Next()
}

func (g *Gate) verify(token string) (*SessionClaims, error) {
	if g.verifier == nil {
		return nil, ErrSecretMissing
	}
	if token == "" {
		return nil, ErrMissingSession
	}
	return g.verifier.Verify(token)
}

func (g *Gate) observe(c *fiber.Ctx, decision Decision, err error) {
	reason := FailureReason(err)
	if g.recorder != nil && decision != DecisionBypass {
		g.recorder.RecordGateDecision(decision.String(), reason)
	}
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("decision", decision.String()),
		zap.String("reason", reason),
		zap.Error(err),
	}
	if errors.Is(err, ErrSecretMissing) {
		g.logger.Error("session verification unavailable", fields...)
		return
	}
	g.logger.Debug("session rejected", fields...)
}

func attachSession(c *fiber.Ctx, claims *SessionClaims) {
	c.Locals(sessionLocalsKey, claims)
	c.SetUserContext(ContextWithSession(c.UserContext(), claims))
}

// SessionFromContext retrieves the verified session claims.
func SessionFromContext(c *fiber.Ctx) (*SessionClaims, bool) {
	claims, ok := c.Locals(sessionLocalsKey).(*SessionClaims)
	return claims, ok && claims != nil
}

// ContextWithSession returns a copy of ctx carrying claims.
func ContextWithSession(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, sessionContextKey, claims)
}

// SessionFromUserContext retrieves claims stored by ContextWithSession.
func SessionFromUserContext(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(sessionContextKey).(*SessionClaims)
	return claims, ok && claims != nil
}
