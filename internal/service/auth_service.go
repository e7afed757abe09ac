package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/pos-backoffice/internal/auth"
	"github.com/spec-kit/pos-backoffice/internal/config"
	"github.com/spec-kit/pos-backoffice/internal/domain"
	"github.com/spec-kit/pos-backoffice/internal/events"
	"github.com/spec-kit/pos-backoffice/internal/repository"
	apperrors "github.com/spec-kit/pos-backoffice/pkg/util"
)

// Login outcomes reported to the LoginRecorder.
const (
	LoginOutcomeSuccess            = "success"
	LoginOutcomeInvalidCredentials = "invalid_credentials"
	LoginOutcomeThrottled          = "throttled"
	LoginOutcomeError              = "error"
)

// ErrInvalidCredentials covers unknown, inactive and wrong-password accounts alike.
var ErrInvalidCredentials = apperrors.NewUnauthorized("invalid credentials")

// LoginThrottle limits repeated login attempts per client and account.
type LoginThrottle interface {
	Allow(ctx context.Context, ip, email string) (bool, time.Duration)
	Reset(ctx context.Context, ip, email string)
}

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Issuer      *auth.Issuer
	Credentials auth.CredentialVerifier
	Throttle    LoginThrottle
	Dispatcher  events.Dispatcher
	Recorder    LoginRecorder
	Logger      *zap.Logger
}

// AuthService coordinates login and logout flows.
type AuthService struct {
	users       repository.UserRepository
	issuer      *auth.Issuer
	credentials auth.CredentialVerifier
	throttle    LoginThrottle
	dispatcher  events.Dispatcher
	recorder    LoginRecorder
	logger      *zap.Logger
	bcryptCost  int

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	credentials := deps.Credentials
	if credentials == nil {
		credentials = auth.BcryptVerifier{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		issuer:      deps.Issuer,
		credentials: credentials,
		throttle:    deps.Throttle,
		dispatcher:  deps.Dispatcher,
		recorder:    deps.Recorder,
		logger:      logger,
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// Login authenticates an account by email and password and issues a session token.
func (s *AuthService) Login(ctx context.Context, ip, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}
	actor := events.Actor{Email: email, IP: ip}

	if s.throttle != nil {
		if allowed, retryAfter := s.throttle.Allow(ctx, ip, email); !allowed {
			s.record(LoginOutcomeThrottled)
			s.publish(ctx, events.NewEvent(events.EventLoginThrottled, actor, nil))
			return nil, apperrors.NewTooManyRequests("too many login attempts", int(math.Ceil(retryAfter.Seconds())))
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Burn a comparison so unknown accounts take as long as known ones.
		s.credentials.Verify(s.dummy(), password)
		return nil, s.rejectLogin(ctx, actor, "unknown_account")
	case err != nil:
		s.record(LoginOutcomeError)
		return nil, apperrors.NewInternalError(err)
	}

	actor.UserID = user.ID
	if !s.credentials.Verify(user.PasswordHash, password) {
		return nil, s.rejectLogin(ctx, actor, "wrong_password")
	}
	if !user.IsActive {
		return nil, s.rejectLogin(ctx, actor, "inactive")
	}

	token, expiresAt, err := s.issuer.Issue(auth.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	})
	if err != nil {
		s.record(LoginOutcomeError)
		if errors.Is(err, auth.ErrSecretMissing) {
			s.logger.Error("cannot issue session: secret not configured")
		}
		return nil, apperrors.NewInternalError(err)
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, ip, email)
	}
	s.record(LoginOutcomeSuccess)
	s.publish(ctx, events.NewEvent(events.EventLoginSucceeded, actor, nil))

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout records the end of a session. Tokens are stateless so nothing is revoked.
func (s *AuthService) Logout(ctx context.Context, claims *auth.SessionClaims, ip string) {
	actor := events.Actor{IP: ip}
	if claims != nil {
		actor.UserID = claims.UserID
		actor.Email = claims.Email
	}
	s.publish(ctx, events.NewEvent(events.EventLogout, actor, nil))
}

func (s *AuthService) rejectLogin(ctx context.Context, actor events.Actor, reason string) error {
	s.record(LoginOutcomeInvalidCredentials)
	s.publish(ctx, events.NewEvent(events.EventLoginFailed, actor, events.LoginFailedPayload{Reason: reason}))
	return ErrInvalidCredentials
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword("pos-backoffice-placeholder", s.bcryptCost)
		if err != nil {
			s.logger.Warn("dummy hash generation failed", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordLogin(outcome)
	}
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
