package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/gogols/internal/auth"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/metrics"
	"github.com/joshua-takyi/gogols/internal/models"
)

const DefaultSessionTTL = 8 * time.Hour

var ErrSessionRevoked = errors.New("session has been logged out")

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expires_at"`
	Admin     helpers.AdminIdentity `json:"admin"`
}

type AuthService struct {
	authn    auth.Authenticator
	sessions auth.SessionStore
	secret   []byte
	ttl      time.Duration
	audit    auditor
	logger   *slog.Logger
}

func NewAuthService(authn auth.Authenticator, sessions auth.SessionStore, secret []byte, ttl time.Duration, audit models.AuditRepo, logger *slog.Logger) *AuthService {
	if sessions == nil {
		sessions = auth.NewMemorySessionStore()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authn:    authn,
		sessions: sessions,
		secret:   secret,
		ttl:      ttl,
		audit:    auditor{repo: audit, logger: logger},
		logger:   logger,
	}
}

func (as *AuthService) TTL() time.Duration { return as.ttl }

// Login checks the credentials and issues a signed session token.
func (as *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := models.Validate.Var(email, "required,email"); err != nil {
		metrics.RecordLogin(false)
		return nil, auth.ErrBadCredentials
	}
	if password == "" {
		metrics.RecordLogin(false)
		return nil, auth.ErrBadCredentials
	}

	who, err := as.authn.Authenticate(ctx, email, password)
	if err != nil {
		metrics.RecordLogin(false)
		as.logger.Warn("admin login failed", "email", email, "error", err)
		return nil, err
	}

	token, claims, err := helpers.IssueSessionToken(as.secret, *who, as.ttl)
	if err != nil {
		return nil, err
	}
	metrics.RecordLogin(true)
	as.logger.Info("admin logged in", "email", who.Email, "role", who.Role)
	as.audit.record(ctx, &models.AuditEntry{
		Action:   models.AuditLogin,
		TargetID: who.ID,
		Actor:    who.Email,
	})

	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, Admin: *who}, nil
}

// Verify validates a presented token and rejects revoked sessions.
func (as *AuthService) Verify(ctx context.Context, token string) (*helpers.AdminClaims, error) {
	claims, err := helpers.ValidateSessionToken(as.secret, token)
	if err != nil {
		return nil, err
	}
	revoked, err := as.sessions.IsRevoked(ctx, claims.SessionID())
	if err != nil {
		return nil, fmt.Errorf("failed to check session state: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Logout revokes the session until its token would have expired anyway.
func (as *AuthService) Logout(ctx context.Context, claims *helpers.AdminClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return helpers.ErrInvalidToken
	}
	if err := as.sessions.Revoke(ctx, claims.SessionID(), claims.ExpiresAt.Time); err != nil {
		return err
	}
	as.logger.Info("admin logged out", "email", claims.Email)
	return nil
}
