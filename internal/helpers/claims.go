package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"

	sessionIssuer = "gogols-api"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

// AdminClaims are carried by the session token issued at admin login.
type AdminClaims struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

func (ac *AdminClaims) IsAdmin() bool {
	return ac.Role == RoleAdmin || ac.Role == RoleSuperAdmin
}

func (ac *AdminClaims) IsSuperAdmin() bool {
	return ac.Role == RoleSuperAdmin
}

func (ac *AdminClaims) UserID() string {
	return ac.Subject
}

// SessionID is the jti used for revocation.
func (ac *AdminClaims) SessionID() string {
	return ac.ID
}

type AdminIdentity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// IssueSessionToken signs a short-lived HS256 token for the admin identity.
func IssueSessionToken(secret []byte, who AdminIdentity, ttl time.Duration) (string, *AdminClaims, error) {
	if len(secret) == 0 {
		return "", nil, errors.New("session secret is not configured")
	}
	now := time.Now().UTC()
	claims := &AdminClaims{
		Role:     who.Role,
		Email:    who.Email,
		FullName: who.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   who.ID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

func ValidateSessionToken(secret []byte, tokenStr string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || !claims.IsAdmin() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
