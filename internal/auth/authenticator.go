// Package auth checks admin credentials and tracks revoked sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/supabase-community/gotrue-go/types"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrNotAdmin       = errors.New("account has no admin role")
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*helpers.AdminIdentity, error)
}

// Credential is one row of the configured admin table.
type Credential struct {
	ID       string
	Email    string
	FullName string
	Role     string
	Hash     string
}

// Seeded development accounts.
var devAccounts = []struct {
	id, email, name, role, password string
}{
	{"550e8400-e29b-41d4-a716-446655440000", "admin@gogols.pl", "Administrator", helpers.RoleAdmin, "admin123"},
	{"550e8400-e29b-41d4-a716-446655440001", "superadmin@gogols.pl", "Super Administrator", helpers.RoleSuperAdmin, "superadmin123"},
}

// DevCredentials hashes the development accounts. Never use outside development.
func DevCredentials() ([]Credential, error) {
	out := make([]Credential, 0, len(devAccounts))
	for _, a := range devAccounts {
		hash, err := HashPassword(a.password)
		if err != nil {
			return nil, err
		}
		out = append(out, Credential{ID: a.id, Email: a.email, FullName: a.name, Role: a.role, Hash: hash})
	}
	return out, nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ParseCredentials reads "email:role:bcrypt-hash[:full name]" entries separated by commas.
func ParseCredentials(raw string) ([]Credential, error) {
	var out []Credential
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 4)
		if len(parts) < 3 {
			return nil, fmt.Errorf("admin credential %q: expected email:role:hash", entry)
		}
		c := Credential{
			Email: strings.ToLower(strings.TrimSpace(parts[0])),
			Role:  strings.TrimSpace(parts[1]),
			Hash:  strings.TrimSpace(parts[2]),
		}
		if len(parts) == 4 {
			c.FullName = strings.TrimSpace(parts[3])
		}
		if c.Role != helpers.RoleAdmin && c.Role != helpers.RoleSuperAdmin {
			return nil, fmt.Errorf("admin credential %s: unknown role %q", c.Email, c.Role)
		}
		if _, err := bcrypt.Cost([]byte(c.Hash)); err != nil {
			return nil, fmt.Errorf("admin credential %s: %w", c.Email, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// StaticAuthenticator checks passwords against a fixed bcrypt table.
type StaticAuthenticator struct {
	byEmail map[string]Credential
}

func NewStaticAuthenticator(creds []Credential) *StaticAuthenticator {
	byEmail := make(map[string]Credential, len(creds))
	for _, c := range creds {
		if c.ID == "" {
			c.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+c.Email)).String()
		}
		byEmail[strings.ToLower(c.Email)] = c
	}
	return &StaticAuthenticator{byEmail: byEmail}
}

func (sa *StaticAuthenticator) Authenticate(_ context.Context, email, password string) (*helpers.AdminIdentity, error) {
	c, ok := sa.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return &helpers.AdminIdentity{ID: c.ID, Email: c.Email, FullName: c.FullName, Role: c.Role}, nil
}

// PasswordSignIn is the part of the Supabase Auth client used for admin login.
type PasswordSignIn interface {
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
}

// SupabaseAuthenticator signs in through Supabase Auth and reads the role from
// the verified access token.
type SupabaseAuthenticator struct {
	auth        PasswordSignIn
	supabaseURL string
	verify      func(ctx context.Context, supabaseURL, token string) (*helpers.SupabaseClaims, error)
}

func NewSupabaseAuthenticator(auth PasswordSignIn, supabaseURL string) *SupabaseAuthenticator {
	return &SupabaseAuthenticator{
		auth:        auth,
		supabaseURL: supabaseURL,
		verify:      helpers.ValidateSupabaseToken,
	}
}

func (sa *SupabaseAuthenticator) Authenticate(ctx context.Context, email, password string) (*helpers.AdminIdentity, error) {
	resp, err := sa.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredentials, err)
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, ErrBadCredentials
	}

	claims, err := sa.verify(ctx, sa.supabaseURL, resp.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify supabase session: %w", err)
	}
	role := claims.Role()
	if role != helpers.RoleAdmin && role != helpers.RoleSuperAdmin {
		return nil, ErrNotAdmin
	}
	return &helpers.AdminIdentity{
		ID:       claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName(),
		Role:     role,
	}, nil
}
