package helpers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	var waits []time.Duration

	got, err := Retry(context.Background(), RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	}, func(_ error, next time.Duration) {
		waits = append(waits, next)
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestRetry_GivesUpAfterThreeAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("store unavailable")

	_, err := Retry(context.Background(), RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}, func() (int, error) {
		calls++
		return 0, boom
	}, nil)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret-test-secret-test-secret")
	who := AdminIdentity{ID: "550e8400-e29b-41d4-a716-446655440000", Email: "admin@gogols.pl", Role: RoleAdmin, FullName: "Administrator Gogols"}

	signed, issued, err := IssueSessionToken(secret, who, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, issued.SessionID())

	claims, err := ValidateSessionToken(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, who.Email, claims.Email)
	assert.Equal(t, who.ID, claims.UserID())
	assert.Equal(t, issued.SessionID(), claims.SessionID())
	assert.True(t, claims.IsAdmin())
	assert.False(t, claims.IsSuperAdmin())
}

func TestSessionToken_Rejections(t *testing.T) {
	secret := []byte("test-secret-test-secret-test-secret")
	who := AdminIdentity{ID: "1", Email: "admin@gogols.pl", Role: RoleAdmin}

	signed, _, err := IssueSessionToken(secret, who, time.Hour)
	require.NoError(t, err)
	_, err = ValidateSessionToken([]byte("another-secret"), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := IssueSessionToken(secret, who, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateSessionToken(secret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	guest, _, err := IssueSessionToken(secret, AdminIdentity{ID: "2", Email: "x@y.pl", Role: "guest"}, time.Hour)
	require.NoError(t, err)
	_, err = ValidateSessionToken(secret, guest)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &AdminClaims{Role: RoleAdmin}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateSessionToken(secret, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUploadImage_Disabled(t *testing.T) {
	_, err := UploadImage(context.Background(), nil, "https://example.com/a.jpg", SiteImagesFolder)
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}

func TestSupabaseClaimsRole(t *testing.T) {
	sc := &SupabaseClaims{UserMetadata: map[string]interface{}{"role": "super_admin", "full_name": "Super Administrator"}}
	assert.Equal(t, RoleSuperAdmin, sc.Role())
	assert.Equal(t, "Super Administrator", sc.FullName())

	sc.AppMetadata.Role = RoleAdmin
	assert.Equal(t, RoleAdmin, sc.Role())
}
