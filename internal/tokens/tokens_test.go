package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	userID := uuid.NewString()
	exp := time.Now().Add(AccessTTL).UTC()

	token, err := SignAccessToken(userID, "admin", secret, exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(uuid.NewString(), "user", []byte("right"), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("wrong"))
	require.Error(t, err)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, err := SignAccessToken(uuid.NewString(), "user", secret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	require.Error(t, err)
}

func TestSignRefreshToken_SetsJTI(t *testing.T) {
	t.Parallel()

	secret := []byte("test-refresh-secret")
	userID := uuid.NewString()
	exp := time.Now().Add(RefreshTTL).UTC()

	token, jti, err := SignRefreshToken(userID, secret, exp)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := RefreshClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, jti, claims.ID)
}

func TestNewJTI_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		jti := NewJTI()
		assert.Len(t, jti, 32)
		assert.False(t, seen[jti])
		seen[jti] = true
	}
}

func TestSha256Hex(t *testing.T) {
	t.Parallel()

	h := Sha256Hex("token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, Sha256Hex("token"))
	assert.NotEqual(t, h, Sha256Hex("other"))
}
