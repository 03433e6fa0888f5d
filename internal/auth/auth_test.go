package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessToken(t *testing.T) {
	svc := NewJWTService("secret")

	access, err := svc.GenerateAccessToken(42, "alice")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, KindAccess, claims.Kind)

	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("secret")

	tokenID, refresh, err := svc.GenerateRefreshToken(42, "alice")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenKind, "refresh tokens do not open secured routes")
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret")
	token, err := svc.GenerateAccessToken(1, "bob")
	require.NoError(t, err)

	_, err = NewJWTService("other").ValidateAccessToken(token)
	assert.Error(t, err, "wrong secret")

	expired := NewJWTService("secret")
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.GenerateAccessToken(1, "bob")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(old)
	assert.Error(t, err, "expired")

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		Kind:   KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(foreign)
	assert.ErrorContains(t, err, "issuer")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Kind: KindAccess}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(none)
	assert.Error(t, err, "unsigned tokens")
}

func TestTokenStore_WithoutRedisMisses(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(nil)

	require.NoError(t, store.StoreRefreshToken(ctx, "id", 1, "alice", time.Minute))
	_, _, err := store.GetRefreshToken(ctx, "id")
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.NoError(t, store.DeleteRefreshToken(ctx, "id"))
}
