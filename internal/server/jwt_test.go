package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 2)

	token, err := svc.GenerateToken("cli")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)

	subject, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	got, err := subject.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "cli", got)
}

func TestTokenService_DefaultExpiration(t *testing.T) {
	svc := NewTokenService("secret", 0)
	assert.Equal(t, 24*time.Hour, svc.expiration)
}

func TestTokenService_Errors(t *testing.T) {
	svc := NewTokenService("secret", 1)
	valid, err := svc.GenerateToken("cli")
	require.NoError(t, err)

	expired := NewTokenService("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken("cli")
	require.NoError(t, err)

	otherIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "cli",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	otherIssuerToken, err := otherIssuer.SignedString([]byte("secret"))
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: TokenIssuer, Subject: "cli"})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		svc     *TokenService
		token   string
		wantErr string
	}{
		{"empty", svc, "", "token string is empty"},
		{"malformed", svc, "not.a.jwt", "malformed token"},
		{"wrong secret", NewTokenService("other", 1), valid, "invalid token signature"},
		{"expired", svc, expiredToken, "token expired"},
		{"wrong issuer", svc, otherIssuerToken, "failed to parse token"},
		{"none algorithm", svc, noneToken, "failed to parse token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTokenService_EmptySubject(t *testing.T) {
	_, err := NewTokenService("secret", 1).GenerateToken("")
	assert.Error(t, err)
}
