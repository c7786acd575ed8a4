package identity

import (
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/config"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerifierAcceptsValidToken(t *testing.T) {
	v := NewVerifier("secret")
	token := sign(t, jwt.SigningMethodHS256, []byte("secret"), Claims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	sub, email, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, "ana@example.com", email)
}

func TestVerifierRejects(t *testing.T) {
	v := NewVerifier("secret")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		})},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte("secret"), Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})},
		{"no subject", sign(t, jwt.SigningMethodHS256, []byte("secret"), Claims{Email: "x@y.z"})},
		{"hs512", sign(t, jwt.SigningMethodHS512, []byte("secret"), Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestSignInURL(t *testing.T) {
	raw := SignInURL(config.AuthConfig{
		ProviderURL: "https://auth.example.com/",
		OAuthVendor: "google",
		RedirectURL: "https://pos.example.com/callback",
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "auth.example.com", u.Host)
	assert.Equal(t, "/auth/v1/authorize", u.Path)
	assert.Equal(t, "google", u.Query().Get("provider"))
	assert.Equal(t, "select_account", u.Query().Get("prompt"))
	assert.Equal(t, "https://pos.example.com/callback", u.Query().Get("redirect_to"))
}
