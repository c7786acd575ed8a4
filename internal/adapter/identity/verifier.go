package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

// Claims is the subset of the provider's session token we rely on.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type verifier struct {
	secret []byte
}

// NewVerifier checks HS256 session tokens signed with the provider's secret.
func NewVerifier(secret string) interfaces.TokenVerifier {
	return &verifier{secret: []byte(secret)}
}

func (v *verifier) Verify(tokenString string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", "", fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}

	return claims.Subject, claims.Email, nil
}
