package auth

import (
	"errors"
	"fmt"
	"time"

	"taskhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = time.Hour

// tokenUser is the nested identity object inside the claims. The shape
// {"user":{"id":...}} is the wire contract consumed by existing clients
// and must round-trip through Issue/Verify unchanged.
type tokenUser struct {
	ID string `json:"id"`
}

type tokenClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies stateless HS256 session tokens.
// There is no server-side revocation; a token stays valid until expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret []byte) *TokenManager {
	return &TokenManager{secret: secret, ttl: defaultTokenTTL}
}

func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		User: tokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user ID embedded in a valid token. Malformed,
// tampered and expired tokens all collapse to domain.ErrTokenInvalid so
// callers cannot distinguish why a token was rejected.
func (m *TokenManager) Verify(raw string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	if claims.User.ID == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.User.ID, nil
}
