package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can learn from a bearer token without the
// signing key. The backend remains the authority on validity.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect reads the claims of token without verifying its signature.
func Inspect(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("read exp claim: %w", err)
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether the token is past its exp claim at now. Tokens
// without exp, and opaque tokens, are never considered expired.
func Expired(token string, now time.Time) bool {
	info, err := Inspect(token)
	if err != nil || info.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(info.ExpiresAt)
}
