// Package jwtmw signs and verifies the tokens carried by the session cookie.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// claimSessionID names the claim that holds the server-side session ID.
const claimSessionID = "sid"

// ErrInvalidToken is returned for tokens that are malformed, expired, tampered with,
// or signed with an unexpected algorithm.
var ErrInvalidToken = errors.New("invalid session token")

// Signer issues and verifies HS256 tokens that reference a session.
type Signer struct {
	secret []byte
}

// NewSigner creates a new Signer with the provided secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign creates a signed token naming sessionID that expires at expiresAt.
func (s *Signer) Sign(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		claimSessionID: sessionID,
		"exp":          expiresAt.Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies tokenStr and returns the session ID it names.
func (s *Signer) Parse(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, ok := claims[claimSessionID].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}

	return sid, nil
}
