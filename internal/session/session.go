// Package session holds the authenticated user's identity and persists it
// between runs.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is created on successful login and destroyed on logout. Token
// expiry is not enforced anywhere; ExpiresAt exists for display only.
type Session struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// ExpiresAt decodes the token's exp claim without verifying the signature.
// Returns the zero time when the token is not a JWT or carries no expiry.
func (s Session) ExpiresAt() time.Time {
	if s.Token == "" {
		return time.Time{}
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
