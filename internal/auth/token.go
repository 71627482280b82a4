// Package auth issues and verifies the signed tokens behind magic-link login:
// a short-lived login token embedded in the emailed link, and a longer-lived
// session token carried in a cookie once the link is used.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Purpose string

const (
	PurposeLogin   Purpose = "login"
	PurposeSession Purpose = "session"
)

const (
	// Login links are single-use in spirit; keep them short-lived.
	LoginTTL   = 5 * time.Minute
	SessionTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

type claims struct {
	Email   string  `json:"email"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
}

func New(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

func (t *Tokens) Issue(email string, purpose Purpose, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(t.secret)
}

// Verify checks signature, expiry and purpose, returning the embedded email.
// A login token is never accepted as a session token or vice versa.
func (t *Tokens) Verify(tokenString string, purpose Purpose) (string, error) {
	var parsed claims
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if parsed.Purpose != purpose || parsed.Email == "" {
		return "", ErrInvalidToken
	}
	return parsed.Email, nil
}
