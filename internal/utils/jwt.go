// Package utils provides helper functions for token issuing, token
// verification and password hashing.
package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Callers translate all of these to HTTP 401.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// TokenClaims are the identity fields embedded in a bearer token.
type TokenClaims struct {
	UserID uint64
	Email  string
}

// NewToken builds and signs an HS256 JWT for a user. The token embeds the
// user id and email as claims and is valid for ttlDays from now.
func NewToken(secret string, userID uint64, email string, ttlDays int) (string, time.Time, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken verifies a serialized token and extracts its identity
// claims. It distinguishes malformed, expired and badly signed tokens so
// the caller can report the failure mode.
func ParseToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return TokenClaims{}, ErrExpiredToken
		// A non-HMAC alg makes the keyfunc fail, which jwt wraps as an
		// unverifiable-token error; unwrap it back to a signature failure.
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
			return TokenClaims{}, ErrInvalidSignature
		default:
			return TokenClaims{}, ErrMalformedToken
		}
	}
	if !tok.Valid {
		return TokenClaims{}, ErrMalformedToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrMalformedToken
	}

	var out TokenClaims
	switch id := claims["id"].(type) {
	case float64:
		out.UserID = uint64(id)
	case string:
		// some clients re-issue the id claim as a decimal string
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return TokenClaims{}, ErrMalformedToken
		}
		out.UserID = n
	default:
		return TokenClaims{}, ErrMalformedToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return TokenClaims{}, ErrMalformedToken
	}
	out.Email = email
	return out, nil
}
