// Package token mints and checks the signed tokens used as session
// credentials and invite codes. Both kinds carry the same marker payload and
// differ only in lifetime.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrExpired = errors.New("token has expired")
	ErrInvalid = errors.New("invalid token")
)

// Claims carried by every token the service mints. Check is the payload
// marker; a token without it is rejected even when the signature is good.
type Claims struct {
	jwt.RegisteredClaims
	Check bool `json:"check"`
}

// Sign mints an HS256 token expiring ttl after now. Each token gets a unique
// ID, so two tokens minted within the same second still differ; invite codes
// rely on this because the code is also the invite's lookup key.
func Sign(secret []byte, ttl time.Duration, now time.Time) (string, error) {
	id, err := gonanoid.New(16)
	if err != nil {
		return "", err
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Check: true,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks signature, expiry and the marker claim. It returns ErrExpired
// for a well-formed token past its expiry and ErrInvalid for everything else.
func Verify(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tok.Valid || !claims.Check {
		return nil, ErrInvalid
	}
	return claims, nil
}
