package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestSignAndVerify(t *testing.T) {
	now := time.Now()

	raw, err := Sign(testSecret, time.Hour, now)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := Verify(raw, testSecret)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !claims.Check {
		t.Fatalf("expected marker claim to be set")
	}
	if claims.ID == "" {
		t.Fatalf("expected a token ID")
	}
	if got := claims.ExpiresAt.Time; got.Before(now.Add(59 * time.Minute)) {
		t.Fatalf("expiry too early: %v", got)
	}
}

func TestVerifyExpired(t *testing.T) {
	raw, err := Sign(testSecret, -time.Minute, time.Now())
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := Verify(raw, testSecret); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	raw, err := Sign(testSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := Verify(raw, []byte("other-secret")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	if _, err := Verify("not-a-token", testSecret); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyRejectsMissingMarker(t *testing.T) {
	// Well-signed token without the marker payload.
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := Verify(raw, testSecret); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestSignedTokensAreUnique(t *testing.T) {
	now := time.Now()

	first, err := Sign(testSecret, time.Hour, now)
	if err != nil {
		t.Fatalf("first sign failed: %v", err)
	}
	second, err := Sign(testSecret, time.Hour, now)
	if err != nil {
		t.Fatalf("second sign failed: %v", err)
	}

	// Same instant, same payload: the token ID must still make them differ.
	if first == second {
		t.Fatalf("expected unique tokens, got duplicate %s", first)
	}
}
