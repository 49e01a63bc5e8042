package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected default HTTP port %s", cfg.HTTPPort)
	}
	if cfg.SessionTokenTTL != 1440*time.Second {
		t.Fatalf("unexpected session TTL %v", cfg.SessionTokenTTL)
	}
	if cfg.InviteTokenTTL != 604800*time.Second {
		t.Fatalf("unexpected invite TTL %v", cfg.InviteTokenTTL)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Fatalf("expected secret from environment")
	}
}

func TestTTLOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TOKEN_TTL", "60")
	t.Setenv("INVITE_TOKEN_TTL", "3600")

	cfg := Load()
	if cfg.SessionTokenTTL != time.Minute {
		t.Fatalf("unexpected session TTL %v", cfg.SessionTokenTTL)
	}
	if cfg.InviteTokenTTL != time.Hour {
		t.Fatalf("unexpected invite TTL %v", cfg.InviteTokenTTL)
	}
}

func TestTTLIgnoresGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TOKEN_TTL", "not-a-number")

	cfg := Load()
	if cfg.SessionTokenTTL != 1440*time.Second {
		t.Fatalf("expected default TTL for a bad value, got %v", cfg.SessionTokenTTL)
	}
}
