package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort     string
	HTTPSPort    string
	Domain       string // HTTPS with Let's Encrypt is enabled when set
	DatabasePath string
	JWTSecret    string
	// Token lifetimes, configured in whole seconds.
	SessionTokenTTL time.Duration
	InviteTokenTTL  time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		HTTPSPort:       getEnv("HTTPS_PORT", "8443"),
		Domain:          os.Getenv("DOMAIN"),
		DatabasePath:    getEnv("DATABASE_PATH", "accounts.db"),
		JWTSecret:       loadOrGenerateJWTSecret(),
		SessionTokenTTL: getEnvSeconds("SESSION_TOKEN_TTL", 1440*time.Second),
		InviteTokenTTL:  getEnvSeconds("INVITE_TOKEN_TTL", 604800*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func generateRandomSecret() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// loadOrGenerateJWTSecret resolves the signing secret: JWT_SECRET env var
// first, then a previously persisted key file, otherwise a new secret is
// generated and saved so tokens survive restarts.
func loadOrGenerateJWTSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}

	keysDir := getKeysDirectory()
	secretFile := filepath.Join(keysDir, "jwt-secret.key")

	if secretData, err := os.ReadFile(secretFile); err == nil {
		secret := strings.TrimSpace(string(secretData))
		if secret != "" {
			return secret
		}
	}

	secret := generateRandomSecret()

	if err := os.MkdirAll(keysDir, 0700); err == nil {
		if err := os.WriteFile(secretFile, []byte(secret), 0600); err != nil {
			fmt.Printf("Warning: failed to save JWT secret to disk: %v\n", err)
			fmt.Println("Secret will be regenerated on next restart unless set via JWT_SECRET environment variable")
		}
	}

	return secret
}

func getKeysDirectory() string {
	execPath, err := os.Executable()
	if err != nil {
		return "keys"
	}
	return filepath.Join(filepath.Dir(execPath), "keys")
}
