package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futureapi/server/internal/config"
	"github.com/futureapi/server/internal/database"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*gin.Engine, *Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// Every pooled connection would otherwise get its own empty in-memory
	// database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{
		JWTSecret:       testSecret,
		SessionTokenTTL: 1440 * time.Second,
		InviteTokenTTL:  604800 * time.Second,
	}
	h := New(db, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	h.RegisterRoutes(router)
	return router, h
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	parsed := map[string]any{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, parsed
}

func registerUser(t *testing.T, router http.Handler, username, password string) map[string]any {
	t.Helper()
	code, body := doJSON(t, router, http.MethodPost, "/user/register", map[string]string{
		"username": username,
		"password": password,
	})
	if code != http.StatusCreated {
		t.Fatalf("register %s failed with status %d: %v", username, code, body)
	}
	return body["data"].(map[string]any)
}

func createInvite(t *testing.T, router http.Handler, username, sessionToken string) map[string]any {
	t.Helper()
	code, body := doJSON(t, router, http.MethodPost, "/user/invite", map[string]string{
		"username": username,
		"token":    sessionToken,
	})
	if code != http.StatusOK {
		t.Fatalf("invite for %s failed with status %d: %v", username, code, body)
	}
	return body["invites"].(map[string]any)
}

func failureMessages(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected failure message list, got %v", body["data"])
	}
	msgs := make([]string, 0, len(raw))
	for _, m := range raw {
		msgs = append(msgs, m.(string))
	}
	return msgs
}
