package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/futureapi/server/internal/config"
	"github.com/futureapi/server/internal/database"
	"github.com/futureapi/server/internal/handlers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/acme/autocert"
)

const AppVersion = "1.0.0"

func main() {
	httpOnly := flag.Bool("http-only", false, "Serve plain HTTP even when DOMAIN is configured")
	flag.Parse()

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	logger.Info("account server starting", "version", AppVersion)

	// The store must be open and migrated before the listener starts, so no
	// request can ever observe an uninitialized connection.
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}

	h := handlers.New(db, cfg, logger)
	router := setupRouter(h, logger)

	if cfg.Domain == "" || *httpOnly {
		startHTTP(router, cfg, logger)
		return
	}
	startHTTPS(router, cfg, logger)
}

func setupRouter(h *handlers.Handlers, logger *slog.Logger) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(slogGinLogger(logger))

	h.RegisterRoutes(router)
	return router
}

func startHTTP(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server starting", "port", cfg.HTTPPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to start HTTP server", "error", err)
		os.Exit(1)
	}
}

// startHTTPS serves the API over TLS with Let's Encrypt certificates. A
// plain HTTP listener stays up for ACME challenges and redirects.
func startHTTPS(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	certsDir := getCertsDirectory()
	if err := os.MkdirAll(certsDir, 0700); err != nil {
		logger.Error("failed to create certs directory", "path", certsDir, "error", err)
		os.Exit(1)
	}

	m := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.Domain),
		Cache:      autocert.DirCache(certsDir),
	}

	httpsServer := &http.Server{
		Addr:         ":" + cfg.HTTPSPort,
		Handler:      router,
		TLSConfig:    m.TLSConfig(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server (ACME challenge & redirects) starting", "port", cfg.HTTPPort)
		challengeServer := &http.Server{
			Addr:         ":" + cfg.HTTPPort,
			Handler:      m.HTTPHandler(nil),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		if err := challengeServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start HTTP challenge server", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("HTTPS server starting", "port", cfg.HTTPSPort, "domain", cfg.Domain)
	if err := httpsServer.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to start HTTPS server", "error", err)
		os.Exit(1)
	}
}

func getCertsDirectory() string {
	execPath, err := os.Executable()
	if err != nil {
		return "certs"
	}
	return filepath.Join(filepath.Dir(execPath), "certs")
}
