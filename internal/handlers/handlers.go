package handlers

import (
	"log/slog"
	"time"

	"github.com/futureapi/server/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handlers struct {
	db     *gorm.DB
	config *config.Config
	logger *slog.Logger
	nowFn  func() time.Time
}

func New(db *gorm.DB, config *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		config: config,
		logger: logger,
		nowFn:  time.Now,
	}
}

func (h *Handlers) secret() []byte {
	return []byte(h.config.JWTSecret)
}

// RegisterRoutes wires the full API surface onto the router.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Index)
	router.GET("/user", h.UserIndex)
	router.POST("/user/register", h.Register)
	router.POST("/user/login", h.Login)
	router.POST("/user/verify", h.Verify)
	router.POST("/user/delete", h.Delete)
	router.POST("/user/invitee", h.RegisterInvitee)
	router.POST("/user/invites", h.ListInvites)
	router.POST("/user/invite", h.CreateInvite)
	router.GET("/user/profile/:username", h.Profile)
}
