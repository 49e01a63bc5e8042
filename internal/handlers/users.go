package handlers

import (
	"errors"
	"net/http"

	"github.com/futureapi/server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handlers) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "API for the future!",
		"endpoint": "/",
		"get":      []string{"/", "/user"},
	})
}

// UserIndex lists the available user operations plus a profile link for
// every registered user. Unbounded by design; there is no pagination.
func (h *Handlers) UserIndex(c *gin.Context) {
	var usernames []string
	if err := h.db.Model(&models.User{}).Pluck("username", &usernames).Error; err != nil {
		write(c, h.storeFailure("user", "list users", err))
		return
	}
	links := make([]string, 0, len(usernames))
	for _, username := range usernames {
		links = append(links, "/user/profile/"+username)
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "User methods that are available.",
		"endpoint": "/user",
		"post":     []string{"register", "login", "verify", "delete", "invites", "invite", "invitee"},
		"users":    links,
	})
}

// Profile is public: no token gate. The response is built from the public
// projection, so the password hash and session token are never serialized.
func (h *Handlers) Profile(c *gin.Context) {
	username := c.Param("username")
	endpoint := "/user/profile/" + username

	var user models.User
	err := h.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"endpoint": endpoint,
			"success":  false,
			"data":     []string{msgProfileNotFound},
		})
		return
	}
	if err != nil {
		h.logger.Error("store call failed", "method", "profile", "op", "find user", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"endpoint": endpoint,
			"success":  false,
			"data":     []string{msgStoreUnavailable},
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"endpoint": endpoint,
		"success":  true,
		"data":     user.Profile(),
	})
}
