package handlers

import (
	"errors"
	"net/http"

	"github.com/futureapi/server/internal/models"
	"github.com/futureapi/server/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type inviteeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Invite   string `json:"invite"`
}

func (h *Handlers) CreateInvite(c *gin.Context) {
	var req tokenRequest
	_ = c.ShouldBindJSON(&req)
	write(c, h.createInvite(req))
}

func (h *Handlers) createInvite(req tokenRequest) result {
	user, _, r := h.gate("invite", req)
	if user == nil {
		return r
	}

	code, err := token.Sign(h.secret(), h.config.InviteTokenTTL, h.nowFn())
	if err != nil {
		return h.internalFailure("invite", msgTokenInvalid, err)
	}
	invite := &models.Invite{
		Code:      code,
		Sponsor:   user.Username,
		CreatedAt: h.nowFn(),
	}
	if err := h.db.Create(invite).Error; err != nil {
		return h.storeFailure("invite", "insert invite", err)
	}
	return result{
		status: http.StatusOK,
		body:   gin.H{"method": "invite", "status": "success", "invites": invite},
	}
}

func (h *Handlers) ListInvites(c *gin.Context) {
	var req tokenRequest
	_ = c.ShouldBindJSON(&req)
	write(c, h.listInvites(req))
}

func (h *Handlers) listInvites(req tokenRequest) result {
	user, _, r := h.gate("invites", req)
	if user == nil {
		return r
	}

	// Store-defined order; clients must not assume insertion order.
	invites := make([]models.Invite, 0)
	if err := h.db.Where("sponsor = ?", user.Username).Find(&invites).Error; err != nil {
		return h.storeFailure("invites", "list invites", err)
	}
	return result{
		status: http.StatusOK,
		body:   gin.H{"method": "invites", "status": "success", "invites": invites},
	}
}

func (h *Handlers) RegisterInvitee(c *gin.Context) {
	var req inviteeRequest
	_ = c.ShouldBindJSON(&req)
	write(c, h.registerInvitee(req))
}

func (h *Handlers) registerInvitee(req inviteeRequest) result {
	var errs []string
	if req.Username == "" {
		errs = append(errs, msgMissingUsername)
	}
	if req.Password == "" {
		errs = append(errs, msgMissingPassword)
	}
	if req.Invite == "" {
		errs = append(errs, msgMissingInvite)
	}
	if len(errs) > 0 {
		return failure("invitee", errs)
	}

	var existing models.User
	err := h.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return failure("invitee", []string{msgDuplicateUser})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return h.storeFailure("invitee", "find user", err)
	}

	var invite models.Invite
	err = h.db.Where("code = ?", req.Invite).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failure("invitee", []string{msgInviteNotFound})
	}
	if err != nil {
		return h.storeFailure("invitee", "find invite", err)
	}

	// The invite stays in the store after redemption; the same code can be
	// used again by another registrant until its sponsor is deleted.
	user, r := h.createUser("invitee", req.Username, req.Password, invite.Sponsor)
	if user == nil {
		return r
	}
	return result{
		status: http.StatusCreated,
		body:   gin.H{"method": "invitee", "status": "success", "data": user},
	}
}
