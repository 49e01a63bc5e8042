package handlers

import (
	"errors"
	"net/http"

	"github.com/futureapi/server/internal/models"
	"github.com/futureapi/server/internal/token"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const passwordHashCost = 10

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (h *Handlers) Register(c *gin.Context) {
	var req credentialsRequest
	_ = c.ShouldBindJSON(&req)
	write(c, h.register(req))
}

func (h *Handlers) register(req credentialsRequest) result {
	var errs []string
	if req.Username == "" {
		errs = append(errs, msgMissingUsername)
	}
	if req.Password == "" {
		errs = append(errs, msgMissingPassword)
	}
	if len(errs) > 0 {
		return failure("register", errs)
	}

	var existing models.User
	err := h.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return failure("register", []string{msgDuplicateUser})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return h.storeFailure("register", "find user", err)
	}

	user, r := h.createUser("register", req.Username, req.Password, "")
	if user == nil {
		return r
	}
	return result{
		status: http.StatusCreated,
		body:   gin.H{"method": "register", "status": "success", "data": user},
	}
}

// createUser hashes the password, mints a session token and inserts the
// record. A non-nil user means success; otherwise the returned result is the
// failure to send.
func (h *Handlers) createUser(method, username, password, sponsor string) (*models.User, result) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, h.internalFailure(method, msgPasswordUnusable, err)
	}
	sessionToken, err := token.Sign(h.secret(), h.config.SessionTokenTTL, h.nowFn())
	if err != nil {
		return nil, h.internalFailure(method, msgTokenInvalid, err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		SessionToken: sessionToken,
		Sponsor:      sponsor,
		CreatedAt:    h.nowFn(),
	}
	if err := h.db.Create(user).Error; err != nil {
		return nil, h.storeFailure(method, "insert user", err)
	}
	return user, result{}
}

func (h *Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	_ = c.ShouldBindJSON(&req)
	write(c, h.login(req))
}

func (h *Handlers) login(req credentialsRequest) result {
	var errs []string
	if req.Username == "" {
		errs = append(errs, msgMissingUsername)
	}
	if req.Password == "" {
		errs = append(errs, msgMissingPassword)
	}

	// Field errors do not stop the lookup; the failure response carries
	// everything found in one pass.
	var user models.User
	err := h.db.Where("username = ?", req.Username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		errs = append(errs, msgUserNotFound)
	case err != nil:
		return h.storeFailure("login", "find user", err)
	}
	if len(errs) > 0 {
		return failure("login", errs)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return failure("login", []string{msgBadPassword})
	}

	if _, err := token.Verify(user.SessionToken, h.secret()); err == nil {
		return result{
			status: http.StatusCreated,
			body:   gin.H{"method": "login", "status": "success", "data": user, "refreshed": false},
		}
	}

	// The stored token is stale; mint a replacement. There is no per-username
	// locking, so two concurrent logins may both refresh and the last write
	// wins. Stale tokens are superseded, not revoked.
	fresh, err := token.Sign(h.secret(), h.config.SessionTokenTTL, h.nowFn())
	if err != nil {
		return h.internalFailure("login", msgTokenInvalid, err)
	}
	user.SessionToken = fresh

	res := h.db.Model(&models.User{}).Where("id = ?", user.ID).Update("session_token", fresh)
	if res.Error != nil {
		return h.storeFailure("login", "update token", res.Error)
	}
	if res.RowsAffected == 0 {
		// The row vanished between read and write; recreate it.
		if err := h.db.Create(&user).Error; err != nil {
			return h.storeFailure("login", "recreate user", err)
		}
	}
	return result{
		status: http.StatusCreated,
		body:   gin.H{"method": "login", "status": "success", "data": user, "refreshed": true},
	}
}

func (h *Handlers) Verify(c *gin.Context) {
	var req tokenRequest
	_ = c.ShouldBindJSON(&req)
	write(c, h.verify(req))
}

func (h *Handlers) verify(req tokenRequest) result {
	user, claims, r := h.gate("verify", req)
	if user == nil {
		return r
	}
	return result{
		status: http.StatusOK,
		body:   gin.H{"method": "verify", "status": "success", "data": user, "verified": claims},
	}
}

func (h *Handlers) Delete(c *gin.Context) {
	var req tokenRequest
	_ = c.ShouldBindJSON(&req)
	write(c, h.delete(req))
}

func (h *Handlers) delete(req tokenRequest) result {
	user, _, r := h.gate("delete", req)
	if user == nil {
		return r
	}

	// Two sequential deletes, no transaction. If the invite cascade fails the
	// user row is already gone and the invites are orphaned.
	if err := h.db.Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
		return h.storeFailure("delete", "delete user", err)
	}
	if err := h.db.Where("sponsor = ?", user.Username).Delete(&models.Invite{}).Error; err != nil {
		return h.storeFailure("delete", "delete invites", err)
	}
	return result{
		status: http.StatusOK,
		body:   gin.H{"method": "delete", "status": "success"},
	}
}

// gate runs the shared existence-plus-token check used by every
// token-authenticated operation. Any token signed with the service secret and
// carrying the marker claim is accepted for the named user; it does not have
// to be the user's currently stored token.
func (h *Handlers) gate(method string, req tokenRequest) (*models.User, *token.Claims, result) {
	var errs []string
	if req.Username == "" {
		errs = append(errs, msgMissingUsername)
	}
	if req.Token == "" {
		errs = append(errs, msgMissingToken)
	}
	if len(errs) > 0 {
		return nil, nil, failure(method, errs)
	}

	var user models.User
	err := h.db.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, failure(method, []string{msgUserNotFound})
	}
	if err != nil {
		return nil, nil, h.storeFailure(method, "find user", err)
	}

	claims, err := token.Verify(req.Token, h.secret())
	if err != nil {
		return nil, nil, failure(method, []string{tokenMessage(err)})
	}
	return &user, claims, result{}
}
