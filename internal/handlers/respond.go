package handlers

import (
	"errors"
	"net/http"

	"github.com/futureapi/server/internal/token"

	"github.com/gin-gonic/gin"
)

// Client-facing message strings. These are part of the API surface; existing
// clients match on them.
const (
	msgMissingUsername  = "Username was missing from query."
	msgMissingPassword  = "Password was missing from query."
	msgMissingToken     = "Token was missing from query."
	msgMissingInvite    = "Invite was missing from query."
	msgDuplicateUser    = "Username is already registered."
	msgUserNotFound     = "User does not exist."
	msgBadPassword      = "Password was incorrect."
	msgTokenExpired     = "Token has expired."
	msgTokenInvalid     = "Invalid token provided."
	msgInviteNotFound   = "Invite was not in database."
	msgProfileNotFound  = "Username does not exist."
	msgPasswordUnusable = "Password could not be processed."
	msgStoreUnavailable = "Datastore is unavailable."
)

// result is the single outcome of an operation: a status code plus the body
// to serialize. Every operation builds exactly one result and the handler
// writes it exactly once, so no request can receive two responses no matter
// how many error conditions are detected.
type result struct {
	status int
	body   gin.H
}

func write(c *gin.Context, r result) {
	c.JSON(r.status, r.body)
}

func failure(method string, msgs []string) result {
	return result{
		status: http.StatusBadRequest,
		body:   gin.H{"method": method, "status": "failure", "data": msgs},
	}
}

// storeFailure maps a failed store call to an explicit 503 so a broken
// connection surfaces to the client instead of hanging the request.
func (h *Handlers) storeFailure(method, op string, err error) result {
	h.logger.Error("store call failed", "method", method, "op", op, "error", err)
	return result{
		status: http.StatusServiceUnavailable,
		body:   gin.H{"method": method, "status": "failure", "data": []string{msgStoreUnavailable}},
	}
}

func (h *Handlers) internalFailure(method, msg string, err error) result {
	h.logger.Error("request failed", "method", method, "error", err)
	return result{
		status: http.StatusInternalServerError,
		body:   gin.H{"method": method, "status": "failure", "data": []string{msg}},
	}
}

func tokenMessage(err error) string {
	if errors.Is(err, token.ErrExpired) {
		return msgTokenExpired
	}
	return msgTokenInvalid
}
