// Package handler exposes the auth service over HTTP JSON endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"session-auth-service/backend/internal/apperr"
	"session-auth-service/backend/internal/identity/service"
)

// AuthHandlers contains the HTTP handlers for the auth endpoints.
type AuthHandlers struct {
	auth *service.AuthService
}

// NewAuthHandlers returns handlers backed by the given auth service.
func NewAuthHandlers(auth *service.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /register.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"requestId": RequestID(c),
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	})
}

// Login handles POST /login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return
	}
	token, _, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requestId": RequestID(c),
		"token":     token,
	})
}

// Logout handles POST /logout. The bearer token identifies the subject; a
// token the validity engine would reject can still log out as long as its
// signature verifies.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		writeError(c, apperr.New(apperr.KindUnauthorized, "missing token"))
		return
	}
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requestId": RequestID(c),
		"message":   "Successfully logged out",
	})
}

// Delete handles DELETE /user: soft-deletes the account and logs it out.
func (h *AuthHandlers) Delete(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		writeError(c, apperr.New(apperr.KindUnauthorized, "missing token"))
		return
	}
	if err := h.auth.DeleteAccount(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /me behind the auth middleware; it echoes the verified claims.
func (h *AuthHandlers) Me(c *gin.Context) {
	claims := MustClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"requestId": RequestID(c),
		"subject":   claims.Subject,
		"name":      claims.Name,
		"issuedAt":  claims.IssuedAt.Unix(),
		"expiresAt": claims.ExpiresAt.Unix(),
	})
}

// writeError maps an error's kind to an HTTP status. Unauthorized responses
// share one body regardless of the underlying reason.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
		msg = "Unauthorized"
	case apperr.KindAlreadyExists:
		status = http.StatusBadRequest
		msg = err.Error()
	case apperr.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"requestId": RequestID(c),
		"message":   msg,
	})
}
