package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"session-auth-service/backend/internal/apperr"
	"session-auth-service/backend/internal/identity/service"
	"session-auth-service/backend/internal/security"
)

const (
	requestIDKey = "requestID"
	claimsKey    = "sessionClaims"

	// RequestIDHeader carries the request ID back to the client.
	RequestIDHeader = "X-Request-Id"
)

// RequestIDMiddleware assigns each request a UUID, stored in the context and
// echoed in the response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the request's ID, or empty if the middleware did not run.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AuthMiddleware authenticates the bearer token against the subject's current
// session state and stores the verified claims in the context.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			writeError(c, apperr.New(apperr.KindUnauthorized, "missing token"))
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// MustClaims returns the claims stored by AuthMiddleware. Only call from
// handlers registered behind it.
func MustClaims(c *gin.Context) *security.SessionClaims {
	return c.MustGet(claimsKey).(*security.SessionClaims)
}

// bearerToken extracts the token from the Authorization header, falling back
// to the token query parameter.
func bearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return c.Query("token")
}
