// Package server assembles the HTTP router from the feature handlers.
package server

import (
	"github.com/gin-gonic/gin"

	healthhandler "session-auth-service/backend/internal/health/handler"
	identityhandler "session-auth-service/backend/internal/identity/handler"
	identityservice "session-auth-service/backend/internal/identity/service"
)

// Deps holds the dependencies the router needs.
type Deps struct {
	// Auth is the auth service behind register/login/logout/delete/me.
	Auth *identityservice.AuthService
	// HealthPinger is used by /healthz for readiness (e.g. *pgxpool.Pool). May be nil.
	HealthPinger healthhandler.Pinger
	// Telemetry wraps every request with a span and a request counter. May be nil.
	Telemetry gin.HandlerFunc
}

// New returns the configured engine.
//
// Route → handler mapping:
//   - POST /register, /login, /logout, DELETE /user, GET /me → internal/identity/handler
//   - GET /healthz → internal/health/handler
func New(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), identityhandler.RequestIDMiddleware())
	if deps.Telemetry != nil {
		router.Use(deps.Telemetry)
	}

	health := healthhandler.NewHandler(deps.HealthPinger)
	router.GET("/healthz", health.Check)

	auth := identityhandler.NewAuthHandlers(deps.Auth)
	router.POST("/register", auth.Register)
	router.POST("/login", auth.Login)
	router.POST("/logout", auth.Logout)
	router.DELETE("/user", auth.Delete)

	protected := router.Group("/")
	protected.Use(identityhandler.AuthMiddleware(deps.Auth))
	protected.GET("/me", auth.Me)

	return router
}
