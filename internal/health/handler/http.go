// Package handler implements the health endpoint for readiness checks.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports backing-store reachability (e.g. *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves readiness for load balancers and CI.
type Handler struct {
	db Pinger
}

// NewHandler returns a health handler. db may be nil to skip the store check.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Check handles GET /healthz. Reports 503 when the store is unreachable.
func (h *Handler) Check(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
