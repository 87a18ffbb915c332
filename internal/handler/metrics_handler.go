package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/eventra-live/eventra-admin-api/internal/service"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// MetricsHandler exposes health and Prometheus endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	db      *sqlx.DB
	redis   *redis.Client
}

// NewMetricsHandler creates a new handler.
func NewMetricsHandler(metrics *service.MetricsService, db *sqlx.DB, redisClient *redis.Client) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, db: db, redis: redisClient}
}

// Prometheus serves the Prometheus scrape endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Ready reports whether the process accepts traffic. It only checks the
// database, the one dependency requests cannot run without.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			response.JSON(c, http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ready"})
}

// Health godoc
// @Summary Health check
// @Description Reports dependency status and aggregate request metrics
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	dbStatus := "ok"
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
	} else {
		dbStatus = "unconfigured"
	}

	redisStatus := "ok"
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}
	} else {
		redisStatus = "disabled"
	}

	status := http.StatusOK
	overall := "healthy"
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	response.JSON(c, status, gin.H{
		"status":    overall,
		"database":  dbStatus,
		"redis":     redisStatus,
		"metrics":   h.metrics.Snapshot(),
		"timestamp": time.Now().UTC(),
	})
}
