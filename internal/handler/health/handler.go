package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	db       *sqlx.DB
	registry *prometheus.Registry
}

func NewHandler(db *sqlx.DB, registry *prometheus.Registry) *Handler {
	return &Handler{
		db:       db,
		registry: registry,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
		health.GET("/metrics", h.MetricsHandler())
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "database connection failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
}
