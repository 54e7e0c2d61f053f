package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	authHandler "github.com/vitalrec/health-api/internal/handler/auth"
	"github.com/vitalrec/health-api/internal/middleware"
	"github.com/vitalrec/health-api/internal/model"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authHandler.Handler
	healthH      Handler
	reportH      Handler
	patientH     Handler
	doctorH      Handler
	appointmentH Handler
	metrics      *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	Timeout        time.Duration
	CORS           middleware.CORSConfig
	MetricsPrefix  string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	healthH Handler,
	reportH Handler,
	patientH Handler,
	doctorH Handler,
	appointmentH Handler,
	registry *prometheus.Registry,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		healthH:      healthH,
		reportH:      reportH,
		patientH:     patientH,
		doctorH:      doctorH,
		appointmentH: appointmentH,
		metrics:      initRouterMetrics(registry, config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)

	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	// Public surface: health, auth, and the emergency report download the
	// QR codes point at.
	r.healthH.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)
	r.reportH.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.authH.RegisterProtectedRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)

	patients := protected.Group("", r.auth.RequireRole(model.RolePatient))
	r.patientH.RegisterRoutes(patients)

	doctors := protected.Group("", r.auth.RequireRole(model.RoleDoctor))
	r.doctorH.RegisterRoutes(doctors)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(registry *prometheus.Registry, prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}

	registry.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
