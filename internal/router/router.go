package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amazons-Team/fatima-api/internal/handler"
	appointmentHandler "github.com/Amazons-Team/fatima-api/internal/handler/appointment"
	authHandler "github.com/Amazons-Team/fatima-api/internal/handler/auth"
	notificationHandler "github.com/Amazons-Team/fatima-api/internal/handler/notification"
	"github.com/Amazons-Team/fatima-api/internal/middleware"
	"github.com/Amazons-Team/fatima-api/pkg/metrics"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(
	cfg Config,
	m *metrics.Metrics,
	session *middleware.SessionMiddleware,
	authH *authHandler.Handler,
	appointmentH *appointmentHandler.Handler,
	notificationH *notificationHandler.Handler,
	h *handler.Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		metricsMiddleware(m),
		middleware.CORS(cfg.CORS),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	engine.GET("/health", h.HealthCheck)
	engine.GET("/metrics", h.MetricsHandler)

	api := engine.Group("/api/v1")
	authH.RegisterRoutes(api, session)
	appointmentH.RegisterRoutes(api, session)
	notificationH.RegisterRoutes(api, session)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
