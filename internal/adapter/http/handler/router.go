package handler

import (
	"currency-management/config"
	"currency-management/internal/adapter/http/middleware"
	"currency-management/internal/adapter/metrics"
	"currency-management/internal/core/ports"
	"currency-management/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CurrencySvc     ports.CurrencyService
	RateLimitStore  ports.RateLimitStore // nil = rate limiting disabled
	RateLimit       config.RateLimitConfig
	CORS            config.CORSConfig
	MetricsRegistry *prometheus.Registry // nil = metrics disabled
	MetricsPath     string
	HealthCheckers  []ports.HealthChecker
	OpenAPISpec     []byte
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	var httpMetrics *metrics.HTTPMetrics
	if deps.MetricsRegistry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.MetricsRegistry)
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}
	if len(deps.CORS.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(deps.CORS))
	}
	r.Use(middleware.MaxBodySize(middleware.DefaultMaxBodyBytes))

	r.GET("/health", HealthCheck(logger.ServiceName, deps.HealthCheckers...))

	if deps.MetricsRegistry != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{Registry: deps.MetricsRegistry})))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec(deps.OpenAPISpec))
	}

	rules := middleware.RateLimitRules(deps.RateLimit)

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		var rec middleware.RejectionRecorder
		if httpMetrics != nil {
			rec = httpMetrics
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rules[group], rec, deps.Logger)
	}
	read := rl(middleware.GroupCurrenciesRead)
	write := rl(middleware.GroupCurrenciesWrite)

	currencyHandler := NewCurrencyHandler(deps.CurrencySvc)
	currencies := r.Group("/api/currencies")
	{
		currencies.GET("", read, currencyHandler.List)
		currencies.GET("/paged", read, currencyHandler.ListPaged)
		currencies.GET("/id/:id", read, currencyHandler.GetByID)
		currencies.GET("/:code", read, currencyHandler.GetByCode)
		currencies.POST("", write, currencyHandler.Create)
		currencies.PUT("/:id", write, currencyHandler.Update)
		currencies.DELETE("/:id", write, currencyHandler.Delete)
	}

	return r
}
