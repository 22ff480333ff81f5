// Package api assembles the gin engine serving the translation API.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/codyseavey/zhja-translate/internal/api/handlers"
	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/middleware"
	"github.com/codyseavey/zhja-translate/internal/services"
)

const corsMaxAge = 12 * time.Hour

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Content-Type", middleware.RequestIDHeader}
)

// Dependencies are the services the routes are served from.
type Dependencies struct {
	Translator *services.Translator
	Cache      *services.TranslationCacheService
	Stats      *services.StatsService
	Version    string
	StoreName  string
	Logger     *zap.Logger
}

// NewRouter builds the engine with CORS, request ids, access logs and metrics.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// OPTIONS is always 204, so Preflight runs before cors, which only
	// short-circuits cross-origin preflights
	r.Use(middleware.Preflight(corsMethods, corsHeaders, corsMaxAge))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    corsMethods,
		AllowHeaders:    corsHeaders,
		ExposeHeaders:   []string{middleware.RequestIDHeader},
		MaxAge:          corsMaxAge,
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))
	r.Use(metrics.HTTPMetrics())

	info := handlers.NewInfoHandler(deps.Version, deps.Translator.GatewayName(), deps.StoreName)
	translate := handlers.NewTranslateHandler(deps.Translator)
	stats := handlers.NewStatsHandler(deps.Stats)
	history := handlers.NewHistoryHandler(deps.Cache)

	r.GET("/", info.GetInfo)
	r.GET("/health", info.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("", info.GetInfo)
		apiGroup.POST("/translate", translate.Translate)
		apiGroup.GET("/stats", stats.GetOverview)
		apiGroup.GET("/stats/daily", stats.GetDaily)
		apiGroup.GET("/history", history.GetHistory)
		apiGroup.GET("/popular", history.GetPopular)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}
