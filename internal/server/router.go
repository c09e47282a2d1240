package server

import (
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/config"
	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	invH "github.com/fekuna/omnipos-catalog-service/internal/inventory/handler"
	"github.com/fekuna/omnipos-catalog-service/internal/middleware"
	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	reportH "github.com/fekuna/omnipos-catalog-service/internal/report/handler"
	searchH "github.com/fekuna/omnipos-catalog-service/internal/search/handler"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiVersion = "1.0.0"

type Handlers struct {
	Categories *catH.CategoryHandler
	Products   *prodH.ProductHandler
	Inventory  *invH.InventoryHandler
	Search     *searchH.SearchHandler
	Reports    *reportH.ReportHandler
}

// NewRouter assembles the gin engine. Rate limiting applies to /api only.
func NewRouter(cfg *config.Config, log logger.ZapLogger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.Metrics(),
		middleware.SecurityHeaders(),
		middleware.CORS(),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "Welcome to the Product Catalog API",
			"documentation": "/api/docs",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if cfg.RateLimit.RequestsPerSecond > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware())
	}
	api.GET("/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Product Catalog API Documentation",
			"version": apiVersion,
			"endpoints": gin.H{
				"products":   "/api/products",
				"categories": "/api/categories",
				"inventory":  "/api/inventory",
				"search":     "/api/search",
				"reports":    "/api/reports",
			},
		})
	})

	h.Categories.RegisterRoutes(api)
	h.Products.RegisterRoutes(api)
	h.Inventory.RegisterRoutes(api)
	h.Search.RegisterRoutes(api)
	h.Reports.RegisterRoutes(api)

	r.NoRoute(middleware.NotFound())
	return r
}
