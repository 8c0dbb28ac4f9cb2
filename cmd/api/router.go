package main

import (
	"io"
	"net/http"
	"time"

	"getaround-api/analytics"
	"getaround-api/config"
	"getaround-api/handlers"
	"getaround-api/middleware"
	"getaround-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type app struct {
	cfg     *config.Config
	model   handlers.Predictor
	dataset *analytics.Dataset
	cache   *services.CacheService
}

func setupRouter(a app, logOut io.Writer) *gin.Engine {
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logOut), gin.RecoveryWithWriter(logOut))
	router.Use(middleware.SetupCORS(a.cfg.CORS))
	router.Use(middleware.Metrics())

	ttl := time.Duration(a.cfg.Cache.TTLSeconds) * time.Second
	predictHandler := handlers.NewPredictHandler(a.model, a.cache, ttl)
	analyticsHandler := handlers.NewAnalyticsHandler(a.dataset, a.cache, ttl)

	router.GET("/", handlers.Root)
	router.POST("/predict", predictHandler.Predict)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "Getaround API is running",
			"rentals": a.dataset.Size(),
			"cache":   a.cache.Available(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	an := router.Group("/analytics")
	{
		an.GET("/friction", analyticsHandler.GetFriction)
		an.GET("/inventory", analyticsHandler.GetInventory)
		an.GET("/revenue", analyticsHandler.GetRevenue)
		an.GET("/dashboard", analyticsHandler.GetDashboard)
		an.GET("/export", analyticsHandler.ExportDashboard)
	}

	router.GET("/ws/dashboard", handlers.DashboardWebSocket(analyticsHandler))

	return router
}
