package handlers

import (
	"log/slog"
	"net/http"

	"ridedemand/config"
	"ridedemand/metrics"
	"ridedemand/middleware"
	"ridedemand/services"
	"ridedemand/web"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, predictor *services.Predictor, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.SetupCORS(cfg.CORS))
	router.SetHTMLTemplate(web.Templates())

	limit := middleware.NewRateLimiter(cfg.RateLimit.RPS).Middleware()
	ph := NewPredictionHandler(predictor)

	router.GET("/", ph.Form)
	router.POST("/", limit, ph.Submit)
	router.GET("/dashboard", Dashboard)
	router.Static(ChartsURLPrefix, cfg.Charts.Dir)

	api := router.Group("/api", limit)
	api.POST("/predict", ph.PredictJSON)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "UP",
			"model_ready": predictor.Ready(),
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
