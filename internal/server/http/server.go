package http

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/cretelab/strengthserve/internal/handler/strength"
)

var (
	router *gin.Engine
	once   sync.Once
)

func Init(handler *strength.Handler) {
	once.Do(func() {
		env := viper.GetString("APP_ENV")
		if env == "prod" || env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}
		router = gin.New()

		router.Use(gin.Recovery())
		router.Use(TelemetryMiddleware())

		router.GET("/health/self", func(c *gin.Context) {
			if !handler.Predictor().IsReady() {
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "false"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "true"})
		})

		RegisterRoutes(router, handler)
	})
}

func Instance() *gin.Engine {
	if router == nil {
		log.Fatal().Msg("Router not initialized")
	}
	return router
}
