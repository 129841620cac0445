package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/namefreezers/weather-lookup/internal/services"
)

// RegisterRoutes mounts all handlers under /api.
func RegisterRoutes(router *gin.Engine, svc services.ReadingService) {
	api := router.Group("/api")
	{
		api.GET("/weather", WeatherHandler(svc))
		api.GET("/readings", ReadingHistoryHandler(svc))
		api.GET("/readings/latest", LatestReadingHandler(svc))
	}
}
