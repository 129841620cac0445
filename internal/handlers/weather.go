package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namefreezers/weather-lookup/internal/services"
	"github.com/namefreezers/weather-lookup/internal/weather"
)

// weatherRequest defines the expected query parameters for GET /api/weather
type weatherRequest struct {
	City   string `form:"city" binding:"required"`
	APIKey string `form:"apikey"`
}

// weatherResponse is the body of a successful lookup
type weatherResponse struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
}

// WeatherHandler returns a Gin handler for GET /api/weather
func WeatherHandler(svc services.ReadingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1) Bind and validate the 'city' query parameter
		var req weatherRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			// 400 Invalid request
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// 2) One lookup against the remote API
		rd, err := svc.Lookup(c.Request.Context(), req.City, req.APIKey)
		if err != nil {
			c.JSON(lookupStatus(err), gin.H{"error": err.Error()})
			return
		}

		// 3) 200 Successful operation
		c.JSON(http.StatusOK, weatherResponse{City: rd.City, Temperature: rd.Temperature})
	}
}

// lookupStatus maps weather error variants onto HTTP status codes.
func lookupStatus(err error) int {
	var (
		statusErr  *weather.StatusError
		networkErr *weather.NetworkError
	)
	switch {
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &networkErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, weather.ErrLookupFailure):
		// parse and missing-field failures: upstream sent something unusable
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
