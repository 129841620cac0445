package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/namefreezers/weather-lookup/internal/repository"
	"github.com/namefreezers/weather-lookup/internal/services"
)

type latestRequest struct {
	City string `form:"city" binding:"required"`
}

type historyRequest struct {
	City  string `form:"city"  binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type readingResponse struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	FetchedAt   time.Time `json:"fetched_at"`
}

func toResponse(rd repository.Reading) readingResponse {
	return readingResponse{
		ID:          rd.ID.String(),
		City:        rd.City,
		Temperature: rd.Temperature,
		FetchedAt:   rd.FetchedAt,
	}
}

// LatestReadingHandler handles GET /api/readings/latest
func LatestReadingHandler(svc services.ReadingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req latestRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rd, err := svc.Latest(c.Request.Context(), req.City)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, toResponse(rd))
		case errors.Is(err, services.ErrReadingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reading"})
		}
	}
}

// ReadingHistoryHandler handles GET /api/readings
func ReadingHistoryHandler(svc services.ReadingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req historyRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rds, err := svc.History(c.Request.Context(), req.City, req.Limit)
		switch {
		case err == nil:
			out := make([]readingResponse, 0, len(rds))
			for _, rd := range rds {
				out = append(out, toResponse(rd))
			}
			c.JSON(http.StatusOK, out)
		case errors.Is(err, services.ErrInvalidLimit):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load readings"})
		}
	}
}
