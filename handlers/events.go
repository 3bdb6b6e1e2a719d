package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"musa/middleware"
	"musa/services/events"
	"musa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	Client events.Client
}

func NewEventHandler(client events.Client) *EventHandler {
	return &EventHandler{Client: client}
}

// List handles GET /api/events.
func (h *EventHandler) List(c *gin.Context) {
	logger := utils.GetLogger()

	params := events.SearchParams{
		Query:    c.DefaultQuery("q", c.Query("query")),
		Lat:      optionalFloat(c.Query("lat")),
		Lon:      optionalFloat(c.Query("lon")),
		City:     c.Query("city"),
		Country:  c.Query("country"),
		Category: c.Query("category"),
		Page:     atoiOr(c.Query("page"), 1),
		PageSize: atoiOr(c.Query("page_size"), events.DefaultPageSize),
	}
	if r := optionalFloat(c.Query("radius")); r != nil && *r > 0 {
		params.RadiusKm = *r
	}
	if params.Lat == nil && params.City == "" {
		params.City = middleware.ClientCity(c)
	}

	spots, err := h.Client.FetchEvents(c.Request.Context(), params)
	if err != nil {
		var upstream *events.UpstreamError
		if errors.As(err, &upstream) {
			logger.Error("Event API rejected the search", zap.Int("status", upstream.Status), zap.String("body", upstream.Body))
		} else {
			logger.Error("Event API unreachable", zap.Error(err))
		}
		utils.SourceFailures.WithLabelValues("eventbrite").Inc()
		c.JSON(http.StatusBadGateway, utils.ErrorResponse{Message: "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(spots), "data": spots})
}

func optionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func atoiOr(raw string, def int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}
