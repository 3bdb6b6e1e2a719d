package handlers

import (
	"net/http"
	"strings"

	"musa/services/places"
	"musa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlacesHandler struct {
	Geocoder places.Geocoder
}

func NewPlacesHandler(g places.Geocoder) *PlacesHandler {
	return &PlacesHandler{Geocoder: g}
}

// Autocomplete handles GET /api/places/autocomplete?q=.
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, "Missing required query parameter: q", nil)
		return
	}
	if h.Geocoder == nil {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse{Message: "Place search is not configured"})
		return
	}

	results, err := h.Geocoder.Autocomplete(c.Request.Context(), q)
	if err != nil {
		utils.GetLogger().Error("Place autocomplete failed", zap.String("q", q), zap.Error(err))
		c.JSON(http.StatusBadGateway, utils.ErrorResponse{Message: "Please try again later"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": results})
}
