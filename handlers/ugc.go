package handlers

import (
	"net/http"

	"musa/middleware"
	"musa/models"
	"musa/services/spot"

	"github.com/gin-gonic/gin"
)

type UGCHandler struct {
	SpotService spot.SpotService
}

func NewUGCHandler(s spot.SpotService) *UGCHandler {
	return &UGCHandler{SpotService: s}
}

func (h *UGCHandler) Create(c *gin.Context) {
	var req models.UGCCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid content payload", err)
		return
	}
	content, err := h.SpotService.CreateUGC(req, middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": content})
}

// ListMine handles GET /api/ugc/user.
func (h *UGCHandler) ListMine(c *gin.Context) {
	contents, err := h.SpotService.ListUserUGC(middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if contents == nil {
		contents = []models.UGContent{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(contents), "data": contents})
}
