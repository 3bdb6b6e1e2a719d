package handlers

import (
	"net/http"

	"musa/middleware"
	"musa/models"
	"musa/services/spot"

	"github.com/gin-gonic/gin"
)

type SpotHandler struct {
	SpotService spot.SpotService
}

func NewSpotHandler(s spot.SpotService) *SpotHandler {
	return &SpotHandler{SpotService: s}
}

// bindSearch reads the discovery query string. When the caller gave neither a
// city nor coordinates, the city resolved from the client IP is used.
func bindSearch(c *gin.Context) (spot.SearchParams, bool) {
	var params spot.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return params, false
	}
	if params.City == "" && params.Lat == "" && params.Lng == "" {
		params.City = middleware.ClientCity(c)
	}
	return params, true
}

// Search handles GET /api/spots.
func (h *SpotHandler) Search(c *gin.Context) {
	params, ok := bindSearch(c)
	if !ok {
		return
	}
	result, err := h.SpotService.Search(c.Request.Context(), params, middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Nearby handles GET /api/spots/nearby.
func (h *SpotHandler) Nearby(c *gin.Context) {
	params, ok := bindSearch(c)
	if !ok {
		return
	}
	result, err := h.SpotService.Nearby(c.Request.Context(), params, middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Discover handles GET /api/spots/discover.
func (h *SpotHandler) Discover(c *gin.Context) {
	params, ok := bindSearch(c)
	if !ok {
		return
	}
	result, err := h.SpotService.Discover(c.Request.Context(), params, middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SpotHandler) Get(c *gin.Context) {
	detail, err := h.SpotService.GetSpot(c.Param("id"), middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": detail})
}

func (h *SpotHandler) Create(c *gin.Context) {
	var req models.SpotCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid spot payload", err)
		return
	}
	created, err := h.SpotService.CreateSpot(req, middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (h *SpotHandler) Update(c *gin.Context) {
	var req models.SpotUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid spot payload", err)
		return
	}
	updated, err := h.SpotService.UpdateSpot(c.Param("id"), req, middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

func (h *SpotHandler) Delete(c *gin.Context) {
	if err := h.SpotService.DeleteSpot(c.Param("id"), middleware.GetRequester(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Spot removed"})
}

func (h *SpotHandler) Approve(c *gin.Context) {
	approved, err := h.SpotService.ApproveSpot(c.Param("id"), middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": approved})
}

// UploadImage handles POST /api/spots/:id/images with a multipart "image" field.
func (h *SpotHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "Missing image file", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "Unreadable image file", err)
		return
	}
	defer file.Close()

	updated, err := h.SpotService.AddImage(c.Request.Context(), c.Param("id"), file, header.Filename, header.Size, middleware.GetRequester(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}
