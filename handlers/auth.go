package handlers

import (
	"net/http"
	"strings"

	"musa/middleware"
	"musa/models"
	"musa/services/user"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(s user.UserService) *AuthHandler {
	return &AuthHandler{UserService: s}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name, email and a password of at least 6 characters are required", err)
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required", err)
		return
	}
	resp, err := h.UserService.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// Verify handles GET /api/auth/verify and returns the token's owner.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if token == "" {
		respondError(c, user.ErrInvalidToken)
		return
	}
	u, err := h.UserService.VerifyToken(token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.UserService.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified"})
}

// ForgotPassword handles POST /api/auth/forgot-password. The answer does not
// reveal whether the address has an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "A valid email is required", err)
		return
	}
	if err := h.UserService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email is registered a reset link has been sent"})
}

// ResetPassword handles POST /api/auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.NewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "A password of at least 6 characters is required", err)
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	requester := middleware.GetRequester(c)
	if requester == nil {
		respondError(c, user.ErrInvalidToken)
		return
	}
	u, err := h.UserService.GetProfile(requester.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	requester := middleware.GetRequester(c)
	if requester == nil {
		respondError(c, user.ErrInvalidToken)
		return
	}
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid profile payload", err)
		return
	}
	resp, err := h.UserService.UpdateProfile(requester.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}
