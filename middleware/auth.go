package middleware

import (
	"errors"
	"net/http"
	"strings"

	userRepo "musa/database/repository/user"
	"musa/models"
	"musa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requesterKey = "requester"

var errUnknownSubject = errors.New("token subject no longer exists")

// JWTAuthMiddleware rejects requests without a valid bearer token whose
// subject still exists. The role comes from the stored user, not the token.
func JWTAuthMiddleware(secret string, users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		requester, err := resolveRequester(secret, users, tokenString)
		if err != nil {
			utils.GetLogger().Debug("Rejected token", zap.Error(err))
			abort(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		c.Set(requesterKey, requester)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware attaches the requester when a valid token is
// present and lets anonymous callers through otherwise.
func OptionalJWTAuthMiddleware(secret string, users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if requester, err := resolveRequester(secret, users, tokenString); err == nil {
				c.Set(requesterKey, requester)
			} else {
				utils.GetLogger().Debug("Ignoring token", zap.Error(err))
			}
		}
		c.Next()
	}
}

func resolveRequester(secret string, users userRepo.UserRepository, tokenString string) (*models.Requester, error) {
	claims, err := utils.ParseClaims(secret, tokenString)
	if err != nil {
		return nil, err
	}
	u, err := users.GetByID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUnknownSubject
	}
	return &models.Requester{ID: u.ID, Role: u.Role}, nil
}

// GetRequester returns the authenticated caller, or nil for anonymous requests.
func GetRequester(c *gin.Context) *models.Requester {
	v, ok := c.Get(requesterKey)
	if !ok {
		return nil
	}
	r, _ := v.(*models.Requester)
	return r
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, utils.ErrorResponse{Message: message})
}
