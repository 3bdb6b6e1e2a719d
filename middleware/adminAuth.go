package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after JWTAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := GetRequester(c)
		if requester == nil {
			abort(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		if !requester.IsAdmin() {
			abort(c, http.StatusForbidden, "Not authorized as admin")
			return
		}
		c.Next()
	}
}
