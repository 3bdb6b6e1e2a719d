package handlers

import (
	"errors"
	"net/http"

	"musa/services/spot"
	"musa/services/user"
	"musa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to their status and the common error body.
func respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Server error"

	var se *spot.ServiceError
	var ue *user.UserError
	switch {
	case errors.As(err, &se):
		status, message = spot.StatusOf(err)
	case errors.As(err, &ue):
		status, message = user.StatusOf(err)
	}

	logger := utils.GetLogger()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, utils.ErrorResponse{Message: message})
}

func badRequest(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	utils.JSONError(c, http.StatusBadRequest, message, details)
}
