package user

import (
	"errors"
	"net/http"
)

// UserError is an error with a client facing message and HTTP status.
type UserError struct {
	Status  int
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

var (
	ErrEmailTaken               = &UserError{Status: http.StatusBadRequest, Message: "User already exists"}
	ErrInvalidCredentials       = &UserError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrUserNotFound             = &UserError{Status: http.StatusNotFound, Message: "User not found"}
	ErrInvalidToken             = &UserError{Status: http.StatusUnauthorized, Message: "Not authorized, invalid token"}
	ErrInvalidVerificationToken = &UserError{Status: http.StatusBadRequest, Message: "Invalid or expired verification token"}
	ErrInvalidResetToken        = &UserError{Status: http.StatusBadRequest, Message: "Invalid or expired reset token"}
)

// StatusOf maps an error returned by the service to an HTTP status.
func StatusOf(err error) (int, string) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Status, ue.Message
	}
	return http.StatusInternalServerError, "Server error"
}
