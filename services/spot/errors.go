package spot

import (
	"errors"
	"net/http"
)

// ServiceError is an error with a client facing message and HTTP status.
type ServiceError struct {
	Code    string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrSpotNotFound        = &ServiceError{Code: "spotNotFound", Status: http.StatusNotFound, Message: "Spot not found"}
	ErrParentNotFound      = &ServiceError{Code: "parentNotFound", Status: http.StatusBadRequest, Message: "Parent spot not found"}
	ErrForbidden           = &ServiceError{Code: "forbidden", Status: http.StatusForbidden, Message: "Not authorized to access this spot"}
	ErrUnauthorized        = &ServiceError{Code: "unauthorized", Status: http.StatusUnauthorized, Message: "Authentication required"}
	ErrMoodOrGenreRequired = &ServiceError{Code: "validation", Status: http.StatusBadRequest, Message: "Specify at least one mood or music genre"}
	ErrLocationRequired    = &ServiceError{Code: "validation", Status: http.StatusBadRequest, Message: "Latitude and longitude are required"}
	ErrInvalidSource       = &ServiceError{Code: "validation", Status: http.StatusBadRequest, Message: "source must be one of all, openai, database"}
	ErrInvalidCoordinates  = &ServiceError{Code: "validation", Status: http.StatusBadRequest, Message: "coordinates must be [longitude, latitude]"}
	ErrSelfParent          = &ServiceError{Code: "validation", Status: http.StatusBadRequest, Message: "A spot cannot be its own parent"}
	ErrUploaderMissing     = &ServiceError{Code: "unavailable", Status: http.StatusServiceUnavailable, Message: "Image uploads are not configured"}
)

// StatusOf maps an error returned by the service to an HTTP status.
func StatusOf(err error) (int, string) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Status, se.Message
	}
	return http.StatusInternalServerError, "Server error"
}
