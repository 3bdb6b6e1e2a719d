package handlers

import (
	userRepo "musa/database/repository/user"
	"musa/middleware"
)

// HandlerBundle groups all endpoint handlers and the settings routes need.
type HandlerBundle struct {
	Spot   *SpotHandler
	Events *EventHandler
	Auth   *AuthHandler
	UGC    *UGCHandler
	Places *PlacesHandler
	Health *HealthHandler

	// Users resolves token subjects to their stored account.
	Users             userRepo.UserRepository
	JWTSecret         string
	MaxRequestsPerMin int
	// Geolocator is nil when client geolocation is disabled.
	Geolocator *middleware.Geolocator
}
