package userRepo

import "musa/models"

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID; nil when missing.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address; nil when missing.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// MarkVerified flags the user's email as confirmed.
	MarkVerified(id string) error
}
