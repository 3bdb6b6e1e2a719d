package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a platform user.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Bio          string    `bson:"bio" json:"bio"`
	Avatar       string    `bson:"avatar" json:"avatar"`
	IsVerified   bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Requester is the identity attached to a request by the auth middleware.
// A nil *Requester means an anonymous caller.
type Requester struct {
	ID   string
	Role string
}

// IsAdmin reports whether the requester has administrative rights.
func (r *Requester) IsAdmin() bool {
	return r != nil && r.Role == RoleAdmin
}

// Owns reports whether the requester created the resource.
func (r *Requester) Owns(creatorID string) bool {
	return r != nil && creatorID != "" && r.ID == creatorID
}

type UserRegistrationRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type NewPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type UserUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Password string `json:"password" binding:"omitempty,min=6"`
}
