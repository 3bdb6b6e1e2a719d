package user

import (
	"context"
	"time"

	userRepo "musa/database/repository/user"
	"musa/models"
	"musa/services/notification"

	"go.uber.org/zap"
)

type UserService interface {
	// Registration and authentication
	Register(ctx context.Context, req models.UserRegistrationRequest) (*AuthResponse, error)
	Login(req models.UserLoginRequest) (*AuthResponse, error)
	VerifyToken(token string) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error

	// Password reset
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error

	// Profile
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, req models.UserUpdateRequest) (*AuthResponse, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo        userRepo.UserRepository
	Tokens      TokenStore
	ResetTokens TokenStore
	Mailer      notification.Mailer
	JWTSecret   string
	TokenTTL    time.Duration
	Logger      *zap.Logger
}

// AuthResponse contains the user's public profile and a session token.
type AuthResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Bio        string `json:"bio,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	IsVerified bool   `json:"isVerified"`
	Token      string `json:"token"`
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
