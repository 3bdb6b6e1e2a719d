package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"musa/models"
	"musa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const emailTimeout = 10 * time.Second

// Register creates an account, issues a session token and sends the email
// confirmation link. A failing email does not fail the registration.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistrationRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, u)

	return s.authResponse(u)
}

func (s *DefaultUserService) sendConfirmation(ctx context.Context, u *models.User) {
	if s.Tokens == nil || s.Mailer == nil {
		s.logger().Warn("Email confirmation disabled, skipping", zap.String("userId", u.ID))
		return
	}
	token := uuid.NewString()
	if err := s.Tokens.Save(ctx, token, u.ID, utils.EmailVerificationTTL); err != nil {
		s.logger().Error("Failed to store verification token", zap.String("userId", u.ID), zap.Error(err))
		return
	}

	mailCtx, cancel := context.WithTimeout(ctx, emailTimeout)
	defer cancel()
	if err := s.Mailer.SendConfirmationEmail(mailCtx, u.Email, u.Name, token); err != nil {
		s.logger().Error("Failed to send confirmation email", zap.String("userId", u.ID), zap.Error(err))
	}
}

// Login checks credentials. Unknown email and wrong password share one error.
func (s *DefaultUserService) Login(req models.UserLoginRequest) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		s.logger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(u)
}

// VerifyToken resolves a session token to its user.
func (s *DefaultUserService) VerifyToken(token string) (*models.User, error) {
	claims, err := utils.ParseClaims(s.JWTSecret, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Repo.GetByID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// VerifyEmail consumes a confirmation token and marks the user verified.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, token string) error {
	if s.Tokens == nil || token == "" {
		return ErrInvalidVerificationToken
	}
	userID, err := s.Tokens.Lookup(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to look up verification token: %w", err)
	}
	if userID == "" {
		return ErrInvalidVerificationToken
	}
	if err := s.Repo.MarkVerified(userID); err != nil {
		return err
	}
	if err := s.Tokens.Delete(ctx, token); err != nil {
		s.logger().Warn("Failed to delete used verification token", zap.Error(err))
	}
	return nil
}

func (s *DefaultUserService) authResponse(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(s.JWTSecret, u.ID, u.Email, u.Role, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Bio:        u.Bio,
		Avatar:     u.Avatar,
		IsVerified: u.IsVerified,
		Token:      token,
	}, nil
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 30 * 24 * time.Hour
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
