package user

import (
	"context"
	"fmt"

	"musa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RequestPasswordReset mails a single use reset link. Unknown addresses get
// the same success response as known ones.
func (s *DefaultUserService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return err
	}
	if u == nil {
		s.logger().Debug("Password reset for unknown email")
		return nil
	}
	if s.ResetTokens == nil || s.Mailer == nil {
		s.logger().Warn("Password reset disabled, skipping", zap.String("userId", u.ID))
		return nil
	}

	token := uuid.NewString()
	if err := s.ResetTokens.Save(ctx, token, u.ID, utils.PasswordResetTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	mailCtx, cancel := context.WithTimeout(ctx, emailTimeout)
	defer cancel()
	if err := s.Mailer.SendPasswordResetEmail(mailCtx, u.Email, u.Name, token); err != nil {
		s.logger().Error("Failed to send password reset email", zap.String("userId", u.ID), zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *DefaultUserService) ResetPassword(ctx context.Context, token, password string) error {
	if s.ResetTokens == nil || token == "" {
		return ErrInvalidResetToken
	}
	userID, err := s.ResetTokens.Lookup(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if userID == "" {
		return ErrInvalidResetToken
	}
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	if err := s.Repo.Update(u); err != nil {
		return err
	}
	if err := s.ResetTokens.Delete(ctx, token); err != nil {
		s.logger().Warn("Failed to delete used reset token", zap.Error(err))
	}
	return nil
}
