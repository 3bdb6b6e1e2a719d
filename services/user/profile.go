package user

import (
	"fmt"
	"strings"

	"musa/models"

	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile changes the editable fields and returns a fresh token.
func (s *DefaultUserService) UpdateProfile(userID string, req models.UserUpdateRequest) (*AuthResponse, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" && email != u.Email {
		other, err := s.Repo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailTaken
		}
		u.Email = email
		u.IsVerified = false
	}
	if req.Bio != "" {
		u.Bio = req.Bio
	}
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return s.authResponse(u)
}
