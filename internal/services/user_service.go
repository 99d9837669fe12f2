package services

import (
	"errors"
	"fmt"

	"github.com/ryoptimus/DevStorm-backend/internal/constants"
	"github.com/ryoptimus/DevStorm-backend/internal/logger"
	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"github.com/ryoptimus/DevStorm-backend/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNoUsers            = errors.New("no users found")
	ErrInvalidOldPassword = errors.New("invalid current password")
)

// UserService handles account-level operations outside of authentication.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUser retrieves a user by username.
func (s *UserService) GetUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

// UpdatePassword verifies the current credential before installing the new
// one.
func (s *UserService) UpdatePassword(username, currentPassword, newPassword string) error {
	user, err := s.GetUser(username)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	if err := s.userRepo.UpdatePasswordHash(username, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ConfirmAccount marks the account confirmed. Confirmation happens at most
// once; repeated calls are no-ops.
func (s *UserService) ConfirmAccount(username string) error {
	if _, err := s.GetUser(username); err != nil {
		return err
	}
	if err := s.userRepo.Confirm(username); err != nil {
		return fmt.Errorf("failed to confirm account: %w", err)
	}
	return nil
}

// DeleteAccount removes the account with its full cascade: owned projects
// and their tasks go the way DeleteProject takes them, and collaborator
// slots referencing the account elsewhere are cleared, all in one
// transaction.
func (s *UserService) DeleteAccount(username string) error {
	user, err := s.GetUser(username)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteCascade(user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"username":       username,
		"owned_projects": user.Projects,
	}).Info("account deleted")

	return nil
}
