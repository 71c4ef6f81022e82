package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ValidateAccount checks the sign-up fields shared by client registration and
// the professional onboarding wizard.
func ValidateAccount(name, email, password string) error {
	verr := &models.ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "is required")
	}
	if !utils.ValidEmail(strings.TrimSpace(email)) {
		verr.Add("email", "must be a valid email address")
	}
	if err := ValidatePassword(password).Err(); err != nil {
		var perr *models.ValidationError
		if errors.As(err, &perr) {
			verr.Fields = append(verr.Fields, perr.Fields...)
		}
	}
	return verr.OrNil()
}

// HashPassword bcrypt-hashes a password.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// EmailAvailable reports whether no account uses email yet.
func (s *DefaultUserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Register creates a client account and returns its first token.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := ValidateAccount(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: hash,
		Role:         models.RoleClient,
		Status:       models.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The unique email index turns a concurrent duplicate into ErrConflict.
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("a user with this email already exists: %w", models.ErrConflict)
		}
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return s.IssueToken(ctx, u)
}
