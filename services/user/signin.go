package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)

// Login verifies credentials and returns a fresh token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	if u.Status == models.UserSuspended {
		return nil, fmt.Errorf("account suspended: %w", models.ErrForbidden)
	}

	u.LastLogin = time.Now()
	if err := s.Repo.UpdateFields(ctx, u.ID, bson.M{"lastLogin": u.LastLogin}); err != nil {
		utils.GetLogger().Warn("Login: failed to record last login", zap.String("userID", u.ID), zap.Error(err))
	}
	return s.IssueToken(ctx, u)
}

// GetUserByID returns the user without credentials.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByIDWithProjection(ctx, userID, bson.M{"passwordHash": 0, "tokenHash": 0})
}
