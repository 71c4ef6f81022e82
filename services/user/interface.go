package user

import (
	"context"
	"time"

	userRepo "marketplace/database/repository/user"
	"marketplace/models"
	"marketplace/utils"
)

// UserService defines business logic for accounts and authentication.
type UserService interface {
	// Register creates a client account and signs it in.
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	// Login verifies credentials and issues a new token, revoking the previous one.
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	// Logout revokes the user's current token.
	Logout(ctx context.Context, userID string) error
	// ChangePassword replaces the password after checking the current one.
	ChangePassword(ctx context.Context, userID, current, next string) error
	// GetUserByID retrieves a user (safe view) by its unique ID.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// IssueToken signs a token for u and records its hash.
	IssueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error)
	// Authenticate validates a bearer token against the recorded hash.
	Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error)
	// Revoke drops the recorded token hash of userID, forcing a new login.
	Revoke(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Tokens   utils.KVStore
	TokenTTL time.Duration
}

// NewUserService wires the service; tokens caches token hashes by user ID.
func NewUserService(repo userRepo.UserRepository, tokens utils.KVStore, tokenTTL time.Duration) *DefaultUserService {
	if tokenTTL <= 0 {
		tokenTTL = 72 * time.Hour
	}
	return &DefaultUserService{Repo: repo, Tokens: tokens, TokenTTL: tokenTTL}
}
