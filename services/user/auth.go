package user

import (
	"context"
	"fmt"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func tokenKey(userID string) string {
	return utils.AuthCachePrefix + userID
}

// IssueToken signs a token for u, stores its hash on the user and caches it.
// Any previously issued token stops validating.
func (s *DefaultUserService) IssueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	hash := utils.HashToken(token)
	if err := s.Repo.UpdateFields(ctx, u.ID, bson.M{"tokenHash": hash, "updatedAt": time.Now()}); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.Tokens.Set(ctx, tokenKey(u.ID), []byte(hash), utils.AuthCacheTTL); err != nil {
		utils.GetLogger().Warn("IssueToken: failed to cache token hash", zap.String("userID", u.ID), zap.Error(err))
	}
	return &models.AuthResponse{ID: u.ID, Token: token, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

// Authenticate checks the token signature and compares its hash with the
// recorded one, from redis when cached and from the user record otherwise.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error) {
	claims, err := utils.ParseClaims(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthorized)
	}
	hash := utils.HashToken(token)

	cached, ok, err := s.Tokens.Get(ctx, tokenKey(claims.Subject))
	if err != nil {
		utils.GetLogger().Warn("Authenticate: token cache unavailable", zap.Error(err))
	}
	if ok {
		if string(cached) != hash {
			return nil, fmt.Errorf("token revoked: %w", models.ErrUnauthorized)
		}
		return claims, nil
	}

	u, err := s.Repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("unknown token subject: %w", models.ErrUnauthorized)
	}
	if u.TokenHash == "" || u.TokenHash != hash {
		return nil, fmt.Errorf("token revoked: %w", models.ErrUnauthorized)
	}
	if u.Status == models.UserSuspended {
		return nil, fmt.Errorf("account suspended: %w", models.ErrForbidden)
	}
	if err := s.Tokens.Set(ctx, tokenKey(u.ID), []byte(hash), utils.AuthCacheTTL); err != nil {
		utils.GetLogger().Warn("Authenticate: failed to cache token hash", zap.Error(err))
	}
	claims.Role = u.Role
	return claims, nil
}

// Revoke clears the stored and cached token hash.
func (s *DefaultUserService) Revoke(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateFields(ctx, userID, bson.M{"tokenHash": "", "updatedAt": time.Now()}); err != nil {
		return err
	}
	if err := s.Tokens.Del(ctx, tokenKey(userID)); err != nil {
		utils.GetLogger().Warn("Revoke: failed to clear token cache", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// Logout revokes the caller's token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	return s.Revoke(ctx, userID)
}
