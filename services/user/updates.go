package user

import (
	"context"
	"fmt"
	"time"

	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// ChangePassword verifies current, applies the password policy to next and stores it.
// The current token stays valid.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", models.ErrUnauthorized)
	}
	if current == next {
		verr := &models.ValidationError{}
		verr.Add("newPassword", "must differ from the current password")
		return verr
	}
	if err := ValidatePassword(next).Err(); err != nil {
		return err
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdateFields(ctx, userID, bson.M{"passwordHash": hash, "updatedAt": time.Now()})
}
