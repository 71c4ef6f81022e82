package userRepo

import (
	"context"

	"marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its (lower-cased) email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// List returns one page of users matching filter, newest first, and the total match count.
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int64, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateFields applies a $set document to the user.
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
