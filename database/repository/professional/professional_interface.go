package professionalRepo

import (
	"context"

	"marketplace/models"
)

// ProfessionalRepository defines methods for professional profile access.
type ProfessionalRepository interface {
	// GetByID retrieves a professional by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	// GetByUserID retrieves the profile owned by a user account.
	GetByUserID(ctx context.Context, userID string) (*models.Professional, error)
	// Create inserts a new professional record.
	Create(ctx context.Context, p *models.Professional) error
	// Update replaces an existing professional record.
	Update(ctx context.Context, p *models.Professional) error
	// SetVerification records the verification outcome.
	SetVerification(ctx context.Context, id, status string, verified bool) error
	// DeleteByUserID removes the profile of a deleted account.
	DeleteByUserID(ctx context.Context, userID string) error
}
