package listingRepo

import (
	"context"

	"marketplace/models"
)

// Taxonomy reference fields, used with CountByTaxonomy.
const (
	FieldSector      = "sectorId"
	FieldCategory    = "categoryId"
	FieldSubCategory = "subCategoryId"
)

// ListingRepository defines methods for service listing access.
type ListingRepository interface {
	// GetByID retrieves a listing by its unique ID.
	GetByID(ctx context.Context, id string) (*models.ServiceListing, error)
	// ListByProfessional returns one page of a professional's listings, newest first.
	ListByProfessional(ctx context.Context, professionalID string, page, pageSize int) ([]models.ServiceListing, int64, error)
	// Published returns every published listing; the catalog filters and sorts in memory.
	Published(ctx context.Context) ([]models.ServiceListing, error)
	// CountByTaxonomy counts listings of any status referencing a taxonomy node.
	CountByTaxonomy(ctx context.Context, field, id string) (int64, error)
	Create(ctx context.Context, l *models.ServiceListing) error
	Update(ctx context.Context, l *models.ServiceListing) error
	Delete(ctx context.Context, id string) error
	// SetVerifiedForProfessional propagates a verification outcome to every listing of a professional.
	SetVerifiedForProfessional(ctx context.Context, professionalID string, verified bool) (int64, error)
	// RenameProfessional keeps the denormalized professional name in sync.
	RenameProfessional(ctx context.Context, professionalID, name string) error
	// DeleteByProfessional removes every listing of a professional.
	DeleteByProfessional(ctx context.Context, professionalID string) error
}
