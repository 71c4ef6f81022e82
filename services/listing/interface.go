package listing

import (
	"context"
	"io"

	listingRepo "marketplace/database/repository/listing"
	professionalRepo "marketplace/database/repository/professional"
	"marketplace/models"
	"marketplace/services/storage"
	"marketplace/services/taxonomy"
)

// ListingService manages the service listings of professionals.
type ListingService interface {
	// Get returns a published listing.
	Get(ctx context.Context, id string) (*models.ServiceListing, error)
	// ListMine returns the caller's listings of every status, newest first.
	ListMine(ctx context.Context, userID string, page, pageSize int) (models.Page[models.ServiceListing], error)
	// Create stores a new draft listing.
	Create(ctx context.Context, userID string, in models.ListingInput) (*models.ServiceListing, error)
	Update(ctx context.Context, userID, id string, in models.ListingInput) (*models.ServiceListing, error)
	Publish(ctx context.Context, userID, id string) (*models.ServiceListing, error)
	Unpublish(ctx context.Context, userID, id string) (*models.ServiceListing, error)
	Delete(ctx context.Context, userID, id string) error
	AddMedia(ctx context.Context, userID, id string, r io.Reader, fileName string) (*models.ServiceListing, error)
	RemoveMedia(ctx context.Context, userID, id, publicID string) (*models.ServiceListing, error)
}

// Resolver checks taxonomy references.
type Resolver interface {
	Resolve(ctx context.Context, p taxonomy.Path) (taxonomy.Selection, error)
}

// DefaultListingService is the production implementation.
type DefaultListingService struct {
	Repo          listingRepo.ListingRepository
	Professionals professionalRepo.ProfessionalRepository
	Taxonomy      Resolver
	Storage       storage.StorageService
	MaxPageSize   int
}

func NewListingService(
	repo listingRepo.ListingRepository,
	professionals professionalRepo.ProfessionalRepository,
	resolver Resolver,
	store storage.StorageService,
) *DefaultListingService {
	return &DefaultListingService{
		Repo:          repo,
		Professionals: professionals,
		Taxonomy:      resolver,
		Storage:       store,
		MaxPageSize:   50,
	}
}
