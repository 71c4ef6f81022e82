package professional

import (
	"context"
	"io"

	documentRepo "marketplace/database/repository/document"
	listingRepo "marketplace/database/repository/listing"
	professionalRepo "marketplace/database/repository/professional"
	"marketplace/models"
	"marketplace/services/storage"
)

// ProfessionalService manages the professional's own profile and verification documents.
type ProfessionalService interface {
	GetProfile(ctx context.Context, userID string) (*models.Professional, error)
	// UpdateProfile applies the non-nil fields of patch.
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Professional, error)
	// SubmitDocument encrypts and stores a verification document and queues it for review.
	SubmitDocument(ctx context.Context, userID, kind string, r io.Reader, fileName string) (*models.VerificationDocument, error)
	ListDocuments(ctx context.Context, userID string) ([]models.VerificationDocument, error)
	// RecomputeVerification derives the verification status from the documents
	// and propagates it to the profile and listings.
	RecomputeVerification(ctx context.Context, professionalID string) (string, error)
}

type DefaultProfessionalService struct {
	Repo          professionalRepo.ProfessionalRepository
	Listings      listingRepo.ListingRepository
	Documents     documentRepo.DocumentRepository
	Storage       storage.StorageService
	EncryptionKey string
}

func NewProfessionalService(
	repo professionalRepo.ProfessionalRepository,
	listings listingRepo.ListingRepository,
	documents documentRepo.DocumentRepository,
	store storage.StorageService,
	encryptionKey string,
) *DefaultProfessionalService {
	return &DefaultProfessionalService{
		Repo:          repo,
		Listings:      listings,
		Documents:     documents,
		Storage:       store,
		EncryptionKey: encryptionKey,
	}
}
