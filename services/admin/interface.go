package admin

import (
	"context"
	"time"

	documentRepo "marketplace/database/repository/document"
	listingRepo "marketplace/database/repository/listing"
	professionalRepo "marketplace/database/repository/professional"
	taxonomyRepo "marketplace/database/repository/taxonomy"
	userRepo "marketplace/database/repository/user"
	"marketplace/models"
	"marketplace/services/storage"
	"marketplace/services/tasks"
)

// AdminService is the back office: accounts, document review and taxonomy management.
type AdminService interface {
	ListUsers(ctx context.Context, f models.UserFilter) (models.Page[models.User], error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateUser changes role or status. Admins cannot demote or suspend themselves.
	UpdateUser(ctx context.Context, actorID, id string, upd models.UserUpdate) (*models.User, error)
	// DeleteUser removes an account and everything a professional owns.
	DeleteUser(ctx context.Context, actorID, id string) error

	ListDocuments(ctx context.Context, status string, page, pageSize int) (models.Page[models.VerificationDocument], error)
	ApproveDocument(ctx context.Context, reviewerID, id string) (*models.VerificationDocument, error)
	RejectDocument(ctx context.Context, reviewerID, id, reason string) (*models.VerificationDocument, error)
	// DocumentURL returns a short-lived signed link to the stored (encrypted) file.
	DocumentURL(ctx context.Context, id string) (string, error)
	// DocumentFile returns the decrypted file for in-browser review.
	DocumentFile(ctx context.Context, id string) (*models.VerificationDocument, []byte, error)

	CreateSector(ctx context.Context, in models.SectorInput) (*models.Sector, error)
	UpdateSector(ctx context.Context, id string, in models.SectorInput) (*models.Sector, error)
	DeleteSector(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.ServiceCategory, error)
	UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.ServiceCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateSubCategory(ctx context.Context, in models.SubCategoryInput) (*models.ServiceSubCategory, error)
	UpdateSubCategory(ctx context.Context, id string, in models.SubCategoryInput) (*models.ServiceSubCategory, error)
	DeleteSubCategory(ctx context.Context, id string) error
}

// Revoker drops a user's token; the user service implements it.
type Revoker interface {
	Revoke(ctx context.Context, userID string) error
}

// Verifier recomputes a professional's verification status inline when the queue is unavailable.
type Verifier interface {
	RecomputeVerification(ctx context.Context, professionalID string) (string, error)
}

// TreeStore is the in-process taxonomy store.
type TreeStore interface {
	Invalidate(sectorID string)
	Descendants(ctx context.Context, categoryID, subID string) ([]string, error)
}

// TreeCache is the redis layer beneath the store.
type TreeCache interface {
	Invalidate(ctx context.Context, sectorID string, categoryIDs ...string) error
}

type DefaultAdminService struct {
	Users         userRepo.UserRepository
	Professionals professionalRepo.ProfessionalRepository
	Listings      listingRepo.ListingRepository
	Documents     documentRepo.DocumentRepository
	Taxonomy      taxonomyRepo.TaxonomyRepository
	Tokens        Revoker
	Verifier      Verifier
	Storage       storage.StorageService
	Queue         tasks.Enqueuer
	Tree          TreeStore
	Cache         TreeCache
	EncryptionKey string
	URLTTL        time.Duration
	MaxPageSize   int
}

// Deps groups the collaborators of NewAdminService.
type Deps struct {
	Users         userRepo.UserRepository
	Professionals professionalRepo.ProfessionalRepository
	Listings      listingRepo.ListingRepository
	Documents     documentRepo.DocumentRepository
	Taxonomy      taxonomyRepo.TaxonomyRepository
	Tokens        Revoker
	Verifier      Verifier
	Storage       storage.StorageService
	Queue         tasks.Enqueuer
	Tree          TreeStore
	Cache         TreeCache
	EncryptionKey string
}

func NewAdminService(d Deps) *DefaultAdminService {
	return &DefaultAdminService{
		Users:         d.Users,
		Professionals: d.Professionals,
		Listings:      d.Listings,
		Documents:     d.Documents,
		Taxonomy:      d.Taxonomy,
		Tokens:        d.Tokens,
		Verifier:      d.Verifier,
		Storage:       d.Storage,
		Queue:         d.Queue,
		Tree:          d.Tree,
		Cache:         d.Cache,
		EncryptionKey: d.EncryptionKey,
		URLTTL:        5 * time.Minute,
		MaxPageSize:   100,
	}
}
