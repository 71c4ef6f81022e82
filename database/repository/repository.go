package repository

import (
	documentRepo "marketplace/database/repository/document"
	listingRepo "marketplace/database/repository/listing"
	professionalRepo "marketplace/database/repository/professional"
	taxonomyRepo "marketplace/database/repository/taxonomy"
	userRepo "marketplace/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo

// Re-export the ProfessionalRepository interface and constructor.
type ProfessionalRepository = professionalRepo.ProfessionalRepository

var NewMongoProfessionalRepo = professionalRepo.NewMongoProfessionalRepo

// Re-export the TaxonomyRepository interface and constructor.
type TaxonomyRepository = taxonomyRepo.TaxonomyRepository

var NewMongoTaxonomyRepo = taxonomyRepo.NewMongoTaxonomyRepo

// Re-export the ListingRepository interface and constructor.
type ListingRepository = listingRepo.ListingRepository

var NewMongoListingRepo = listingRepo.NewMongoListingRepo

// Re-export the DocumentRepository interface and constructor.
type DocumentRepository = documentRepo.DocumentRepository

var NewMongoDocumentRepo = documentRepo.NewMongoDocumentRepo

// Repositories groups every repository used by the services.
type Repositories struct {
	Users         UserRepository
	Professionals ProfessionalRepository
	Taxonomy      TaxonomyRepository
	Listings      ListingRepository
	Documents     DocumentRepository
}

// NewRepositories builds the MongoDB-backed repositories of db.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:         NewMongoUserRepository(db),
		Professionals: NewMongoProfessionalRepo(db),
		Taxonomy:      NewMongoTaxonomyRepo(db),
		Listings:      NewMongoListingRepo(db),
		Documents:     NewMongoDocumentRepo(db),
	}
}
