package documentRepo

import (
	"context"
	"time"

	"marketplace/models"
)

// Decision is an admin verdict on a pending document.
type Decision struct {
	Status     string
	Reason     string
	ReviewerID string
	At         time.Time
}

// DocumentRepository defines methods for verification document access.
type DocumentRepository interface {
	GetByID(ctx context.Context, id string) (*models.VerificationDocument, error)
	// ListByProfessional returns every document of a professional, newest first.
	ListByProfessional(ctx context.Context, professionalID string) ([]models.VerificationDocument, error)
	// List returns one page of documents, optionally narrowed to a status, oldest submission first.
	List(ctx context.Context, status string, page, pageSize int) ([]models.VerificationDocument, int64, error)
	Create(ctx context.Context, doc *models.VerificationDocument) error
	// Decide records a decision on a pending document. A missing document yields
	// models.ErrNotFound; a document that is no longer pending yields models.ErrConflict.
	Decide(ctx context.Context, id string, d Decision) (*models.VerificationDocument, error)
	DeleteByProfessional(ctx context.Context, professionalID string) error
}
