package professional

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var documentExtensions = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}

// ValidateDocument checks the kind and file type of a verification document.
func ValidateDocument(kind, fileName string) error {
	verr := &models.ValidationError{}
	if !models.IsValidDocumentKind(kind) {
		verr.Add("kind", "must be one of identity, certificate, insurance, license")
	}
	if !documentExtensions[strings.ToLower(filepath.Ext(fileName))] {
		verr.Add("file", "must be a PDF, JPEG or PNG file")
	}
	return verr.OrNil()
}

func (s *DefaultProfessionalService) SubmitDocument(ctx context.Context, userID, kind string, r io.Reader, fileName string) (*models.VerificationDocument, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ValidateDocument(kind, fileName); err != nil {
		return nil, err
	}

	res, err := s.Storage.UploadEncryptedFile(ctx, r, fileName, "documents/"+p.ID, s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	doc := &models.VerificationDocument{
		ID:             uuid.New().String(),
		ProfessionalID: p.ID,
		Kind:           kind,
		FileName:       filepath.Base(fileName),
		PublicID:       res.PublicID,
		Status:         models.DocPending,
		SubmittedAt:    time.Now(),
	}
	if err := s.Documents.Create(ctx, doc); err != nil {
		return nil, err
	}

	// Listings keep their badge while a new document is under review.
	if err := s.Repo.SetVerification(ctx, p.ID, models.VerificationPending, p.Verified); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("verification document submitted",
		zap.String("professionalID", p.ID), zap.String("documentID", doc.ID), zap.String("kind", kind))
	return doc, nil
}

func (s *DefaultProfessionalService) ListDocuments(ctx context.Context, userID string) ([]models.VerificationDocument, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.Documents.ListByProfessional(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.VerificationDocument{}
	}
	return docs, nil
}
