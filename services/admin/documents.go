package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	documentRepo "marketplace/database/repository/document"
	"marketplace/models"
	"marketplace/services/storage"
	"marketplace/services/tasks"
	"marketplace/utils"

	"go.uber.org/zap"
)

func (s *DefaultAdminService) ListDocuments(ctx context.Context, status string, page, pageSize int) (models.Page[models.VerificationDocument], error) {
	switch status {
	case "", models.DocPending, models.DocApproved, models.DocRejected:
	default:
		verr := &models.ValidationError{}
		verr.Add("status", "must be pending, approved or rejected")
		return models.Page[models.VerificationDocument]{}, verr
	}
	page, pageSize = models.NormalizePaging(page, pageSize, 20, s.MaxPageSize)
	docs, total, err := s.Documents.List(ctx, status, page, pageSize)
	if err != nil {
		return models.Page[models.VerificationDocument]{}, err
	}
	return models.NewPage(docs, total, page, pageSize), nil
}

func (s *DefaultAdminService) ApproveDocument(ctx context.Context, reviewerID, id string) (*models.VerificationDocument, error) {
	return s.decide(ctx, id, documentRepo.Decision{Status: models.DocApproved, ReviewerID: reviewerID, At: time.Now()})
}

func (s *DefaultAdminService) RejectDocument(ctx context.Context, reviewerID, id, reason string) (*models.VerificationDocument, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		verr := &models.ValidationError{}
		verr.Add("reason", "is required when rejecting a document")
		return nil, verr
	}
	return s.decide(ctx, id, documentRepo.Decision{Status: models.DocRejected, Reason: reason, ReviewerID: reviewerID, At: time.Now()})
}

// decide records the decision and queues the verification recompute. When the
// queue is unreachable the recompute runs inline.
func (s *DefaultAdminService) decide(ctx context.Context, id string, d documentRepo.Decision) (*models.VerificationDocument, error) {
	logger := utils.GetLogger()
	doc, err := s.Documents.Decide(ctx, id, d)
	if err != nil {
		return nil, err
	}
	logger.Info("verification document decided",
		zap.String("documentID", doc.ID),
		zap.String("status", doc.Status),
		zap.String("reviewerID", d.ReviewerID))

	task, opts, err := tasks.NewVerificationDecidedTask(models.VerificationDecidedPayload{
		DocumentID:     doc.ID,
		ProfessionalID: doc.ProfessionalID,
		Status:         doc.Status,
	})
	if err == nil {
		_, err = s.Queue.Enqueue(task, opts...)
	}
	if err != nil {
		logger.Warn("failed to enqueue verification task, recomputing inline", zap.String("documentID", doc.ID), zap.Error(err))
		if _, err := s.Verifier.RecomputeVerification(ctx, doc.ProfessionalID); err != nil {
			return nil, fmt.Errorf("decision saved but verification status not updated: %w", err)
		}
	}
	return doc, nil
}

func (s *DefaultAdminService) DocumentURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Documents.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Storage.GetSecureDownloadURL(ctx, storage.ResourceRaw, doc.PublicID, s.URLTTL)
}

func (s *DefaultAdminService) DocumentFile(ctx context.Context, id string) (*models.VerificationDocument, []byte, error) {
	doc, err := s.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.Storage.DownloadDecryptedFile(ctx, doc.PublicID, s.EncryptionKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, content, nil
}
