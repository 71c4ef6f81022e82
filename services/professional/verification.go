package professional

import (
	"context"

	"marketplace/models"
	"marketplace/utils"

	"go.uber.org/zap"
)

// VerificationStatus derives a professional's status from their documents:
// pending while anything awaits review, verified once an identity document is
// approved, rejected when every document was rejected.
func VerificationStatus(docs []models.VerificationDocument) string {
	if len(docs) == 0 {
		return models.VerificationUnverified
	}
	identityApproved, allRejected := false, true
	for _, d := range docs {
		switch d.Status {
		case models.DocPending:
			return models.VerificationPending
		case models.DocApproved:
			allRejected = false
			if d.Kind == models.DocIdentity {
				identityApproved = true
			}
		default:
			if d.Status != models.DocRejected {
				allRejected = false
			}
		}
	}
	switch {
	case identityApproved:
		return models.VerificationVerified
	case allRejected:
		return models.VerificationRejected
	default:
		return models.VerificationUnverified
	}
}

func (s *DefaultProfessionalService) RecomputeVerification(ctx context.Context, professionalID string) (string, error) {
	docs, err := s.Documents.ListByProfessional(ctx, professionalID)
	if err != nil {
		return "", err
	}
	status := VerificationStatus(docs)
	verified := status == models.VerificationVerified
	if err := s.Repo.SetVerification(ctx, professionalID, status, verified); err != nil {
		return "", err
	}
	n, err := s.Listings.SetVerifiedForProfessional(ctx, professionalID, verified)
	if err != nil {
		return "", err
	}
	utils.GetLogger().Info("verification recomputed",
		zap.String("professionalID", professionalID),
		zap.String("status", status),
		zap.Int64("listingsUpdated", n))
	return status, nil
}
