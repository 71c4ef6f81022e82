package onboarding

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Finalize turns a complete session into an account. The session is deleted
// only once everything is stored, so a failed attempt can be retried.
func (s *DefaultOnboardingService) Finalize(ctx context.Context, sessionID string) (*models.AuthResponse, error) {
	logger := utils.GetLogger()
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, step := range []string{models.StepAccount, models.StepProfile, models.StepServices} {
		if !sess.IsCompleted(step) {
			return nil, &StepOrderError{Step: "finalize", Missing: step}
		}
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         sess.Account.Name,
		Email:        sess.Account.Email,
		PhoneNumber:  sess.Account.PhoneNumber,
		PasswordHash: sess.PasswordHash,
		Role:         models.RoleProfessional,
		Status:       models.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("a user with this email already exists: %w", models.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	var docs []models.DocumentRef
	if sess.Documents != nil {
		docs = sess.Documents.Documents
	}
	status := models.VerificationUnverified
	if len(docs) > 0 {
		status = models.VerificationPending
	}
	p := profileOf(*sess.Profile)
	p.ID = uuid.New().String()
	p.UserID = u.ID
	p.VerificationStatus = status
	p.CreatedAt, p.UpdatedAt = now, now
	for _, sel := range sess.Services.Selections {
		if !slices.Contains(p.SectorIDs, sel.SectorID) {
			p.SectorIDs = append(p.SectorIDs, sel.SectorID)
		}
	}
	if err := s.Professionals.Create(ctx, p); err != nil {
		s.rollback(ctx, u.ID, "")
		return nil, fmt.Errorf("failed to create professional profile: %w", err)
	}

	for _, ref := range docs {
		doc := &models.VerificationDocument{
			ID:             uuid.New().String(),
			ProfessionalID: p.ID,
			Kind:           ref.Kind,
			FileName:       ref.FileName,
			PublicID:       ref.PublicID,
			Status:         models.DocPending,
			SubmittedAt:    now,
		}
		if err := s.Documents.Create(ctx, doc); err != nil {
			s.rollback(ctx, u.ID, p.ID)
			return nil, fmt.Errorf("failed to record verification document: %w", err)
		}
	}

	resp, err := s.Accounts.IssueToken(ctx, u)
	if err != nil {
		s.rollback(ctx, u.ID, p.ID)
		return nil, err
	}
	if err := s.Sessions.Del(ctx, sessionKey(sess.ID)); err != nil {
		logger.Warn("Finalize: failed to delete onboarding session", zap.String("sessionID", sess.ID), zap.Error(err))
	}
	logger.Info("professional onboarded",
		zap.String("userID", u.ID),
		zap.String("professionalID", p.ID),
		zap.Int("documents", len(docs)))
	return resp, nil
}

// rollback removes a half-created account so the email can be used again.
func (s *DefaultOnboardingService) rollback(ctx context.Context, userID, professionalID string) {
	logger := utils.GetLogger()
	if professionalID != "" {
		if err := s.Documents.DeleteByProfessional(ctx, professionalID); err != nil {
			logger.Warn("Finalize: failed to roll back documents", zap.String("professionalID", professionalID), zap.Error(err))
		}
	}
	if err := s.Professionals.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, models.ErrNotFound) {
		logger.Warn("Finalize: failed to roll back profile", zap.String("userID", userID), zap.Error(err))
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		logger.Warn("Finalize: failed to roll back user", zap.String("userID", userID), zap.Error(err))
	}
}
