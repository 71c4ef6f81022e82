package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"marketplace/models"
	"marketplace/services/professional"
	"marketplace/services/taxonomy"
	"marketplace/services/user"
	"marketplace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxSelections = 5
	maxUploads    = 5
)

func (s *DefaultOnboardingService) Start(ctx context.Context, account models.OnboardingAccount) (*models.OnboardingState, error) {
	sess := &models.OnboardingSession{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	if err := s.applyAccount(ctx, sess, account); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("onboarding started", zap.String("sessionID", sess.ID))
	return s.view(sess), nil
}

// applyAccount validates the account, checks the email is free and keeps only the bcrypt hash.
func (s *DefaultOnboardingService) applyAccount(ctx context.Context, sess *models.OnboardingSession, acc models.OnboardingAccount) error {
	acc.Name = strings.TrimSpace(acc.Name)
	acc.Email = strings.ToLower(strings.TrimSpace(acc.Email))
	acc.PhoneNumber = strings.TrimSpace(acc.PhoneNumber)
	if err := user.ValidateAccount(acc.Name, acc.Email, acc.Password); err != nil {
		return err
	}
	free, err := s.Accounts.EmailAvailable(ctx, acc.Email)
	if err != nil {
		return err
	}
	if !free {
		return fmt.Errorf("email %s is already registered: %w", acc.Email, models.ErrConflict)
	}
	hash, err := user.HashPassword(acc.Password)
	if err != nil {
		return err
	}
	acc.Password = ""
	sess.Account = &acc
	sess.PasswordHash = hash
	sess.MarkCompleted(models.StepAccount)
	return nil
}

func decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		verr := &models.ValidationError{}
		verr.Add("payload", "malformed JSON: "+err.Error())
		return verr
	}
	return nil
}

func (s *DefaultOnboardingService) SubmitStep(ctx context.Context, sessionID, step string, payload json.RawMessage) (*models.OnboardingState, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkOrder(sess, step); err != nil {
		return nil, err
	}

	switch step {
	case models.StepAccount:
		var acc models.OnboardingAccount
		if err := decode(payload, &acc); err != nil {
			return nil, err
		}
		if err := s.applyAccount(ctx, sess, acc); err != nil {
			return nil, err
		}
	case models.StepProfile:
		var p models.OnboardingProfile
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := applyProfile(sess, p); err != nil {
			return nil, err
		}
	case models.StepServices:
		var svc models.OnboardingServices
		if err := decode(payload, &svc); err != nil {
			return nil, err
		}
		if err := s.applyServices(ctx, sess, svc); err != nil {
			return nil, err
		}
	case models.StepDocuments:
		var docs models.OnboardingDocuments
		if len(payload) > 0 {
			if err := decode(payload, &docs); err != nil {
				return nil, err
			}
		}
		if err := applyDocuments(sess, docs); err != nil {
			return nil, err
		}
	case models.StepReview:
		sess.MarkCompleted(models.StepReview)
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func applyProfile(sess *models.OnboardingSession, p models.OnboardingProfile) error {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Headline = strings.TrimSpace(p.Headline)
	p.Bio = strings.TrimSpace(p.Bio)
	p.Location = strings.TrimSpace(p.Location)
	p.Skills = professional.CleanList(p.Skills)
	p.Languages = professional.CleanList(p.Languages)
	if err := professional.ValidateProfile(profileOf(p)); err != nil {
		return err
	}
	sess.Profile = &p
	sess.MarkCompleted(models.StepProfile)
	return nil
}

func profileOf(p models.OnboardingProfile) *models.Professional {
	return &models.Professional{
		DisplayName: p.DisplayName,
		Headline:    p.Headline,
		Bio:         p.Bio,
		Location:    p.Location,
		Skills:      p.Skills,
		Languages:   p.Languages,
		HourlyRate:  p.HourlyRate,
	}
}

// applyServices resolves every selection to canonical IDs and drops duplicates.
func (s *DefaultOnboardingService) applyServices(ctx context.Context, sess *models.OnboardingSession, svc models.OnboardingServices) error {
	verr := &models.ValidationError{}
	if len(svc.Selections) == 0 {
		verr.Add("selections", "pick at least one service")
	}
	if len(svc.Selections) > maxSelections {
		verr.Add("selections", fmt.Sprintf("at most %d services", maxSelections))
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	var out []models.ServiceSelection
	for i, sel := range svc.Selections {
		field := fmt.Sprintf("selections[%d]", i)
		if sel.SectorID == "" || sel.CategoryID == "" {
			verr.Add(field, "sector and category are required")
			continue
		}
		res, err := s.Taxonomy.Resolve(ctx, taxonomy.Path{Sector: sel.SectorID, Category: sel.CategoryID, SubCategory: sel.SubCategoryID})
		switch {
		case errors.Is(err, taxonomy.ErrUnknownSector):
			verr.Add(field+".sectorId", "unknown sector")
			continue
		case errors.Is(err, taxonomy.ErrUnknownCategory):
			verr.Add(field+".categoryId", "not a category of the sector")
			continue
		case errors.Is(err, taxonomy.ErrUnknownSubCategory):
			verr.Add(field+".subCategoryId", "not a subcategory of the category")
			continue
		case err != nil:
			return err
		}
		canonical := models.ServiceSelection{SectorID: res.Sector.ID, CategoryID: res.Category.ID}
		if res.SubCategory != nil {
			canonical.SubCategoryID = res.SubCategory.ID
		}
		if !slices.Contains(out, canonical) {
			out = append(out, canonical)
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	sess.Services = &models.OnboardingServices{Selections: out}
	sess.MarkCompleted(models.StepServices)
	return nil
}

// applyDocuments accepts only references to files uploaded through this session.
func applyDocuments(sess *models.OnboardingSession, docs models.OnboardingDocuments) error {
	verr := &models.ValidationError{}
	for i, ref := range docs.Documents {
		if !slices.ContainsFunc(sess.Uploaded, func(u models.DocumentRef) bool { return u.PublicID == ref.PublicID }) {
			verr.Add(fmt.Sprintf("documents[%d].publicId", i), "was not uploaded in this session")
		}
		if !models.IsValidDocumentKind(ref.Kind) {
			verr.Add(fmt.Sprintf("documents[%d].kind", i), "unknown document kind")
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	sess.Documents = &docs
	sess.MarkCompleted(models.StepDocuments)
	return nil
}

// UploadDocument stores an encrypted file under the session's folder; the
// returned reference is then submitted with the documents step.
func (s *DefaultOnboardingService) UploadDocument(ctx context.Context, sessionID, kind string, r io.Reader, fileName string) (*models.DocumentRef, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkOrder(sess, models.StepDocuments); err != nil {
		return nil, err
	}
	if err := professional.ValidateDocument(kind, fileName); err != nil {
		return nil, err
	}
	if len(sess.Uploaded) >= maxUploads {
		verr := &models.ValidationError{}
		verr.Add("file", fmt.Sprintf("at most %d documents during onboarding", maxUploads))
		return nil, verr
	}

	res, err := s.Storage.UploadEncryptedFile(ctx, r, fileName, "onboarding/"+sess.ID, s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	ref := models.DocumentRef{Kind: kind, FileName: filepath.Base(fileName), PublicID: res.PublicID}
	sess.Uploaded = append(sess.Uploaded, ref)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return &ref, nil
}
