package listing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"marketplace/models"
	"marketplace/services/storage"
	"marketplace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// owned loads a listing and checks it belongs to the caller's professional profile.
func (s *DefaultListingService) owned(ctx context.Context, userID, id string) (*models.Professional, *models.ServiceListing, error) {
	pro, err := s.Professionals.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if l.ProfessionalID != pro.ID {
		return nil, nil, fmt.Errorf("listing %s belongs to another professional: %w", id, models.ErrForbidden)
	}
	return pro, l, nil
}

func (s *DefaultListingService) Get(ctx context.Context, id string) (*models.ServiceListing, error) {
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Status != models.ListingPublished {
		return nil, fmt.Errorf("listing %s: %w", id, models.ErrNotFound)
	}
	return l, nil
}

func (s *DefaultListingService) ListMine(ctx context.Context, userID string, page, pageSize int) (models.Page[models.ServiceListing], error) {
	pro, err := s.Professionals.GetByUserID(ctx, userID)
	if err != nil {
		return models.Page[models.ServiceListing]{}, err
	}
	page, pageSize = models.NormalizePaging(page, pageSize, 20, s.MaxPageSize)
	items, total, err := s.Repo.ListByProfessional(ctx, pro.ID, page, pageSize)
	if err != nil {
		return models.Page[models.ServiceListing]{}, err
	}
	return models.NewPage(items, total, page, pageSize), nil
}

func (s *DefaultListingService) Create(ctx context.Context, userID string, in models.ListingInput) (*models.ServiceListing, error) {
	pro, err := s.Professionals.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	in = normalize(in)
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}

	now := time.Now()
	l := &models.ServiceListing{
		ID:               uuid.New().String(),
		ProfessionalID:   pro.ID,
		ProfessionalName: pro.DisplayName,
		Verified:         pro.Verified,
		Status:           models.ListingDraft,
		CreatedAt:        now,
	}
	apply(l, in, now)
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("listing created", zap.String("listingID", l.ID), zap.String("professionalID", pro.ID))
	return l, nil
}

// apply copies the editable fields and keeps StartingPrice in sync with the packages.
func apply(l *models.ServiceListing, in models.ListingInput, now time.Time) {
	l.Title = in.Title
	l.Description = in.Description
	l.SectorID = in.SectorID
	l.CategoryID = in.CategoryID
	l.SubCategoryID = in.SubCategoryID
	l.Packages = in.Packages
	l.StartingPrice = models.MinPackagePrice(in.Packages)
	l.Currency = in.Currency
	l.Tags = in.Tags
	l.Location = in.Location
	l.UpdatedAt = now
}

func (s *DefaultListingService) Update(ctx context.Context, userID, id string, in models.ListingInput) (*models.ServiceListing, error) {
	_, l, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	in = normalize(in)
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}
	apply(l, in, time.Now())
	if l.Status == models.ListingPublished {
		if err := publishable(l); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *DefaultListingService) Publish(ctx context.Context, userID, id string) (*models.ServiceListing, error) {
	pro, l, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if l.Status == models.ListingSuspended {
		return nil, fmt.Errorf("listing %s is suspended: %w", id, models.ErrConflict)
	}
	if err := publishable(l); err != nil {
		return nil, err
	}
	now := time.Now()
	l.Status = models.ListingPublished
	l.PublishedAt = &now
	l.UpdatedAt = now
	l.ProfessionalName = pro.DisplayName
	l.Verified = pro.Verified
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *DefaultListingService) Unpublish(ctx context.Context, userID, id string) (*models.ServiceListing, error) {
	_, l, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if l.Status != models.ListingPublished {
		return nil, fmt.Errorf("listing %s is not published: %w", id, models.ErrConflict)
	}
	l.Status = models.ListingDraft
	l.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes the listing and, best effort, its media.
func (s *DefaultListingService) Delete(ctx context.Context, userID, id string) error {
	_, l, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, m := range l.Media {
		if err := s.Storage.DeleteFile(ctx, m.PublicID, m.Kind); err != nil {
			utils.GetLogger().Warn("failed to delete listing media", zap.String("publicID", m.PublicID), zap.Error(err))
		}
	}
	return nil
}

// mediaKind infers the media kind from a file extension.
func mediaKind(fileName string) (string, bool) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return models.MediaImage, true
	case ".mp4", ".mov", ".webm":
		return models.MediaVideo, true
	}
	return "", false
}

func (s *DefaultListingService) AddMedia(ctx context.Context, userID, id string, r io.Reader, fileName string) (*models.ServiceListing, error) {
	_, l, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	kind, ok := mediaKind(fileName)
	if !ok {
		verr := &models.ValidationError{}
		verr.Add("file", "must be an image or a video")
		return nil, verr
	}
	if len(l.Media) >= maxMedia {
		verr := &models.ValidationError{}
		verr.Add("file", fmt.Sprintf("a listing holds at most %d media files", maxMedia))
		return nil, verr
	}

	resourceType := storage.ResourceImage
	if kind == models.MediaVideo {
		resourceType = storage.ResourceVideo
	}
	res, err := s.Storage.UploadFile(ctx, r, fileName, "listings/"+l.ID, resourceType)
	if err != nil {
		return nil, err
	}
	l.Media = append(l.Media, models.Media{PublicID: res.PublicID, URL: res.URL, Kind: kind})
	l.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, l); err != nil {
		if derr := s.Storage.DeleteFile(ctx, res.PublicID, resourceType); derr != nil {
			utils.GetLogger().Warn("failed to clean up orphaned upload", zap.String("publicID", res.PublicID), zap.Error(derr))
		}
		return nil, err
	}
	return l, nil
}

func (s *DefaultListingService) RemoveMedia(ctx context.Context, userID, id, publicID string) (*models.ServiceListing, error) {
	_, l, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(l.Media, func(m models.Media) bool { return m.PublicID == publicID })
	if i < 0 {
		return nil, fmt.Errorf("media %s on listing %s: %w", publicID, id, models.ErrNotFound)
	}
	removed := l.Media[i]
	l.Media = slices.Delete(l.Media, i, i+1)
	l.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, err
	}
	if err := s.Storage.DeleteFile(ctx, removed.PublicID, removed.Kind); err != nil {
		utils.GetLogger().Warn("failed to delete listing media", zap.String("publicID", removed.PublicID), zap.Error(err))
	}
	return l, nil
}
