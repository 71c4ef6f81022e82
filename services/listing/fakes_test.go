package listing

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"marketplace/models"
	"marketplace/services/storage"
)

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]models.ServiceListing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]models.ServiceListing{}}
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	l.Media = slices.Clone(l.Media)
	return &l, nil
}

func (r *fakeListingRepo) ListByProfessional(ctx context.Context, professionalID string, page, pageSize int) ([]models.ServiceListing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServiceListing
	for _, l := range r.listings {
		if l.ProfessionalID == professionalID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) Published(ctx context.Context) ([]models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServiceListing
	for _, l := range r.listings {
		if l.Status == models.ListingPublished {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) CountByTaxonomy(ctx context.Context, field, id string) (int64, error) {
	return 0, nil
}

func (r *fakeListingRepo) Create(ctx context.Context, l *models.ServiceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ID] = *l
	return nil
}

func (r *fakeListingRepo) Update(ctx context.Context, l *models.ServiceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[l.ID]; !ok {
		return models.ErrNotFound
	}
	r.listings[l.ID] = *l
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) SetVerifiedForProfessional(ctx context.Context, professionalID string, verified bool) (int64, error) {
	return 0, nil
}

func (r *fakeListingRepo) RenameProfessional(ctx context.Context, professionalID, name string) error {
	return nil
}

func (r *fakeListingRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	return nil
}

type fakeProfessionalRepo struct {
	byUser map[string]models.Professional
}

func (r *fakeProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	for _, p := range r.byUser {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.Professional, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfessionalRepo) Create(ctx context.Context, p *models.Professional) error { return nil }
func (r *fakeProfessionalRepo) Update(ctx context.Context, p *models.Professional) error { return nil }
func (r *fakeProfessionalRepo) SetVerification(ctx context.Context, id, status string, verified bool) error {
	return nil
}
func (r *fakeProfessionalRepo) DeleteByUserID(ctx context.Context, userID string) error { return nil }

type fakeStorage struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, r io.Reader, fileName, destFolder, resourceType string) (*storage.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := destFolder + "/" + fileName
	s.uploaded = append(s.uploaded, id)
	return &storage.UploadResult{PublicID: id, URL: "https://cdn.test/" + id, ResourceType: resourceType}, nil
}

func (s *fakeStorage) UploadEncryptedFile(ctx context.Context, r io.Reader, fileName, destFolder, key string) (*storage.UploadResult, error) {
	return s.UploadFile(ctx, r, fileName, destFolder, storage.ResourceRaw)
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID, resourceType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	return "https://cdn.test/" + publicID, nil
}

func (s *fakeStorage) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "https://cdn.test/signed/" + publicID, nil
}

func (s *fakeStorage) DownloadDecryptedFile(ctx context.Context, publicID, encryptionKey string) ([]byte, error) {
	return []byte("decrypted:" + publicID), nil
}

type taxonomyLoader struct{}

func (taxonomyLoader) Sectors(ctx context.Context) ([]models.Sector, error) {
	return []models.Sector{{ID: "s1", Slug: "home-garden"}, {ID: "s2", Slug: "business"}}, nil
}

func (taxonomyLoader) Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error) {
	if sectorID == "s1" {
		return []models.ServiceCategory{{ID: "c1", SectorID: "s1", Slug: "plumbing"}}, nil
	}
	return []models.ServiceCategory{{ID: "c9", SectorID: "s2", Slug: "accounting"}}, nil
}

func (taxonomyLoader) SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	if categoryID == "c1" {
		return []models.ServiceSubCategory{{ID: "sc1", CategoryID: "c1", Slug: "pipes"}}, nil
	}
	return nil, nil
}
