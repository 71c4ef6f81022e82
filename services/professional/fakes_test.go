package professional

import (
	"context"
	"io"
	"sync"
	"time"

	documentRepo "marketplace/database/repository/document"
	"marketplace/models"
	"marketplace/services/storage"
)

type fakeProfessionalRepo struct {
	mu   sync.Mutex
	pros map[string]models.Professional
}

func (r *fakeProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pros {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pros[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pros[p.UserID] = *p
	return nil
}

func (r *fakeProfessionalRepo) Update(ctx context.Context, p *models.Professional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pros[p.UserID] = *p
	return nil
}

func (r *fakeProfessionalRepo) SetVerification(ctx context.Context, id, status string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, p := range r.pros {
		if p.ID == id {
			p.VerificationStatus, p.Verified = status, verified
			r.pros[k] = p
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeProfessionalRepo) DeleteByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pros, userID)
	return nil
}

// fakeListingRepo only records the calls the profile service makes.
type fakeListingRepo struct {
	renamed  map[string]string
	verified map[string]bool
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*models.ServiceListing, error) {
	return nil, models.ErrNotFound
}
func (r *fakeListingRepo) ListByProfessional(ctx context.Context, professionalID string, page, pageSize int) ([]models.ServiceListing, int64, error) {
	return nil, 0, nil
}
func (r *fakeListingRepo) Published(ctx context.Context) ([]models.ServiceListing, error) {
	return nil, nil
}
func (r *fakeListingRepo) CountByTaxonomy(ctx context.Context, field, id string) (int64, error) {
	return 0, nil
}
func (r *fakeListingRepo) Create(ctx context.Context, l *models.ServiceListing) error { return nil }
func (r *fakeListingRepo) Update(ctx context.Context, l *models.ServiceListing) error { return nil }
func (r *fakeListingRepo) Delete(ctx context.Context, id string) error                { return nil }

func (r *fakeListingRepo) SetVerifiedForProfessional(ctx context.Context, professionalID string, verified bool) (int64, error) {
	r.verified[professionalID] = verified
	return 2, nil
}

func (r *fakeListingRepo) RenameProfessional(ctx context.Context, professionalID, name string) error {
	r.renamed[professionalID] = name
	return nil
}

func (r *fakeListingRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	return nil
}

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs []models.VerificationDocument
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.VerificationDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeDocumentRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.VerificationDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.VerificationDocument
	for _, d := range r.docs {
		if d.ProfessionalID == professionalID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context, status string, page, pageSize int) ([]models.VerificationDocument, int64, error) {
	return nil, 0, nil
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.VerificationDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *doc)
	return nil
}

func (r *fakeDocumentRepo) Decide(ctx context.Context, id string, d documentRepo.Decision) (*models.VerificationDocument, error) {
	return nil, models.ErrNotFound
}

func (r *fakeDocumentRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	return nil
}

type fakeStorage struct {
	keys []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, r io.Reader, fileName, destFolder, resourceType string) (*storage.UploadResult, error) {
	return &storage.UploadResult{PublicID: destFolder + "/" + fileName, ResourceType: resourceType}, nil
}

func (s *fakeStorage) UploadEncryptedFile(ctx context.Context, r io.Reader, fileName, destFolder, key string) (*storage.UploadResult, error) {
	s.keys = append(s.keys, key)
	return &storage.UploadResult{PublicID: destFolder + "/" + fileName, ResourceType: storage.ResourceRaw}, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID, resourceType string) error { return nil }

func (s *fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	return "", nil
}

func (s *fakeStorage) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "", nil
}

func (s *fakeStorage) DownloadDecryptedFile(ctx context.Context, publicID, encryptionKey string) ([]byte, error) {
	return []byte("decrypted:" + publicID), nil
}
