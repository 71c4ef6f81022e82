package onboarding

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	documentRepo "marketplace/database/repository/document"
	"marketplace/models"
	"marketplace/services/storage"

	"go.mongodb.org/mongo-driver/bson"
)

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memKV) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memKV) DelPrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) List(ctx context.Context, f models.UserFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	if _, err := r.GetByEmail(ctx, u.Email); err == nil {
		return models.ErrConflict
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error { return nil }

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeProfessionalRepo struct {
	pros      map[string]models.Professional
	createErr error
}

func (r *fakeProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	return nil, models.ErrNotFound
}

func (r *fakeProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.Professional, error) {
	p, ok := r.pros[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.pros[p.UserID] = *p
	return nil
}

func (r *fakeProfessionalRepo) Update(ctx context.Context, p *models.Professional) error { return nil }
func (r *fakeProfessionalRepo) SetVerification(ctx context.Context, id, status string, verified bool) error {
	return nil
}

func (r *fakeProfessionalRepo) DeleteByUserID(ctx context.Context, userID string) error {
	delete(r.pros, userID)
	return nil
}

type fakeDocumentRepo struct {
	docs []models.VerificationDocument
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.VerificationDocument, error) {
	return nil, models.ErrNotFound
}
func (r *fakeDocumentRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.VerificationDocument, error) {
	return r.docs, nil
}
func (r *fakeDocumentRepo) List(ctx context.Context, status string, page, pageSize int) ([]models.VerificationDocument, int64, error) {
	return nil, 0, nil
}
func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.VerificationDocument) error {
	r.docs = append(r.docs, *doc)
	return nil
}
func (r *fakeDocumentRepo) Decide(ctx context.Context, id string, d documentRepo.Decision) (*models.VerificationDocument, error) {
	return nil, models.ErrNotFound
}
func (r *fakeDocumentRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	r.docs = nil
	return nil
}

// fakeAccounts checks email availability against the fake user repo.
type fakeAccounts struct {
	users *fakeUserRepo
}

func (a fakeAccounts) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := a.users.GetByEmail(ctx, email)
	return err != nil, nil
}

func (a fakeAccounts) IssueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	return &models.AuthResponse{ID: u.ID, Token: "token-" + u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

type fakeStorage struct{}

func (fakeStorage) UploadFile(ctx context.Context, r io.Reader, fileName, destFolder, resourceType string) (*storage.UploadResult, error) {
	return &storage.UploadResult{PublicID: destFolder + "/" + fileName}, nil
}
func (fakeStorage) UploadEncryptedFile(ctx context.Context, r io.Reader, fileName, destFolder, key string) (*storage.UploadResult, error) {
	return &storage.UploadResult{PublicID: destFolder + "/" + fileName, ResourceType: storage.ResourceRaw}, nil
}
func (fakeStorage) DeleteFile(ctx context.Context, publicID, resourceType string) error { return nil }
func (fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	return "", nil
}
func (fakeStorage) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "", nil
}

func (fakeStorage) DownloadDecryptedFile(ctx context.Context, publicID, encryptionKey string) ([]byte, error) {
	return []byte("decrypted:" + publicID), nil
}

type taxonomyLoader struct{}

func (taxonomyLoader) Sectors(ctx context.Context) ([]models.Sector, error) {
	return []models.Sector{{ID: "s1", Slug: "home-garden"}, {ID: "s2", Slug: "events"}}, nil
}

func (taxonomyLoader) Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error) {
	if sectorID == "s1" {
		return []models.ServiceCategory{{ID: "c1", SectorID: "s1", Slug: "plumbing"}}, nil
	}
	return []models.ServiceCategory{{ID: "c2", SectorID: "s2", Slug: "catering"}}, nil
}

func (taxonomyLoader) SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	return nil, nil
}
