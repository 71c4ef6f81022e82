package admin

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	documentRepo "marketplace/database/repository/document"
	"marketplace/models"
	"marketplace/services/storage"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	users   map[string]models.User
	updates []bson.M
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) List(ctx context.Context, f models.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.users {
		if f.Role == "" || u.Role == f.Role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return nil }

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	u, ok := r.users[id]
	if !ok {
		return models.ErrNotFound
	}
	if v, ok := fields["role"]; ok {
		u.Role = v.(string)
	}
	if v, ok := fields["status"]; ok {
		u.Status = v.(string)
	}
	r.users[id] = u
	r.updates = append(r.updates, fields)
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeProfessionalRepo struct {
	pros map[string]models.Professional
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

func (r *fakeProfessionalRepo) Create(ctx context.Context, p *models.Professional) error { return nil }
func (r *fakeProfessionalRepo) Update(ctx context.Context, p *models.Professional) error { return nil }
func (r *fakeProfessionalRepo) SetVerification(ctx context.Context, id, status string, verified bool) error {
	return nil
}

func (r *fakeProfessionalRepo) DeleteByUserID(ctx context.Context, userID string) error {
	delete(r.pros, userID)
	return nil
}

type fakeListingRepo struct {
	listings []models.ServiceListing
	counts   map[string]int64
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*models.ServiceListing, error) {
	return nil, models.ErrNotFound
}

func (r *fakeListingRepo) ListByProfessional(ctx context.Context, professionalID string, page, pageSize int) ([]models.ServiceListing, int64, error) {
	var out []models.ServiceListing
	for _, l := range r.listings {
		if l.ProfessionalID == professionalID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) Published(ctx context.Context) ([]models.ServiceListing, error) {
	return nil, nil
}

func (r *fakeListingRepo) CountByTaxonomy(ctx context.Context, field, id string) (int64, error) {
	return r.counts[field+"="+id], nil
}

func (r *fakeListingRepo) Create(ctx context.Context, l *models.ServiceListing) error { return nil }
func (r *fakeListingRepo) Update(ctx context.Context, l *models.ServiceListing) error { return nil }
func (r *fakeListingRepo) Delete(ctx context.Context, id string) error                { return nil }
func (r *fakeListingRepo) SetVerifiedForProfessional(ctx context.Context, professionalID string, verified bool) (int64, error) {
	return 0, nil
}
func (r *fakeListingRepo) RenameProfessional(ctx context.Context, professionalID, name string) error {
	return nil
}

func (r *fakeListingRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	var kept []models.ServiceListing
	for _, l := range r.listings {
		if l.ProfessionalID != professionalID {
			kept = append(kept, l)
		}
	}
	r.listings = kept
	return nil
}

type fakeDocumentRepo struct {
	docs map[string]models.VerificationDocument
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.VerificationDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDocumentRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.VerificationDocument, error) {
	var out []models.VerificationDocument
	for _, d := range r.docs {
		if d.ProfessionalID == professionalID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context, status string, page, pageSize int) ([]models.VerificationDocument, int64, error) {
	var out []models.VerificationDocument
	for _, d := range r.docs {
		if status == "" || d.Status == status {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.VerificationDocument) error {
	r.docs[doc.ID] = *doc
	return nil
}

func (r *fakeDocumentRepo) Decide(ctx context.Context, id string, d documentRepo.Decision) (*models.VerificationDocument, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if doc.Status != models.DocPending {
		return nil, models.ErrConflict
	}
	doc.Status, doc.RejectionReason, doc.ReviewerID = d.Status, d.Reason, d.ReviewerID
	at := d.At
	doc.ReviewedAt = &at
	r.docs[id] = doc
	return &doc, nil
}

func (r *fakeDocumentRepo) DeleteByProfessional(ctx context.Context, professionalID string) error {
	for id, d := range r.docs {
		if d.ProfessionalID == professionalID {
			delete(r.docs, id)
		}
	}
	return nil
}

type fakeTaxonomyRepo struct {
	sectors    map[string]models.Sector
	categories map[string]models.ServiceCategory
	subs       map[string]models.ServiceSubCategory
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{
		sectors:    map[string]models.Sector{},
		categories: map[string]models.ServiceCategory{},
		subs:       map[string]models.ServiceSubCategory{},
	}
}

func (r *fakeTaxonomyRepo) Sectors(ctx context.Context) ([]models.Sector, error) {
	var out []models.Sector
	for _, s := range r.sectors {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeTaxonomyRepo) Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error) {
	var out []models.ServiceCategory
	for _, c := range r.categories {
		if c.SectorID == sectorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeTaxonomyRepo) SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	var out []models.ServiceSubCategory
	for _, sc := range r.subs {
		if sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (r *fakeTaxonomyRepo) GetSector(ctx context.Context, id string) (*models.Sector, error) {
	s, ok := r.sectors[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &s, nil
}

func (r *fakeTaxonomyRepo) GetCategory(ctx context.Context, id string) (*models.ServiceCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (r *fakeTaxonomyRepo) GetSubCategory(ctx context.Context, id string) (*models.ServiceSubCategory, error) {
	sc, ok := r.subs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &sc, nil
}

func (r *fakeTaxonomyRepo) CreateSector(ctx context.Context, s *models.Sector) error {
	for _, existing := range r.sectors {
		if existing.Slug == s.Slug {
			return models.ErrConflict
		}
	}
	r.sectors[s.ID] = *s
	return nil
}

func (r *fakeTaxonomyRepo) CreateCategory(ctx context.Context, c *models.ServiceCategory) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeTaxonomyRepo) CreateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error {
	r.subs[sc.ID] = *sc
	return nil
}

func (r *fakeTaxonomyRepo) UpdateSector(ctx context.Context, s *models.Sector) error {
	r.sectors[s.ID] = *s
	return nil
}

func (r *fakeTaxonomyRepo) UpdateCategory(ctx context.Context, c *models.ServiceCategory) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeTaxonomyRepo) UpdateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error {
	r.subs[sc.ID] = *sc
	return nil
}

func (r *fakeTaxonomyRepo) DeleteSector(ctx context.Context, id string) error {
	delete(r.sectors, id)
	return nil
}

func (r *fakeTaxonomyRepo) DeleteCategory(ctx context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeTaxonomyRepo) DeleteSubCategory(ctx context.Context, id string) error {
	delete(r.subs, id)
	return nil
}

func (r *fakeTaxonomyRepo) CountCategories(ctx context.Context, sectorID string) (int64, error) {
	cs, _ := r.Categories(ctx, sectorID)
	return int64(len(cs)), nil
}

func (r *fakeTaxonomyRepo) CountSubCategories(ctx context.Context, categoryID string) (int64, error) {
	subs, _ := r.SubCategories(ctx, categoryID)
	return int64(len(subs)), nil
}

func (r *fakeTaxonomyRepo) CountChildren(ctx context.Context, parentID string) (int64, error) {
	var n int64
	for _, sc := range r.subs {
		if sc.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

type fakeRevoker struct {
	revoked []string
}

func (r *fakeRevoker) Revoke(ctx context.Context, userID string) error {
	r.revoked = append(r.revoked, userID)
	return nil
}

type fakeVerifier struct {
	recomputed []string
}

func (v *fakeVerifier) RecomputeVerification(ctx context.Context, professionalID string) (string, error) {
	v.recomputed = append(v.recomputed, professionalID)
	return models.VerificationVerified, nil
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

type fakeTree struct {
	invalidated []string
	descendants map[string][]string
}

func (t *fakeTree) Invalidate(sectorID string) {
	t.invalidated = append(t.invalidated, sectorID)
}

func (t *fakeTree) Descendants(ctx context.Context, categoryID, subID string) ([]string, error) {
	if d, ok := t.descendants[subID]; ok {
		return d, nil
	}
	return []string{subID}, nil
}

type fakeCache struct {
	calls [][]string
}

func (c *fakeCache) Invalidate(ctx context.Context, sectorID string, categoryIDs ...string) error {
	c.calls = append(c.calls, append([]string{sectorID}, categoryIDs...))
	return nil
}

type fakeStorage struct {
	deleted []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, r io.Reader, fileName, destFolder, resourceType string) (*storage.UploadResult, error) {
	return nil, errors.New("not used")
}
func (s *fakeStorage) UploadEncryptedFile(ctx context.Context, r io.Reader, fileName, destFolder, key string) (*storage.UploadResult, error) {
	return nil, errors.New("not used")
}
func (s *fakeStorage) DeleteFile(ctx context.Context, publicID, resourceType string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}
func (s *fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	return "https://cdn.test/" + publicID, nil
}
func (s *fakeStorage) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "https://cdn.test/signed/" + resourceType + "/" + publicID, nil
}
func (s *fakeStorage) DownloadDecryptedFile(ctx context.Context, publicID, encryptionKey string) ([]byte, error) {
	return []byte("plain:" + encryptionKey), nil
}
