package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"

	"marketplace/models"
	"marketplace/services/admin"
	"marketplace/services/catalog"
	"marketplace/services/listing"
	"marketplace/services/navigation"
	"marketplace/services/onboarding"
	"marketplace/services/professional"
	"marketplace/services/taxonomy"
	"marketplace/utils"
)

// fakeUsers resolves a fixed set of bearer tokens.
type fakeUsers struct {
	mu         sync.Mutex
	loggedOut  []string
	registered []models.RegisterRequest
}

var testTokens = map[string]utils.TokenClaims{
	"admin-token":  {Subject: "admin-1", Role: models.RoleAdmin},
	"pro-token":    {Subject: "pro-1", Role: models.RoleProfessional},
	"client-token": {Subject: "client-1", Role: models.RoleClient},
}

func (f *fakeUsers) Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error) {
	claims, ok := testTokens[token]
	if !ok {
		return nil, models.ErrUnauthorized
	}
	return &claims, nil
}

func (f *fakeUsers) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Email == "taken@example.com" {
		return nil, models.ErrConflict
	}
	f.registered = append(f.registered, req)
	return &models.AuthResponse{ID: "new-user", Token: "t", Email: req.Email, Role: models.RoleClient}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if password != "Secret#123" {
		return nil, models.ErrUnauthorized
	}
	return &models.AuthResponse{ID: "client-1", Token: "client-token", Email: email, Role: models.RoleClient}, nil
}

func (f *fakeUsers) Logout(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = append(f.loggedOut, userID)
	return nil
}

func (f *fakeUsers) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current != "Secret#123" {
		return models.ErrUnauthorized
	}
	return nil
}

func (f *fakeUsers) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID, Name: "Someone", Role: models.RoleClient, Status: models.UserActive}, nil
}

func (f *fakeUsers) IssueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	return &models.AuthResponse{ID: u.ID, Token: "t", Role: u.Role}, nil
}

func (f *fakeUsers) Revoke(ctx context.Context, userID string) error { return nil }

type fakeBrowser struct {
	last catalog.Filter
}

func (f *fakeBrowser) Browse(ctx context.Context, flt catalog.Filter) (*catalog.BrowseResult, error) {
	f.last = flt
	if flt.Sector == "nowhere" {
		return nil, taxonomy.ErrUnknownSector
	}
	return &catalog.BrowseResult{Items: []models.ServiceListing{}, Page: 1, PageSize: 12, Filter: flt}, nil
}

func (f *fakeBrowser) Defaults() catalog.Defaults {
	return catalog.Defaults{PageSize: 12, MaxPageSize: 48}
}

type fakeMenu struct{}

func (fakeMenu) Menu(ctx context.Context) ([]navigation.MenuSector, error) {
	return []navigation.MenuSector{{ID: "s1", Name: "Home & Garden", Slug: "home-garden", URL: "/api/services/home-garden"}}, nil
}

type fakeTaxonomy struct{}

func (fakeTaxonomy) Sectors(ctx context.Context) ([]models.Sector, error) {
	return []models.Sector{{ID: "s1", Name: "Home & Garden", Slug: "home-garden"}}, nil
}

func (fakeTaxonomy) Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error) {
	return []models.ServiceCategory{{ID: "c1", SectorID: sectorID, Name: "Plumbing", Slug: "plumbing"}}, nil
}

func (fakeTaxonomy) Children(ctx context.Context, categoryID, parentID string) ([]models.ServiceSubCategory, error) {
	switch parentID {
	case "":
		return []models.ServiceSubCategory{{ID: "sc1", CategoryID: categoryID, Name: "Pipes", Slug: "pipes"}}, nil
	case "sc1":
		return []models.ServiceSubCategory{{ID: "sc2", CategoryID: categoryID, ParentID: "sc1", Name: "Leaks", Slug: "leaks"}}, nil
	}
	return nil, taxonomy.ErrUnknownSubCategory
}

// fakeListings implements the calls the router makes; the rest panic.
type fakeListings struct {
	listing.ListingService
	removed  string
	uploaded []byte
	fileName string
}

func (f *fakeListings) Get(ctx context.Context, id string) (*models.ServiceListing, error) {
	if id != "l1" {
		return nil, models.ErrNotFound
	}
	return &models.ServiceListing{ID: "l1", Title: "Leak repair", Status: models.ListingPublished}, nil
}

func (f *fakeListings) AddMedia(ctx context.Context, userID, id string, r io.Reader, fileName string) (*models.ServiceListing, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.uploaded, f.fileName = data, fileName
	return &models.ServiceListing{ID: id, Media: []models.Media{{PublicID: "listings/pro-1/m1", Kind: models.MediaImage}}}, nil
}

func (f *fakeListings) RemoveMedia(ctx context.Context, userID, id, publicID string) (*models.ServiceListing, error) {
	f.removed = publicID
	return &models.ServiceListing{ID: id}, nil
}

func (f *fakeListings) ListMine(ctx context.Context, userID string, page, pageSize int) (models.Page[models.ServiceListing], error) {
	return models.NewPage([]models.ServiceListing{}, 0, page, pageSize), nil
}

type fakeOnboarding struct {
	onboarding.OnboardingService
	payload json.RawMessage
}

func (f *fakeOnboarding) Start(ctx context.Context, account models.OnboardingAccount) (*models.OnboardingState, error) {
	return &models.OnboardingState{SessionID: "sess-1", NextStep: models.StepProfile, Completed: []string{models.StepAccount}}, nil
}

func (f *fakeOnboarding) SubmitStep(ctx context.Context, sessionID, step string, payload json.RawMessage) (*models.OnboardingState, error) {
	if step == models.StepServices {
		return nil, &onboarding.StepOrderError{Step: step, Missing: models.StepProfile}
	}
	f.payload = payload
	return &models.OnboardingState{SessionID: sessionID, NextStep: models.StepServices}, nil
}

type fakeProfessional struct {
	professional.ProfessionalService
}

func (fakeProfessional) GetProfile(ctx context.Context, userID string) (*models.Professional, error) {
	return &models.Professional{ID: "p1", UserID: userID, DisplayName: "Jane"}, nil
}

type fakeAdmin struct {
	admin.AdminService
}

func (fakeAdmin) RejectDocument(ctx context.Context, reviewerID, id, reason string) (*models.VerificationDocument, error) {
	if reason == "" {
		verr := &models.ValidationError{}
		verr.Add("reason", "is required")
		return nil, verr
	}
	return &models.VerificationDocument{ID: id, Status: models.DocRejected, RejectionReason: reason, ReviewerID: reviewerID}, nil
}

func (fakeAdmin) DocumentFile(ctx context.Context, id string) (*models.VerificationDocument, []byte, error) {
	return &models.VerificationDocument{ID: id, FileName: "passport.pdf"}, bytes.Clone(pdfBytes), nil
}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
