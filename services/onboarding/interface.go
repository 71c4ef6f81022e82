package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	documentRepo "marketplace/database/repository/document"
	professionalRepo "marketplace/database/repository/professional"
	userRepo "marketplace/database/repository/user"
	"marketplace/models"
	"marketplace/services/storage"
	"marketplace/services/taxonomy"
	"marketplace/utils"
)

// OnboardingService drives the professional registration wizard.
type OnboardingService interface {
	// Start validates the account step and opens a session.
	Start(ctx context.Context, account models.OnboardingAccount) (*models.OnboardingState, error)
	// SubmitStep stores the payload of one step. Every earlier step must be complete.
	SubmitStep(ctx context.Context, sessionID, step string, payload json.RawMessage) (*models.OnboardingState, error)
	// UploadDocument encrypts and stores a file for the documents step.
	UploadDocument(ctx context.Context, sessionID, kind string, r io.Reader, fileName string) (*models.DocumentRef, error)
	State(ctx context.Context, sessionID string) (*models.OnboardingState, error)
	// Finalize creates the account, profile and documents and signs the professional in.
	Finalize(ctx context.Context, sessionID string) (*models.AuthResponse, error)
}

// Accounts is the slice of the user service the wizard needs.
type Accounts interface {
	EmailAvailable(ctx context.Context, email string) (bool, error)
	IssueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error)
}

// Resolver checks taxonomy selections.
type Resolver interface {
	Resolve(ctx context.Context, p taxonomy.Path) (taxonomy.Selection, error)
}

// StepOrderError reports a step submitted before the steps it depends on.
type StepOrderError struct {
	Step    string
	Missing string
}

func (e *StepOrderError) Error() string {
	return fmt.Sprintf("step %q requires step %q to be completed first", e.Step, e.Missing)
}

func (e *StepOrderError) Unwrap() error { return models.ErrConflict }

type DefaultOnboardingService struct {
	Sessions      utils.KVStore
	Users         userRepo.UserRepository
	Professionals professionalRepo.ProfessionalRepository
	Documents     documentRepo.DocumentRepository
	Accounts      Accounts
	Taxonomy      Resolver
	Storage       storage.StorageService
	EncryptionKey string
	TTL           time.Duration
}

func NewOnboardingService(
	sessions utils.KVStore,
	users userRepo.UserRepository,
	professionals professionalRepo.ProfessionalRepository,
	documents documentRepo.DocumentRepository,
	accounts Accounts,
	resolver Resolver,
	store storage.StorageService,
	encryptionKey string,
) *DefaultOnboardingService {
	return &DefaultOnboardingService{
		Sessions:      sessions,
		Users:         users,
		Professionals: professionals,
		Documents:     documents,
		Accounts:      accounts,
		Taxonomy:      resolver,
		Storage:       store,
		EncryptionKey: encryptionKey,
		TTL:           utils.OnboardingSessionTTL,
	}
}
