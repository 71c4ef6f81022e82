package models

import "time"

// Onboarding wizard steps, in order.
const (
	StepAccount   = "account"
	StepProfile   = "profile"
	StepServices  = "services"
	StepDocuments = "documents"
	StepReview    = "review"
)

// OnboardingSteps lists the wizard steps in the order they must be completed.
var OnboardingSteps = []string{StepAccount, StepProfile, StepServices, StepDocuments, StepReview}

type OnboardingAccount struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password,omitempty" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

type OnboardingProfile struct {
	DisplayName string   `json:"displayName" binding:"required"`
	Headline    string   `json:"headline"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills"`
	Languages   []string `json:"languages"`
	HourlyRate  float64  `json:"hourlyRate"`
}

// ServiceSelection is one taxonomy path the professional offers services under.
type ServiceSelection struct {
	SectorID      string `json:"sectorId" binding:"required"`
	CategoryID    string `json:"categoryId" binding:"required"`
	SubCategoryID string `json:"subCategoryId"`
}

type OnboardingServices struct {
	Selections []ServiceSelection `json:"selections" binding:"required"`
}

type OnboardingDocuments struct {
	Documents []DocumentRef `json:"documents"`
}

// OnboardingSession is the wizard state kept in redis between steps.
type OnboardingSession struct {
	ID            string               `json:"id"`
	Account       *OnboardingAccount   `json:"account,omitempty"`
	PasswordHash  string               `json:"passwordHash,omitempty"`
	Profile       *OnboardingProfile   `json:"profile,omitempty"`
	Services      *OnboardingServices  `json:"services,omitempty"`
	Documents     *OnboardingDocuments `json:"documents,omitempty"`
	Uploaded      []DocumentRef        `json:"uploaded,omitempty"`
	Completed     []string             `json:"completed"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// IsCompleted reports whether step has been submitted.
func (s *OnboardingSession) IsCompleted(step string) bool {
	for _, c := range s.Completed {
		if c == step {
			return true
		}
	}
	return false
}

// MarkCompleted records step once.
func (s *OnboardingSession) MarkCompleted(step string) {
	if !s.IsCompleted(step) {
		s.Completed = append(s.Completed, step)
	}
}

// OnboardingState is the client-facing view of a session; secrets are stripped.
type OnboardingState struct {
	SessionID string               `json:"sessionId"`
	NextStep  string               `json:"nextStep"`
	Completed []string             `json:"completed"`
	Account   *OnboardingAccount   `json:"account,omitempty"`
	Profile   *OnboardingProfile   `json:"profile,omitempty"`
	Services  *OnboardingServices  `json:"services,omitempty"`
	Documents *OnboardingDocuments `json:"documents,omitempty"`
	Uploaded  []DocumentRef        `json:"uploaded,omitempty"`
	ExpiresAt time.Time            `json:"expiresAt"`
}
