package models

import "time"

// Verification document kinds.
const (
	DocIdentity    = "identity"
	DocCertificate = "certificate"
	DocInsurance   = "insurance"
	DocLicense     = "license"
)

// Verification document statuses.
const (
	DocPending  = "pending"
	DocApproved = "approved"
	DocRejected = "rejected"
)

// IsValidDocumentKind reports whether k is an accepted document kind.
func IsValidDocumentKind(k string) bool {
	switch k {
	case DocIdentity, DocCertificate, DocInsurance, DocLicense:
		return true
	}
	return false
}

// VerificationDocument is a file a professional submits for admin review.
type VerificationDocument struct {
	ID              string     `bson:"id" json:"id"`
	ProfessionalID  string     `bson:"professionalId" json:"professionalId"`
	Kind            string     `bson:"kind" json:"kind"`
	FileName        string     `bson:"fileName" json:"fileName"`
	PublicID        string     `bson:"publicId" json:"-"`
	Status          string     `bson:"status" json:"status"`
	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	ReviewerID      string     `bson:"reviewerId,omitempty" json:"reviewerId,omitempty"`
	SubmittedAt     time.Time  `bson:"submittedAt" json:"submittedAt"`
	ReviewedAt      *time.Time `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
}

// DocumentRef points at an already uploaded document, used by the onboarding wizard.
type DocumentRef struct {
	Kind     string `json:"kind" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
	PublicID string `json:"publicId" binding:"required"`
}

// VerificationDecidedPayload is the background task payload emitted after an admin decision.
type VerificationDecidedPayload struct {
	DocumentID     string `json:"documentId"`
	ProfessionalID string `json:"professionalId"`
	Status         string `json:"status"`
}
