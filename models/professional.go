package models

import "time"

// Verification statuses of a professional.
const (
	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
	VerificationRejected   = "rejected"
)

// Professional is the public profile attached to a user with the professional role.
type Professional struct {
	ID                 string    `bson:"id" json:"id"`
	UserID             string    `bson:"userId" json:"userId"`
	DisplayName        string    `bson:"displayName" json:"displayName"`
	Headline           string    `bson:"headline,omitempty" json:"headline,omitempty"`
	Bio                string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Location           string    `bson:"location,omitempty" json:"location,omitempty"`
	Skills             []string  `bson:"skills,omitempty" json:"skills,omitempty"`
	Languages          []string  `bson:"languages,omitempty" json:"languages,omitempty"`
	HourlyRate         float64   `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	AvatarURL          string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	SectorIDs          []string  `bson:"sectorIds,omitempty" json:"sectorIds,omitempty"`
	Verified           bool      `bson:"verified" json:"verified"`
	VerificationStatus string    `bson:"verificationStatus" json:"verificationStatus"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfilePatch carries the optional fields of a profile update.
type ProfilePatch struct {
	DisplayName *string   `json:"displayName"`
	Headline    *string   `json:"headline"`
	Bio         *string   `json:"bio"`
	Location    *string   `json:"location"`
	Skills      *[]string `json:"skills"`
	Languages   *[]string `json:"languages"`
	HourlyRate  *float64  `json:"hourlyRate"`
	AvatarURL   *string   `json:"avatarUrl"`
}
