package professional

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"marketplace/models"
	"marketplace/utils"

	"go.uber.org/zap"
)

const (
	maxDisplayName = 80
	maxHeadline    = 120
	maxBio         = 2000
	maxSkills      = 20
	maxLanguages   = 10
)

// ValidateProfile checks the editable fields of a profile. The onboarding
// wizard runs it on the profile step too.
func ValidateProfile(p *models.Professional) error {
	verr := &models.ValidationError{}
	if n := utf8.RuneCountInString(p.DisplayName); n < 2 || n > maxDisplayName {
		verr.Add("displayName", fmt.Sprintf("must be between 2 and %d characters", maxDisplayName))
	}
	if utf8.RuneCountInString(p.Headline) > maxHeadline {
		verr.Add("headline", fmt.Sprintf("at most %d characters", maxHeadline))
	}
	if utf8.RuneCountInString(p.Bio) > maxBio {
		verr.Add("bio", fmt.Sprintf("at most %d characters", maxBio))
	}
	if len(p.Skills) > maxSkills {
		verr.Add("skills", fmt.Sprintf("at most %d skills", maxSkills))
	}
	if len(p.Languages) > maxLanguages {
		verr.Add("languages", fmt.Sprintf("at most %d languages", maxLanguages))
	}
	if p.HourlyRate < 0 {
		verr.Add("hourlyRate", "must not be negative")
	}
	if p.AvatarURL != "" && !strings.HasPrefix(p.AvatarURL, "https://") {
		verr.Add("avatarUrl", "must be an https URL")
	}
	return verr.OrNil()
}

// CleanList trims entries and drops blanks and case-insensitive duplicates.
func CleanList(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func (s *DefaultProfessionalService) GetProfile(ctx context.Context, userID string) (*models.Professional, error) {
	return s.Repo.GetByUserID(ctx, userID)
}

func (s *DefaultProfessionalService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Professional, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previousName := p.DisplayName

	if patch.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.Headline != nil {
		p.Headline = strings.TrimSpace(*patch.Headline)
	}
	if patch.Bio != nil {
		p.Bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.Location != nil {
		p.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Skills != nil {
		p.Skills = CleanList(*patch.Skills)
	}
	if patch.Languages != nil {
		p.Languages = CleanList(*patch.Languages)
	}
	if patch.HourlyRate != nil {
		p.HourlyRate = *patch.HourlyRate
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*patch.AvatarURL)
	}
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if p.DisplayName != previousName {
		// Listings carry a copy of the name for catalog search.
		if err := s.Listings.RenameProfessional(ctx, p.ID, p.DisplayName); err != nil {
			utils.GetLogger().Error("UpdateProfile: failed to rename listings", zap.String("professionalID", p.ID), zap.Error(err))
			return nil, err
		}
	}
	return p, nil
}
