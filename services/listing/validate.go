package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"marketplace/models"
	"marketplace/services/taxonomy"
)

const (
	minTitleLength = 5
	maxTitleLength = 120
	maxPackages    = 3
	maxMedia       = 10
	maxTags        = 10
)

// normalize trims the input and collapses duplicate tags.
func normalize(in models.ListingInput) models.ListingInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = "USD"
	}
	seen := map[string]bool{}
	tags := []string{}
	for _, t := range in.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	in.Tags = tags
	for i := range in.Packages {
		in.Packages[i].Name = strings.TrimSpace(in.Packages[i].Name)
	}
	return in
}

// validateInput checks field shapes and resolves the taxonomy references to
// canonical IDs. Packages may be empty on a draft.
func (s *DefaultListingService) validateInput(ctx context.Context, in *models.ListingInput) error {
	verr := &models.ValidationError{}

	if n := utf8.RuneCountInString(in.Title); n < minTitleLength || n > maxTitleLength {
		verr.Add("title", fmt.Sprintf("must be between %d and %d characters", minTitleLength, maxTitleLength))
	}
	if len(in.Packages) > maxPackages {
		verr.Add("packages", fmt.Sprintf("at most %d packages", maxPackages))
	}
	for i, p := range in.Packages {
		field := fmt.Sprintf("packages[%d]", i)
		if p.Name == "" {
			verr.Add(field+".name", "is required")
		}
		if p.Price <= 0 {
			verr.Add(field+".price", "must be greater than 0")
		}
		if p.DeliveryDays < 1 {
			verr.Add(field+".deliveryDays", "must be at least 1")
		}
	}
	if len(in.Tags) > maxTags {
		verr.Add("tags", fmt.Sprintf("at most %d tags", maxTags))
	}
	if len(in.Currency) != 3 {
		verr.Add("currency", "must be a three letter code")
	}

	if in.SectorID == "" {
		verr.Add("sectorId", "is required")
	}
	if in.CategoryID == "" {
		verr.Add("categoryId", "is required")
	}
	if in.SectorID != "" && in.CategoryID != "" {
		sel, err := s.Taxonomy.Resolve(ctx, taxonomy.Path{Sector: in.SectorID, Category: in.CategoryID, SubCategory: in.SubCategoryID})
		switch {
		case errors.Is(err, taxonomy.ErrUnknownSector):
			verr.Add("sectorId", "unknown sector")
		case errors.Is(err, taxonomy.ErrUnknownCategory):
			verr.Add("categoryId", "not a category of the sector")
		case errors.Is(err, taxonomy.ErrUnknownSubCategory):
			verr.Add("subCategoryId", "not a subcategory of the category")
		case err != nil:
			return err
		default:
			in.SectorID, in.CategoryID = sel.Sector.ID, sel.Category.ID
			if sel.SubCategory != nil {
				in.SubCategoryID = sel.SubCategory.ID
			}
		}
	}
	return verr.OrNil()
}

// publishable lists what a draft still lacks before it can go live.
func publishable(l *models.ServiceListing) error {
	verr := &models.ValidationError{}
	if l.Description == "" {
		verr.Add("description", "is required to publish")
	}
	if len(l.Packages) == 0 {
		verr.Add("packages", "at least one package is required to publish")
	}
	if utf8.RuneCountInString(l.Title) < minTitleLength {
		verr.Add("title", "is too short to publish")
	}
	return verr.OrNil()
}
