package taxonomy

import (
	"context"
	"fmt"

	"marketplace/models"
)

// Loader fetches one level of the taxonomy at a time.
type Loader interface {
	Sectors(ctx context.Context) ([]models.Sector, error)
	Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error)
	// SubCategories returns every subcategory of a category, all depths included.
	SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error)
}

var (
	ErrUnknownSector      = fmt.Errorf("unknown sector: %w", models.ErrNotFound)
	ErrUnknownCategory    = fmt.Errorf("unknown category: %w", models.ErrNotFound)
	ErrUnknownSubCategory = fmt.Errorf("unknown subcategory: %w", models.ErrNotFound)
)

// Path addresses a node by slug or ID, one value per level. Empty levels are unselected.
type Path struct {
	Sector      string
	Category    string
	SubCategory string
}

// Selection is a resolved Path. Trail holds the subcategory ancestors of
// SubCategory, outermost first.
type Selection struct {
	Sector      *models.Sector              `json:"sector,omitempty"`
	Category    *models.ServiceCategory     `json:"category,omitempty"`
	SubCategory *models.ServiceSubCategory  `json:"subCategory,omitempty"`
	Trail       []models.ServiceSubCategory `json:"trail,omitempty"`
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return s.Sector == nil }

// Path returns the slug path of the selection.
func (s Selection) Path() Path {
	var p Path
	if s.Sector != nil {
		p.Sector = s.Sector.Slug
	}
	if s.Category != nil {
		p.Category = s.Category.Slug
	}
	if s.SubCategory != nil {
		p.SubCategory = s.SubCategory.Slug
	}
	return p
}

// Breadcrumbs lists the selection from the sector down, including every
// intermediate subcategory. urlFor renders the link of each crumb.
func (s Selection) Breadcrumbs(urlFor func(Path) string) []models.Breadcrumb {
	if s.Sector == nil {
		return []models.Breadcrumb{}
	}
	crumb := func(level, id, name string, p Path) models.Breadcrumb {
		b := models.Breadcrumb{Level: level, ID: id, Name: name}
		switch {
		case p.SubCategory != "":
			b.Slug = p.SubCategory
		case p.Category != "":
			b.Slug = p.Category
		default:
			b.Slug = p.Sector
		}
		if urlFor != nil {
			b.URL = urlFor(p)
		}
		return b
	}

	p := Path{Sector: s.Sector.Slug}
	out := []models.Breadcrumb{crumb("sector", s.Sector.ID, s.Sector.Name, p)}
	if s.Category == nil {
		return out
	}
	p.Category = s.Category.Slug
	out = append(out, crumb("category", s.Category.ID, s.Category.Name, p))
	if s.SubCategory == nil {
		return out
	}
	for _, a := range s.Trail {
		p.SubCategory = a.Slug
		out = append(out, crumb("subcategory", a.ID, a.Name, p))
	}
	p.SubCategory = s.SubCategory.Slug
	return append(out, crumb("subcategory", s.SubCategory.ID, s.SubCategory.Name, p))
}
