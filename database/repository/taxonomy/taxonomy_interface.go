package taxonomyRepo

import (
	"context"

	"marketplace/models"
)

// TaxonomyRepository gives access to the sector → category → subcategory tree.
// The three level readers double as the taxonomy store's Loader.
type TaxonomyRepository interface {
	Sectors(ctx context.Context) ([]models.Sector, error)
	Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error)
	// SubCategories returns every subcategory of a category regardless of depth.
	SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error)

	GetSector(ctx context.Context, id string) (*models.Sector, error)
	GetCategory(ctx context.Context, id string) (*models.ServiceCategory, error)
	GetSubCategory(ctx context.Context, id string) (*models.ServiceSubCategory, error)

	CreateSector(ctx context.Context, s *models.Sector) error
	CreateCategory(ctx context.Context, c *models.ServiceCategory) error
	CreateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error

	UpdateSector(ctx context.Context, s *models.Sector) error
	UpdateCategory(ctx context.Context, c *models.ServiceCategory) error
	UpdateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error

	DeleteSector(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, id string) error
	DeleteSubCategory(ctx context.Context, id string) error

	// CountCategories counts the categories of a sector.
	CountCategories(ctx context.Context, sectorID string) (int64, error)
	// CountSubCategories counts all subcategories of a category.
	CountSubCategories(ctx context.Context, categoryID string) (int64, error)
	// CountChildren counts subcategories whose parent is parentID.
	CountChildren(ctx context.Context, parentID string) (int64, error)
}
