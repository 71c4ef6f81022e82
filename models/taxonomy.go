package models

import "time"

// Sector is the top-level taxonomy node (e.g. "Home & Garden").
type Sector struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	SortOrder   int       `bson:"sortOrder" json:"sortOrder"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ServiceCategory is the second-level taxonomy node under a sector.
type ServiceCategory struct {
	ID          string    `bson:"id" json:"id"`
	SectorID    string    `bson:"sectorId" json:"sectorId"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	SortOrder   int       `bson:"sortOrder" json:"sortOrder"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ServiceSubCategory is a third-level (or deeper) taxonomy node. ParentID is
// empty for a direct child of the category, otherwise it names another
// subcategory of the same category.
type ServiceSubCategory struct {
	ID         string    `bson:"id" json:"id"`
	CategoryID string    `bson:"categoryId" json:"categoryId"`
	ParentID   string    `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Name       string    `bson:"name" json:"name"`
	Slug       string    `bson:"slug" json:"slug"`
	SortOrder  int       `bson:"sortOrder" json:"sortOrder"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Breadcrumb is one step of the path from a sector down to the selected node.
type Breadcrumb struct {
	Level string `json:"level"` // sector, category or subcategory
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
}

// SectorInput is the admin payload for creating or updating a sector.
type SectorInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sortOrder"`
}

// CategoryInput is the admin payload for a category. SectorID is fixed after creation.
type CategoryInput struct {
	SectorID    string `json:"sectorId"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

// SubCategoryInput is the admin payload for a subcategory. CategoryID is fixed after creation.
type SubCategoryInput struct {
	CategoryID string `json:"categoryId"`
	ParentID   string `json:"parentId"`
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug"`
	SortOrder  int    `json:"sortOrder"`
}
