package admin

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"

	listingRepo "marketplace/database/repository/listing"
	"marketplace/models"
	"marketplace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slugify lowercases name and joins its alphanumeric runs with hyphens.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// nameAndSlug trims the name and derives the slug when none is given.
func nameAndSlug(name, slug string) (string, string, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		slug = Slugify(name)
	}
	verr := &models.ValidationError{}
	if name == "" || len(name) > 80 {
		verr.Add("name", "must be between 1 and 80 characters")
	}
	if !slugPattern.MatchString(slug) {
		verr.Add("slug", "must be lowercase letters, digits and single hyphens")
	}
	return name, slug, verr.OrNil()
}

// invalidate drops the redis levels first so the store reloads fresh data.
func (s *DefaultAdminService) invalidate(ctx context.Context, sectorID string, categoryIDs ...string) {
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, sectorID, categoryIDs...); err != nil {
			utils.GetLogger().Warn("failed to invalidate taxonomy cache", zap.String("sectorID", sectorID), zap.Error(err))
		}
	}
	s.Tree.Invalidate(sectorID)
}

// ensureUnused rejects deleting a node that listings still point at.
func (s *DefaultAdminService) ensureUnused(ctx context.Context, field, id string, children int64) error {
	if children > 0 {
		return fmt.Errorf("node %s still has %d children: %w", id, children, models.ErrConflict)
	}
	n, err := s.Listings.CountByTaxonomy(ctx, field, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("node %s is used by %d listings: %w", id, n, models.ErrConflict)
	}
	return nil
}

func (s *DefaultAdminService) CreateSector(ctx context.Context, in models.SectorInput) (*models.Sector, error) {
	name, slug, err := nameAndSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sec := &models.Sector{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		Icon:        strings.TrimSpace(in.Icon),
		SortOrder:   in.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Taxonomy.CreateSector(ctx, sec); err != nil {
		return nil, err
	}
	s.invalidate(ctx, sec.ID)
	return sec, nil
}

func (s *DefaultAdminService) UpdateSector(ctx context.Context, id string, in models.SectorInput) (*models.Sector, error) {
	sec, err := s.Taxonomy.GetSector(ctx, id)
	if err != nil {
		return nil, err
	}
	name, slug, err := nameAndSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	sec.Name, sec.Slug = name, slug
	sec.Description = strings.TrimSpace(in.Description)
	sec.Icon = strings.TrimSpace(in.Icon)
	sec.SortOrder = in.SortOrder
	sec.UpdatedAt = time.Now()
	if err := s.Taxonomy.UpdateSector(ctx, sec); err != nil {
		return nil, err
	}
	s.invalidate(ctx, sec.ID)
	return sec, nil
}

func (s *DefaultAdminService) DeleteSector(ctx context.Context, id string) error {
	if _, err := s.Taxonomy.GetSector(ctx, id); err != nil {
		return err
	}
	n, err := s.Taxonomy.CountCategories(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureUnused(ctx, listingRepo.FieldSector, id, n); err != nil {
		return err
	}
	if err := s.Taxonomy.DeleteSector(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *DefaultAdminService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.ServiceCategory, error) {
	name, slug, err := nameAndSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.Taxonomy.GetSector(ctx, in.SectorID); err != nil {
		verr := &models.ValidationError{}
		verr.Add("sectorId", "unknown sector")
		return nil, verr
	}
	now := time.Now()
	c := &models.ServiceCategory{
		ID:          uuid.New().String(),
		SectorID:    in.SectorID,
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		SortOrder:   in.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Taxonomy.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.SectorID, c.ID)
	return c, nil
}

func (s *DefaultAdminService) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.ServiceCategory, error) {
	c, err := s.Taxonomy.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SectorID != "" && in.SectorID != c.SectorID {
		verr := &models.ValidationError{}
		verr.Add("sectorId", "a category cannot move to another sector")
		return nil, verr
	}
	name, slug, err := nameAndSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	c.Name, c.Slug = name, slug
	c.Description = strings.TrimSpace(in.Description)
	c.SortOrder = in.SortOrder
	c.UpdatedAt = time.Now()
	if err := s.Taxonomy.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.SectorID, c.ID)
	return c, nil
}

func (s *DefaultAdminService) DeleteCategory(ctx context.Context, id string) error {
	c, err := s.Taxonomy.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.Taxonomy.CountSubCategories(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureUnused(ctx, listingRepo.FieldCategory, id, n); err != nil {
		return err
	}
	if err := s.Taxonomy.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, c.SectorID, c.ID)
	return nil
}

// checkParent verifies parentID is a subcategory of categoryID and, for an
// existing node, not the node itself or one of its descendants.
func (s *DefaultAdminService) checkParent(ctx context.Context, categoryID, parentID, selfID string) error {
	if parentID == "" {
		return nil
	}
	verr := &models.ValidationError{}
	parent, err := s.Taxonomy.GetSubCategory(ctx, parentID)
	if err != nil || parent.CategoryID != categoryID {
		verr.Add("parentId", "not a subcategory of the same category")
		return verr
	}
	if selfID == "" {
		return nil
	}
	below, err := s.Tree.Descendants(ctx, categoryID, selfID)
	if err != nil {
		return err
	}
	if slices.Contains(below, parentID) {
		verr.Add("parentId", "would create a cycle")
		return verr
	}
	return nil
}

func (s *DefaultAdminService) CreateSubCategory(ctx context.Context, in models.SubCategoryInput) (*models.ServiceSubCategory, error) {
	name, slug, err := nameAndSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	c, err := s.Taxonomy.GetCategory(ctx, in.CategoryID)
	if err != nil {
		verr := &models.ValidationError{}
		verr.Add("categoryId", "unknown category")
		return nil, verr
	}
	if err := s.checkParent(ctx, c.ID, in.ParentID, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	sc := &models.ServiceSubCategory{
		ID:         uuid.New().String(),
		CategoryID: c.ID,
		ParentID:   in.ParentID,
		Name:       name,
		Slug:       slug,
		SortOrder:  in.SortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Taxonomy.CreateSubCategory(ctx, sc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.SectorID, c.ID)
	return sc, nil
}

func (s *DefaultAdminService) UpdateSubCategory(ctx context.Context, id string, in models.SubCategoryInput) (*models.ServiceSubCategory, error) {
	sc, err := s.Taxonomy.GetSubCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != "" && in.CategoryID != sc.CategoryID {
		verr := &models.ValidationError{}
		verr.Add("categoryId", "a subcategory cannot move to another category")
		return nil, verr
	}
	name, slug, err := nameAndSlug(in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	c, err := s.Taxonomy.GetCategory(ctx, sc.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, c.ID, in.ParentID, sc.ID); err != nil {
		return nil, err
	}
	sc.Name, sc.Slug, sc.ParentID = name, slug, in.ParentID
	sc.SortOrder = in.SortOrder
	sc.UpdatedAt = time.Now()
	if err := s.Taxonomy.UpdateSubCategory(ctx, sc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.SectorID, c.ID)
	return sc, nil
}

func (s *DefaultAdminService) DeleteSubCategory(ctx context.Context, id string) error {
	sc, err := s.Taxonomy.GetSubCategory(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.Taxonomy.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureUnused(ctx, listingRepo.FieldSubCategory, id, n); err != nil {
		return err
	}
	if err := s.Taxonomy.DeleteSubCategory(ctx, id); err != nil {
		return err
	}
	sectorID := ""
	if c, err := s.Taxonomy.GetCategory(ctx, sc.CategoryID); err == nil {
		sectorID = c.SectorID
	}
	s.invalidate(ctx, sectorID, sc.CategoryID)
	return nil
}
