package catalog

import (
	"context"
	"fmt"

	"marketplace/models"
	"marketplace/services/taxonomy"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ListingSource supplies the published listings the catalog filters.
type ListingSource interface {
	Published(ctx context.Context) ([]models.ServiceListing, error)
}

// Links are the canonical URLs of the current, previous and next result pages.
type Links struct {
	Self string `json:"self"`
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

// BrowseResult is one page of catalog results with everything needed to render filters.
type BrowseResult struct {
	Items       []models.ServiceListing `json:"items"`
	Total       int                     `json:"total"`
	Page        int                     `json:"page"`
	PageSize    int                     `json:"pageSize"`
	TotalPages  int                     `json:"totalPages"`
	Sort        string                  `json:"sort"`
	Filter      Filter                  `json:"filter"`
	Facets      Facets                  `json:"facets"`
	Breadcrumbs []models.Breadcrumb     `json:"breadcrumbs"`
	Selection   taxonomy.Selection      `json:"selection"`
	Links       Links                   `json:"links"`
}

// Service answers catalog browse requests.
type Service struct {
	store    *taxonomy.Store
	listings ListingSource
	defaults Defaults
	basePath string
	logger   *zap.Logger
}

// NewService creates a catalog service. basePath prefixes every generated URL.
func NewService(store *taxonomy.Store, listings ListingSource, defaults Defaults, basePath string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, listings: listings, defaults: defaults.normalized(), basePath: basePath, logger: logger}
}

// Defaults returns the paging defaults filters are parsed with.
func (s *Service) Defaults() Defaults { return s.defaults }

// BasePath returns the prefix of generated browse URLs.
func (s *Service) BasePath() string { return s.basePath }

// Browse resolves the filter's taxonomy path, filters and sorts the published
// listings and returns the requested page with facets and links.
func (s *Service) Browse(ctx context.Context, f Filter) (*BrowseResult, error) {
	var (
		sel        taxonomy.Selection
		candidates []models.ServiceListing
		tree       Tree
		crit       = Criteria{Filter: f}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.listings.Published(gctx)
		if err != nil {
			return fmt.Errorf("failed to load listings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if sel, err = s.store.Resolve(gctx, f.Path()); err != nil {
			return err
		}
		if tree.Sectors, err = s.store.Sectors(gctx); err != nil {
			return err
		}
		if sel.Sector == nil {
			return nil
		}
		crit.SectorID = sel.Sector.ID
		if tree.Categories, err = s.store.Categories(gctx, sel.Sector.ID); err != nil {
			return err
		}
		if sel.Category == nil {
			return nil
		}
		crit.CategoryID = sel.Category.ID
		if tree.SubCategories, err = s.store.SubCategories(gctx, sel.Category.ID); err != nil {
			return err
		}
		if sel.SubCategory != nil {
			tree.SelectedSub = sel.SubCategory.ID
			crit.SubCategoryIDs, err = s.store.Descendants(gctx, sel.Category.ID, sel.SubCategory.ID)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// links use slugs even when the request named IDs
	p := sel.Path()
	f.Sector, f.Category, f.SubCategory = p.Sector, p.Category, p.SubCategory

	matched := Apply(candidates, crit)
	page := models.NewPage(Paginate(matched, f.Page, f.PageSize), int64(len(matched)), f.Page, f.PageSize)

	crumbs := sel.Breadcrumbs(func(p taxonomy.Path) string {
		return PathURL(s.basePath, p)
	})
	res := &BrowseResult{
		Items:       page.Items,
		Total:       len(matched),
		Page:        page.Page,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
		Sort:        f.EffectiveSort(),
		Filter:      f,
		Facets:      ComputeFacets(candidates, crit, tree),
		Breadcrumbs: crumbs,
		Selection:   sel,
		Links:       Links{Self: f.URL(s.basePath)},
	}
	if f.Page > 1 {
		res.Links.Prev = f.WithPage(min(f.Page-1, max(page.TotalPages, 1))).URL(s.basePath)
	}
	if f.Page < page.TotalPages {
		res.Links.Next = f.WithPage(f.Page + 1).URL(s.basePath)
	}

	s.logger.Debug("catalog browse",
		zap.String("url", res.Links.Self),
		zap.Int("matched", res.Total),
		zap.Int("candidates", len(candidates)),
	)
	return res, nil
}
