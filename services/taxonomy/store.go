package taxonomy

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"marketplace/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Store is a lazily filled, normalized cache of the taxonomy keyed by sector.
//
// Each level is fetched from the Loader on first use only. Concurrent requests
// for the same level share one fetch. A failed fetch stores nothing, so the
// next request retries. Invalidation bumps a generation counter; a fetch that
// started under an older generation is handed to its waiters but not kept.
type Store struct {
	loader  Loader
	flights singleflight.Group
	logger  *zap.Logger

	mu         sync.RWMutex
	gen        uint64
	sectors    []models.Sector
	categories map[string][]models.ServiceCategory    // by sector ID
	subs       map[string][]models.ServiceSubCategory // by category ID
	owner      map[string]string                      // category ID -> sector ID
}

// NewStore creates an empty store backed by loader.
func NewStore(loader Loader, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		loader:     loader,
		logger:     logger,
		categories: make(map[string][]models.ServiceCategory),
		subs:       make(map[string][]models.ServiceSubCategory),
		owner:      make(map[string]string),
	}
}

// load returns a cached level or fetches it through singleflight.
func load[T any](ctx context.Context, s *Store, key string,
	lookup func() ([]T, bool),
	fetch func(context.Context) ([]T, error),
	keep func([]T),
) ([]T, error) {
	s.mu.RLock()
	if items, ok := lookup(); ok {
		s.mu.RUnlock()
		return slices.Clone(items), nil
	}
	gen := s.gen
	s.mu.RUnlock()

	ch := s.flights.DoChan(fmt.Sprintf("%d/%s", gen, key), func() (any, error) {
		// The fetch outlives a caller that gives up; later callers still want the result.
		items, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		s.mu.Lock()
		if s.gen == gen {
			keep(items)
		}
		s.mu.Unlock()
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Warn("taxonomy fetch failed", zap.String("key", key), zap.Error(res.Err))
			return nil, fmt.Errorf("failed to load %s: %w", key, res.Err)
		}
		return slices.Clone(res.Val.([]T)), nil
	}
}

func bySortOrder(aOrder, bOrder int, aName, bName, aID, bID string) int {
	return cmp.Or(cmp.Compare(aOrder, bOrder), cmp.Compare(aName, bName), cmp.Compare(aID, bID))
}

// Sectors returns every sector ordered by SortOrder, then Name.
func (s *Store) Sectors(ctx context.Context) ([]models.Sector, error) {
	return load(ctx, s, "sectors",
		func() ([]models.Sector, bool) { return s.sectors, s.sectors != nil },
		func(ctx context.Context) ([]models.Sector, error) {
			items, err := s.loader.Sectors(ctx)
			slices.SortStableFunc(items, func(a, b models.Sector) int {
				return bySortOrder(a.SortOrder, b.SortOrder, a.Name, b.Name, a.ID, b.ID)
			})
			return items, err
		},
		func(items []models.Sector) { s.sectors = items },
	)
}

// Categories returns the categories of a sector, fetching them on first expansion.
func (s *Store) Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error) {
	return load(ctx, s, "categories/"+sectorID,
		func() ([]models.ServiceCategory, bool) {
			items, ok := s.categories[sectorID]
			return items, ok
		},
		func(ctx context.Context) ([]models.ServiceCategory, error) {
			items, err := s.loader.Categories(ctx, sectorID)
			slices.SortStableFunc(items, func(a, b models.ServiceCategory) int {
				return bySortOrder(a.SortOrder, b.SortOrder, a.Name, b.Name, a.ID, b.ID)
			})
			return items, err
		},
		func(items []models.ServiceCategory) {
			s.categories[sectorID] = items
			for _, c := range items {
				s.owner[c.ID] = sectorID
			}
		},
	)
}

// Expand loads a sector's category level ahead of use. Already loaded sectors are not refetched.
func (s *Store) Expand(ctx context.Context, sectorID string) error {
	_, err := s.Categories(ctx, sectorID)
	return err
}

// SubCategories returns every subcategory of a category, all depths, fetching them on first expansion.
func (s *Store) SubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	return load(ctx, s, "subcategories/"+categoryID,
		func() ([]models.ServiceSubCategory, bool) {
			items, ok := s.subs[categoryID]
			return items, ok
		},
		func(ctx context.Context) ([]models.ServiceSubCategory, error) {
			items, err := s.loader.SubCategories(ctx, categoryID)
			slices.SortStableFunc(items, func(a, b models.ServiceSubCategory) int {
				return bySortOrder(a.SortOrder, b.SortOrder, a.Name, b.Name, a.ID, b.ID)
			})
			return items, err
		},
		func(items []models.ServiceSubCategory) { s.subs[categoryID] = items },
	)
}

// Children returns one level of subcategories: the direct children of parentID,
// or the top level of the category when parentID is empty.
func (s *Store) Children(ctx context.Context, categoryID, parentID string) ([]models.ServiceSubCategory, error) {
	all, err := s.SubCategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if parentID != "" && !slices.ContainsFunc(all, func(sc models.ServiceSubCategory) bool { return sc.ID == parentID }) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubCategory, parentID)
	}
	out := []models.ServiceSubCategory{}
	for _, sc := range all {
		if sc.ParentID == parentID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func matches(ref, id, slug string) bool { return ref == id || ref == slug }

// Resolve walks p level by level, loading only the levels it needs.
// Each level may be given as a slug or an ID.
func (s *Store) Resolve(ctx context.Context, p Path) (Selection, error) {
	var sel Selection
	switch {
	case p.Sector == "" && (p.Category != "" || p.SubCategory != ""):
		return sel, fmt.Errorf("category selected without a sector: %w", models.ErrInvalidInput)
	case p.Category == "" && p.SubCategory != "":
		return sel, fmt.Errorf("subcategory selected without a category: %w", models.ErrInvalidInput)
	case p.Sector == "":
		return sel, nil
	}

	sectors, err := s.Sectors(ctx)
	if err != nil {
		return sel, err
	}
	i := slices.IndexFunc(sectors, func(x models.Sector) bool { return matches(p.Sector, x.ID, x.Slug) })
	if i < 0 {
		return sel, fmt.Errorf("%w: %s", ErrUnknownSector, p.Sector)
	}
	sel.Sector = &sectors[i]
	if p.Category == "" {
		return sel, nil
	}

	categories, err := s.Categories(ctx, sel.Sector.ID)
	if err != nil {
		return sel, err
	}
	j := slices.IndexFunc(categories, func(x models.ServiceCategory) bool { return matches(p.Category, x.ID, x.Slug) })
	if j < 0 {
		return sel, fmt.Errorf("%w: %s in sector %s", ErrUnknownCategory, p.Category, sel.Sector.Slug)
	}
	sel.Category = &categories[j]
	if p.SubCategory == "" {
		return sel, nil
	}

	subs, err := s.SubCategories(ctx, sel.Category.ID)
	if err != nil {
		return sel, err
	}
	k := slices.IndexFunc(subs, func(x models.ServiceSubCategory) bool { return matches(p.SubCategory, x.ID, x.Slug) })
	if k < 0 {
		return sel, fmt.Errorf("%w: %s in category %s", ErrUnknownSubCategory, p.SubCategory, sel.Category.Slug)
	}
	sel.SubCategory = &subs[k]
	sel.Trail = ancestors(subs, sel.SubCategory)
	return sel, nil
}

// ancestors returns the parent chain of sc, outermost first.
func ancestors(subs []models.ServiceSubCategory, sc *models.ServiceSubCategory) []models.ServiceSubCategory {
	byID := make(map[string]models.ServiceSubCategory, len(subs))
	for _, x := range subs {
		byID[x.ID] = x
	}
	var chain []models.ServiceSubCategory
	parent := sc.ParentID
	for parent != "" && len(chain) < len(subs) {
		p, ok := byID[parent]
		if !ok {
			break
		}
		chain = append(chain, p)
		parent = p.ParentID
	}
	slices.Reverse(chain)
	return chain
}

// Descendants returns subID followed by the IDs of every subcategory below it.
func (s *Store) Descendants(ctx context.Context, categoryID, subID string) ([]string, error) {
	subs, err := s.SubCategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(subs, func(x models.ServiceSubCategory) bool { return x.ID == subID }) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubCategory, subID)
	}
	return descendantIDs(subs, subID), nil
}

func descendantIDs(subs []models.ServiceSubCategory, root string) []string {
	children := make(map[string][]string)
	for _, x := range subs {
		if x.ParentID != "" {
			children[x.ParentID] = append(children[x.ParentID], x.ID)
		}
	}
	out := []string{root}
	seen := map[string]bool{root: true}
	for i := 0; i < len(out); i++ {
		for _, c := range children[out[i]] {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// Invalidate drops the sector list and everything cached under sectorID.
// Subcategory sets whose sector is unknown are dropped as well.
func (s *Store) Invalidate(sectorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.sectors = nil
	delete(s.categories, sectorID)
	for categoryID := range s.subs {
		if owner, ok := s.owner[categoryID]; !ok || owner == sectorID {
			delete(s.subs, categoryID)
			delete(s.owner, categoryID)
		}
	}
	for categoryID, owner := range s.owner {
		if owner == sectorID {
			delete(s.owner, categoryID)
		}
	}
}

// InvalidateAll empties the store.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.sectors = nil
	s.categories = make(map[string][]models.ServiceCategory)
	s.subs = make(map[string][]models.ServiceSubCategory)
	s.owner = make(map[string]string)
}

// Refresh empties the store and reloads sectors and their categories.
func (s *Store) Refresh(ctx context.Context) error {
	s.InvalidateAll()
	sectors, err := s.Sectors(ctx)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, sec := range sectors {
		g.Go(func() error { return s.Expand(gctx, sec.ID) })
	}
	return g.Wait()
}
