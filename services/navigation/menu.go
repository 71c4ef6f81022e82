package navigation

import (
	"context"

	"marketplace/services/catalog"
	"marketplace/services/taxonomy"

	"golang.org/x/sync/errgroup"
)

// MenuCategory is a link under a sector in the site menu.
type MenuCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// MenuSector is a top-level entry of the site menu.
type MenuSector struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	Icon       string         `json:"icon,omitempty"`
	URL        string         `json:"url"`
	Categories []MenuCategory `json:"categories"`
}

// Service builds the navigation menu from the taxonomy store.
type Service struct {
	store    *taxonomy.Store
	basePath string
	fanOut   int
}

func NewService(store *taxonomy.Store, basePath string) *Service {
	return &Service{store: store, basePath: basePath, fanOut: 8}
}

// Menu returns every sector with its categories. Category levels are expanded concurrently.
func (s *Service) Menu(ctx context.Context) ([]MenuSector, error) {
	sectors, err := s.store.Sectors(ctx)
	if err != nil {
		return nil, err
	}

	menu := make([]MenuSector, len(sectors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)
	for i, sec := range sectors {
		path := taxonomy.Path{Sector: sec.Slug}
		menu[i] = MenuSector{
			ID:   sec.ID,
			Name: sec.Name,
			Slug: sec.Slug,
			Icon: sec.Icon,
			URL:  catalog.PathURL(s.basePath, path),
		}
		g.Go(func() error {
			cats, err := s.store.Categories(gctx, sec.ID)
			if err != nil {
				return err
			}
			items := make([]MenuCategory, 0, len(cats))
			for _, c := range cats {
				path.Category = c.Slug
				items = append(items, MenuCategory{ID: c.ID, Name: c.Name, Slug: c.Slug, URL: catalog.PathURL(s.basePath, path)})
			}
			menu[i].Categories = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return menu, nil
}
