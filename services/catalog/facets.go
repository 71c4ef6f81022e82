package catalog

import (
	"math"

	"marketplace/models"
)

// FacetCount is the number of matching listings under one taxonomy node.
type FacetCount struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RatingBucket counts listings rated at least MinRating.
type RatingBucket struct {
	MinRating int `json:"minRating"`
	Count     int `json:"count"`
}

// Facets summarises what each filter would yield if it were changed. Every
// count ignores the filter it describes and applies all the others.
type Facets struct {
	Sectors       []FacetCount   `json:"sectors"`
	Categories    []FacetCount   `json:"categories,omitempty"`
	SubCategories []FacetCount   `json:"subCategories,omitempty"`
	Price         PriceRange     `json:"price"`
	Ratings       []RatingBucket `json:"ratings"`
}

// Tree is the part of the taxonomy the facets are labelled with: every sector,
// the categories of the selected sector and the subcategories of the selected category.
type Tree struct {
	Sectors       []models.Sector
	Categories    []models.ServiceCategory
	SubCategories []models.ServiceSubCategory
	// SelectedSub is the selected subcategory ID, if any.
	SelectedSub string
}

// ComputeFacets counts listings per taxonomy node, price and rating bucket.
// Subcategory facets list the children of the selected subcategory, or the
// top level of the selected category; each count includes deeper levels.
func ComputeFacets(listings []models.ServiceListing, c Criteria, tree Tree) Facets {
	m := newMatcher(c)
	f := Facets{Sectors: []FacetCount{}, Ratings: []RatingBucket{}}

	bySector := map[string]int{}
	byCategory := map[string]int{}
	bySub := map[string]int{}
	priceSeen := false
	ratingCounts := [5]int{}

	for i := range listings {
		l := &listings[i]
		if m.match(l, dimSector) {
			bySector[l.SectorID]++
		}
		if c.SectorID != "" && m.match(l, dimCategory) {
			byCategory[l.CategoryID]++
		}
		if c.CategoryID != "" && m.match(l, dimSubCategory) && l.SubCategoryID != "" {
			bySub[l.SubCategoryID]++
		}
		if m.match(l, dimPrice) {
			if !priceSeen {
				f.Price = PriceRange{Min: l.StartingPrice, Max: l.StartingPrice}
				priceSeen = true
			}
			f.Price.Min = math.Min(f.Price.Min, l.StartingPrice)
			f.Price.Max = math.Max(f.Price.Max, l.StartingPrice)
		}
		if m.match(l, dimRating) {
			for b := 1; b <= 4; b++ {
				if l.Rating >= float64(b) {
					ratingCounts[b]++
				}
			}
		}
	}

	for _, s := range tree.Sectors {
		f.Sectors = append(f.Sectors, FacetCount{ID: s.ID, Slug: s.Slug, Name: s.Name, Count: bySector[s.ID]})
	}
	if c.SectorID != "" {
		f.Categories = []FacetCount{}
		for _, cat := range tree.Categories {
			f.Categories = append(f.Categories, FacetCount{ID: cat.ID, Slug: cat.Slug, Name: cat.Name, Count: byCategory[cat.ID]})
		}
	}
	if c.CategoryID != "" {
		f.SubCategories = subCategoryFacets(tree.SubCategories, tree.SelectedSub, bySub)
	}
	for b := 4; b >= 1; b-- {
		f.Ratings = append(f.Ratings, RatingBucket{MinRating: b, Count: ratingCounts[b]})
	}
	return f
}

func subCategoryFacets(subs []models.ServiceSubCategory, parent string, direct map[string]int) []FacetCount {
	out := []FacetCount{}
	for _, sc := range subs {
		if sc.ParentID != parent {
			continue
		}
		n := 0
		for _, id := range descendantsOf(subs, sc.ID) {
			n += direct[id]
		}
		out = append(out, FacetCount{ID: sc.ID, Slug: sc.Slug, Name: sc.Name, Count: n})
	}
	return out
}

func descendantsOf(subs []models.ServiceSubCategory, root string) []string {
	out := []string{root}
	for i := 0; i < len(out) && i < len(subs)+1; i++ {
		for _, sc := range subs {
			if sc.ParentID == out[i] {
				out = append(out, sc.ID)
			}
		}
	}
	return out
}
