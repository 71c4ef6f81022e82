package catalog

import (
	"cmp"
	"slices"
	"strings"

	"marketplace/models"
)

// Criteria is a Filter with its taxonomy resolved to IDs.
// SubCategoryIDs holds the selected subcategory and all of its descendants.
type Criteria struct {
	Filter         Filter
	SectorID       string
	CategoryID     string
	SubCategoryIDs []string
}

// dimension names a filter that a facet ignores while counting.
type dimension int

const (
	dimNone dimension = iota
	dimSector
	dimCategory
	dimSubCategory
	dimPrice
	dimRating
)

type matcher struct {
	c     Criteria
	terms []string
	subs  map[string]bool
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{c: c, terms: strings.Fields(strings.ToLower(c.Filter.Query))}
	if len(c.SubCategoryIDs) > 0 {
		m.subs = make(map[string]bool, len(c.SubCategoryIDs))
		for _, id := range c.SubCategoryIDs {
			m.subs[id] = true
		}
	}
	return m
}

// match applies every filter except skip. Skipping a taxonomy level skips the levels below it too.
func (m *matcher) match(l *models.ServiceListing, skip dimension) bool {
	f := m.c.Filter
	if l.Status != models.ListingPublished {
		return false
	}
	if skip != dimSector {
		if m.c.SectorID != "" && l.SectorID != m.c.SectorID {
			return false
		}
		if skip != dimCategory {
			if m.c.CategoryID != "" && l.CategoryID != m.c.CategoryID {
				return false
			}
			if skip != dimSubCategory && m.subs != nil && !m.subs[l.SubCategoryID] {
				return false
			}
		}
	}
	if skip != dimPrice {
		if f.MinPrice > 0 && l.StartingPrice < f.MinPrice {
			return false
		}
		if f.MaxPrice > 0 && l.StartingPrice > f.MaxPrice {
			return false
		}
	}
	if skip != dimRating && f.MinRating > 0 && l.Rating < f.MinRating {
		return false
	}
	if f.MaxDeliveryDays > 0 {
		if d := l.StartingDelivery(); d == 0 || d > f.MaxDeliveryDays {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.VerifiedOnly && !l.Verified {
		return false
	}
	return len(m.terms) == 0 || m.score(l) > 0
}

// score ranks a text match. Every term must appear in some field; the title
// weighs most, then tags, then the professional name and description.
func (m *matcher) score(l *models.ServiceListing) int {
	if len(m.terms) == 0 {
		return 0
	}
	title := strings.ToLower(l.Title)
	name := strings.ToLower(l.ProfessionalName)
	desc := strings.ToLower(l.Description)
	tags := make([]string, len(l.Tags))
	for i, t := range l.Tags {
		tags[i] = strings.ToLower(t)
	}

	total := 0
	for _, term := range m.terms {
		s := 0
		if strings.Contains(title, term) {
			s += 4
		}
		tagScore := 0
		for _, t := range tags {
			if t == term {
				tagScore = 3
				break
			}
			if strings.Contains(t, term) {
				tagScore = 2
			}
		}
		s += tagScore
		if strings.Contains(name, term) {
			s++
		}
		if strings.Contains(desc, term) {
			s++
		}
		if s == 0 {
			return 0
		}
		total += s
	}
	return total
}

func compareRecommended(a, b *models.ServiceListing) int {
	if a.Verified != b.Verified {
		if a.Verified {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(b.Rating, a.Rating),
		cmp.Compare(b.ReviewCount, a.ReviewCount),
		b.ListedAt().Compare(a.ListedAt()),
	)
}

// Apply returns the listings matching c, ordered by the filter's effective sort.
// The input slice is not modified.
func Apply(listings []models.ServiceListing, c Criteria) []models.ServiceListing {
	m := newMatcher(c)
	out := []models.ServiceListing{}
	scores := map[string]int{}
	for i := range listings {
		l := &listings[i]
		if !m.match(l, dimNone) {
			continue
		}
		out = append(out, *l)
		if len(m.terms) > 0 {
			scores[l.ID] = m.score(l)
		}
	}

	var order func(a, b *models.ServiceListing) int
	switch c.Filter.EffectiveSort() {
	case SortRelevance:
		order = func(a, b *models.ServiceListing) int {
			return cmp.Or(cmp.Compare(scores[b.ID], scores[a.ID]), compareRecommended(a, b))
		}
	case SortPriceAsc:
		order = func(a, b *models.ServiceListing) int { return cmp.Compare(a.StartingPrice, b.StartingPrice) }
	case SortPriceDesc:
		order = func(a, b *models.ServiceListing) int { return cmp.Compare(b.StartingPrice, a.StartingPrice) }
	case SortRating:
		order = func(a, b *models.ServiceListing) int {
			return cmp.Or(cmp.Compare(b.Rating, a.Rating), cmp.Compare(b.ReviewCount, a.ReviewCount))
		}
	case SortNewest:
		order = func(a, b *models.ServiceListing) int { return b.ListedAt().Compare(a.ListedAt()) }
	default:
		order = compareRecommended
	}
	slices.SortFunc(out, func(a, b models.ServiceListing) int {
		return cmp.Or(order(&a, &b), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// Paginate returns the items of one page; a page past the end is empty.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize < 1 || page < 1 {
		return []T{}
	}
	if page-1 >= (len(items)+pageSize-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end]
}
