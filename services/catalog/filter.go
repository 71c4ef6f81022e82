package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"marketplace/models"
	"marketplace/services/taxonomy"
)

// Sort orders.
const (
	SortRecommended = "recommended"
	SortRelevance   = "relevance"
	SortPriceAsc    = "price_asc"
	SortPriceDesc   = "price_desc"
	SortRating      = "rating"
	SortNewest      = "newest"
)

func validSort(s string) bool {
	switch s {
	case SortRecommended, SortRelevance, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return true
	}
	return false
}

// Query parameter names.
const (
	paramSector      = "sector"
	paramCategory    = "category"
	paramSubCategory = "subcategory"
	paramQuery       = "q"
	paramMinPrice    = "minPrice"
	paramMaxPrice    = "maxPrice"
	paramMinRating   = "minRating"
	paramMaxDelivery = "maxDeliveryDays"
	paramLocation    = "location"
	paramVerified    = "verified"
	paramSort        = "sort"
	paramPage        = "page"
	paramPageSize    = "pageSize"
)

// Defaults controls paging normalization.
type Defaults struct {
	PageSize    int
	MaxPageSize int
}

func (d Defaults) normalized() Defaults {
	if d.PageSize < 1 {
		d.PageSize = 12
	}
	if d.MaxPageSize < d.PageSize {
		d.MaxPageSize = max(d.PageSize, 48)
	}
	return d
}

// Filter is the browse state shared by the catalog URL and the listing query.
// Zero values mean "not filtered"; taxonomy levels are slugs.
type Filter struct {
	Sector          string  `json:"sector,omitempty"`
	Category        string  `json:"category,omitempty"`
	SubCategory     string  `json:"subCategory,omitempty"`
	Query           string  `json:"q,omitempty"`
	MinPrice        float64 `json:"minPrice,omitempty"`
	MaxPrice        float64 `json:"maxPrice,omitempty"`
	MinRating       float64 `json:"minRating,omitempty"`
	MaxDeliveryDays int     `json:"maxDeliveryDays,omitempty"`
	Location        string  `json:"location,omitempty"`
	VerifiedOnly    bool    `json:"verified,omitempty"`
	Sort            string  `json:"sort,omitempty"`
	Page            int     `json:"page"`
	PageSize        int     `json:"pageSize"`

	defaultPageSize int
}

// ParseFilter reads a filter from path segments and query parameters.
// Path segments win over the sector, category and subcategory parameters.
// Every malformed parameter is reported in one *models.ValidationError.
func ParseFilter(path taxonomy.Path, q url.Values, d Defaults) (Filter, error) {
	d = d.normalized()
	f := Filter{defaultPageSize: d.PageSize}
	verr := &models.ValidationError{}

	slug := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	if path.Sector != "" {
		f.Sector, f.Category, f.SubCategory = slug(path.Sector), slug(path.Category), slug(path.SubCategory)
	} else {
		f.Sector, f.Category, f.SubCategory = slug(q.Get(paramSector)), slug(q.Get(paramCategory)), slug(q.Get(paramSubCategory))
	}
	if f.Category != "" && f.Sector == "" {
		verr.Add(paramCategory, "requires a sector")
	}
	if f.SubCategory != "" && f.Category == "" {
		verr.Add(paramSubCategory, "requires a category")
	}

	f.Query = strings.Join(strings.Fields(q.Get(paramQuery)), " ")
	f.Location = strings.TrimSpace(q.Get(paramLocation))

	number := func(name string) float64 {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			verr.Add(name, "must be a non-negative number")
			return 0
		}
		return v
	}
	integer := func(name string) int {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return 0
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add(name, "must be a whole number")
			return 0
		}
		return v
	}

	f.MinPrice = number(paramMinPrice)
	f.MaxPrice = number(paramMaxPrice)
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		verr.Add(paramMinPrice, "must not exceed maxPrice")
	}
	f.MinRating = number(paramMinRating)
	if f.MinRating > 5 {
		verr.Add(paramMinRating, "must be between 0 and 5")
	}
	f.MaxDeliveryDays = integer(paramMaxDelivery)
	if f.MaxDeliveryDays < 0 {
		verr.Add(paramMaxDelivery, "must not be negative")
	}

	if raw := strings.TrimSpace(q.Get(paramVerified)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Add(paramVerified, "must be true or false")
		}
		f.VerifiedOnly = v
	}

	f.Sort = strings.ToLower(strings.TrimSpace(q.Get(paramSort)))
	if f.Sort != "" && !validSort(f.Sort) {
		verr.Add(paramSort, "unknown sort order "+strconv.Quote(f.Sort))
	}

	f.Page, f.PageSize = models.NormalizePaging(integer(paramPage), integer(paramPageSize), d.PageSize, d.MaxPageSize)

	if err := verr.OrNil(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// EffectiveSort is the order results are returned in: the explicit sort, or
// relevance when searching and recommended otherwise.
func (f Filter) EffectiveSort() string {
	switch {
	case f.Sort != "":
		return f.Sort
	case f.Query != "":
		return SortRelevance
	default:
		return SortRecommended
	}
}

// Path returns the taxonomy part of the filter.
func (f Filter) Path() taxonomy.Path {
	return taxonomy.Path{Sector: f.Sector, Category: f.Category, SubCategory: f.SubCategory}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Values encodes every non-taxonomy field that differs from its default.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Query != "" {
		v.Set(paramQuery, f.Query)
	}
	if f.MinPrice > 0 {
		v.Set(paramMinPrice, formatFloat(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		v.Set(paramMaxPrice, formatFloat(f.MaxPrice))
	}
	if f.MinRating > 0 {
		v.Set(paramMinRating, formatFloat(f.MinRating))
	}
	if f.MaxDeliveryDays > 0 {
		v.Set(paramMaxDelivery, strconv.Itoa(f.MaxDeliveryDays))
	}
	if f.Location != "" {
		v.Set(paramLocation, f.Location)
	}
	if f.VerifiedOnly {
		v.Set(paramVerified, "true")
	}
	if f.Sort != "" {
		v.Set(paramSort, f.Sort)
	}
	if f.Page > 1 {
		v.Set(paramPage, strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 && f.PageSize != f.defaultPageSize {
		v.Set(paramPageSize, strconv.Itoa(f.PageSize))
	}
	return v
}

// URL renders the canonical browse URL under base, taxonomy in the path.
func (f Filter) URL(base string) string {
	return PathURL(base, f.Path()) + encodeQuery(f.Values())
}

// PathURL renders the browse URL of a taxonomy node.
func PathURL(base string, p taxonomy.Path) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, seg := range []string{p.Sector, p.Category, p.SubCategory} {
		if seg == "" {
			break
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func encodeQuery(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// WithSector selects a sector and clears the levels below it.
func (f Filter) WithSector(slug string) Filter {
	f.Sector, f.Category, f.SubCategory = slug, "", ""
	f.Page = 1
	return f
}

// WithCategory selects a category of the current sector and clears the subcategory.
func (f Filter) WithCategory(slug string) Filter {
	f.Category, f.SubCategory = slug, ""
	f.Page = 1
	return f
}

func (f Filter) WithSubCategory(slug string) Filter {
	f.SubCategory = slug
	f.Page = 1
	return f
}

func (f Filter) WithQuery(q string) Filter {
	f.Query = strings.Join(strings.Fields(q), " ")
	f.Page = 1
	return f
}

func (f Filter) WithPriceRange(minPrice, maxPrice float64) Filter {
	f.MinPrice, f.MaxPrice = minPrice, maxPrice
	f.Page = 1
	return f
}

func (f Filter) WithSort(s string) Filter {
	f.Sort = s
	f.Page = 1
	return f
}

// WithPage moves to another page and keeps every other field.
func (f Filter) WithPage(page int) Filter {
	f.Page = max(page, 1)
	return f
}

// Reset clears every filter and keeps the page size.
func (f Filter) Reset() Filter {
	return Filter{Page: 1, PageSize: f.PageSize, defaultPageSize: f.defaultPageSize}
}
