package models

// Page is the pagination envelope returned by list endpoints.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage fills in TotalPages; a nil items slice is returned as empty.
func NewPage[T any](items []T, total int64, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Page[T]{Items: items, Total: total, Page: page, PageSize: pageSize, TotalPages: pages}
}

// MaxPage bounds the page number accepted by list endpoints.
const MaxPage = 10000

// NormalizePaging clamps page and size into usable values.
func NormalizePaging(page, size, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = def
	}
	if size > max {
		size = max
	}
	return page, size
}

// Skip is the number of records before page.
func Skip(page, size int) int64 {
	if page < 1 || size < 1 {
		return 0
	}
	return int64(page-1) * int64(size)
}
