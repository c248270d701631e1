package domain

import (
	"math"
	"strings"
)

// SortDirection orders a page query.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection treats "desc" (any case) as descending and anything else as ascending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// Paging defaults.
const (
	DefaultPage     = 0
	DefaultPageSize = 10
	DefaultSortBy   = "code"
	MaxPageSize     = 1000
)

// CurrencySortFields lists the currency fields a page may be ordered by.
var CurrencySortFields = []string{"id", "code", "name", "symbol", "exchangeRate", "createdAt", "updatedAt"}

// IsCurrencySortField reports whether field is a sortable currency field.
func IsCurrencySortField(field string) bool {
	for _, f := range CurrencySortFields {
		if f == field {
			return true
		}
	}
	return false
}

// PageRequest selects one zero-based page of an ordered listing.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir SortDirection
}

// Offset returns the number of rows preceding the page. It saturates at
// math.MaxInt instead of wrapping negative.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of an ordered listing plus the metadata needed to walk it.
type Page[T any] struct {
	Items         []T
	Page          int
	Size          int
	TotalElements int64
}

// NewPage wraps items fetched for req.
func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Page: req.Page, Size: req.Size, TotalElements: total}
}

// TotalPages is ceil(TotalElements / Size).
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	size := int64(p.Size)
	pages := p.TotalElements / size
	if p.TotalElements%size != 0 {
		pages++
	}
	return int(pages)
}

// IsFirst reports whether this is page zero.
func (p *Page[T]) IsFirst() bool {
	return p.Page == 0
}

// IsLast is true only for the final existing page; an empty listing has none.
func (p *Page[T]) IsLast() bool {
	return p.Page == p.TotalPages()-1
}

// NumberOfElements is the item count of this page, not of the listing.
func (p *Page[T]) NumberOfElements() int {
	return len(p.Items)
}

// IsEmpty reports whether the page holds no items.
func (p *Page[T]) IsEmpty() bool {
	return len(p.Items) == 0
}
