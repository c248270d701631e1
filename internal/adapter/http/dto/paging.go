package dto

import "currency-management/internal/core/domain"

// PageQuery holds the query parameters of a paged listing.
type PageQuery struct {
	Page    int    `form:"page,default=0" binding:"min=0"`
	Size    int    `form:"size,default=10" binding:"min=1,max=1000"`
	SortBy  string `form:"sortBy,default=code"`
	SortDir string `form:"sortDir,default=asc"`
}

// ToPageRequest converts the query into a domain page request.
func (q PageQuery) ToPageRequest() domain.PageRequest {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = domain.DefaultSortBy
	}
	return domain.PageRequest{
		Page:    q.Page,
		Size:    q.Size,
		SortBy:  sortBy,
		SortDir: domain.ParseSortDirection(q.SortDir),
	}
}

// PagedResponse is one page of a listing plus navigation metadata.
type PagedResponse[T any] struct {
	Content          []T   `json:"content"`
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	NumberOfElements int   `json:"numberOfElements"`
	Empty            bool  `json:"empty"`
}

// NewPagedResponse copies the metadata of p around already-mapped content.
func NewPagedResponse[S, T any](p *domain.Page[S], content []T) PagedResponse[T] {
	if content == nil {
		content = []T{}
	}
	return PagedResponse[T]{
		Content:          content,
		Page:             p.Page,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages(),
		First:            p.IsFirst(),
		Last:             p.IsLast(),
		NumberOfElements: p.NumberOfElements(),
		Empty:            p.IsEmpty(),
	}
}

// ToCurrencyPageResponse maps a page of currencies.
func ToCurrencyPageResponse(p *domain.Page[domain.Currency]) PagedResponse[CurrencyResponse] {
	return NewPagedResponse(p, ToCurrencyResponses(p.Items))
}
