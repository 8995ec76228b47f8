package dto

import "github.com/storefront/storefront-backend/models"

// PaginationQuery uses pointers so that an explicit page=0 or size=0 is rejected
// while an absent parameter takes the default.
type PaginationQuery struct {
	Page *int `form:"page" binding:"omitempty,min=1,max=1000000"`
	Size *int `form:"size" binding:"omitempty,min=1,max=100"`
}

func AdaptPagination(input PaginationQuery) models.Pagination {
	var p models.Pagination
	if input.Page != nil {
		p.Page = *input.Page
	}
	if input.Size != nil {
		p.Size = *input.Size
	}
	return p.Normalized()
}

type Paginated[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

func AdaptPaginated[M, T any](page models.Page[M], adapter func(M) T) Paginated[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, adapter(item))
	}
	return Paginated[T]{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
		Pages: page.Pages(),
	}
}
