package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

type Pagination struct {
	Page int
	Size int
}

func (p Pagination) Offset() uint64 {
	return uint64((p.Page - 1) * p.Size)
}

// Normalized applies the default page and size and caps both, keeping Offset far from overflow.
func (p Pagination) Normalized() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Size  int
}

func (p Page[T]) Pages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.Total + p.Size - 1) / p.Size
}
