package models

import (
	"math"
	"time"
)

type Product struct {
	Id               int64
	Name             string
	Description      string
	Price            float64
	PromotionalPrice *float64
	Stock            int
	IsActive         bool
	CategoryId       *int64
	VendorId         int64
	ViewCount        int
	AverageRating    float64
	ReviewCount      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UnitPrice is the promotional price when one is set below the list price
func (p Product) UnitPrice() float64 {
	if p.PromotionalPrice != nil && *p.PromotionalPrice > 0 && *p.PromotionalPrice < p.Price {
		return *p.PromotionalPrice
	}
	return p.Price
}

type CreateProductInput struct {
	Name             string
	Description      string
	Price            float64
	PromotionalPrice *float64
	Stock            int
	CategoryId       *int64
}

type UpdateProductInput struct {
	Name             *string
	Description      *string
	Price            *float64
	PromotionalPrice *float64
	Stock            *int
	CategoryId       *int64
}

type ProductFilters struct {
	Pagination
	CategoryId   *int64
	MinPrice     *float64
	MaxPrice     *float64
	Availability *bool
}

type ProductSearch struct {
	Pagination
	Query string
}

type ProductRatingStats struct {
	ReviewCount   int
	AverageRating float64
}

// ActiveFromStock is the availability rule applied on every stock write
func ActiveFromStock(stock int) bool {
	return stock > 0
}

func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
