package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/storefront/storefront-backend/models"
)

type APIProduct struct {
	Id               int64      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Price            float64    `json:"price"`
	PromotionalPrice null.Float `json:"promotional_price"`
	Stock            int        `json:"stock"`
	IsActive         bool       `json:"is_active"`
	CategoryId       null.Int   `json:"category_id"`
	VendorId         int64      `json:"vendor_id"`
	ViewCount        int        `json:"view_count"`
	AverageRating    float64    `json:"average_rating"`
	ReviewCount      int        `json:"review_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func AdaptProductDto(product models.Product) APIProduct {
	return APIProduct{
		Id:               product.Id,
		Name:             product.Name,
		Description:      product.Description,
		Price:            product.Price,
		PromotionalPrice: null.FloatFromPtr(product.PromotionalPrice),
		Stock:            product.Stock,
		IsActive:         product.IsActive,
		CategoryId:       null.IntFromPtr(product.CategoryId),
		VendorId:         product.VendorId,
		ViewCount:        product.ViewCount,
		AverageRating:    product.AverageRating,
		ReviewCount:      product.ReviewCount,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

type ProductListQuery struct {
	PaginationQuery
	CategoryId   *int64   `form:"category_id" binding:"omitempty,min=1"`
	MinPrice     *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice     *float64 `form:"max_price" binding:"omitempty,min=0"`
	Availability *bool    `form:"availability"`
}

func AdaptProductFilters(query ProductListQuery) models.ProductFilters {
	return models.ProductFilters{
		Pagination:   AdaptPagination(query.PaginationQuery),
		CategoryId:   query.CategoryId,
		MinPrice:     query.MinPrice,
		MaxPrice:     query.MaxPrice,
		Availability: query.Availability,
	}
}

type ProductSearchQuery struct {
	PaginationQuery
	Query string `form:"q"`
}

func AdaptProductSearch(query ProductSearchQuery) models.ProductSearch {
	return models.ProductSearch{
		Pagination: AdaptPagination(query.PaginationQuery),
		Query:      query.Query,
	}
}

// APIProductSearchPage keeps the "products" key of the search endpoint.
type APIProductSearchPage struct {
	Products []APIProduct `json:"products"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	Size     int          `json:"size"`
	Pages    int          `json:"pages"`
}

func AdaptProductSearchPage(page models.Page[models.Product]) APIProductSearchPage {
	paginated := AdaptPaginated(page, AdaptProductDto)
	return APIProductSearchPage{
		Products: paginated.Items,
		Total:    paginated.Total,
		Page:     paginated.Page,
		Size:     paginated.Size,
		Pages:    paginated.Pages,
	}
}

type CreateProductBody struct {
	Name             string     `json:"name" binding:"required,max=200"`
	Description      string     `json:"description"`
	Price            float64    `json:"price" binding:"required,gt=0"`
	PromotionalPrice null.Float `json:"promotional_price"`
	Stock            int        `json:"stock" binding:"min=0"`
	CategoryId       *int64     `json:"category_id" binding:"omitempty,min=1"`
}

func AdaptCreateProductInput(body CreateProductBody) models.CreateProductInput {
	return models.CreateProductInput{
		Name:             body.Name,
		Description:      body.Description,
		Price:            body.Price,
		PromotionalPrice: body.PromotionalPrice.Ptr(),
		Stock:            body.Stock,
		CategoryId:       body.CategoryId,
	}
}

type UpdateProductBody struct {
	Name             *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description      *string  `json:"description"`
	Price            *float64 `json:"price" binding:"omitempty,gt=0"`
	PromotionalPrice *float64 `json:"promotional_price" binding:"omitempty,min=0"`
	Stock            *int     `json:"stock" binding:"omitempty,min=0"`
	CategoryId       *int64   `json:"category_id" binding:"omitempty,min=1"`
}

func AdaptUpdateProductInput(body UpdateProductBody) models.UpdateProductInput {
	return models.UpdateProductInput{
		Name:             body.Name,
		Description:      body.Description,
		Price:            body.Price,
		PromotionalPrice: body.PromotionalPrice,
		Stock:            body.Stock,
		CategoryId:       body.CategoryId,
	}
}

type SemanticSearchQuery struct {
	Query    string `form:"q"`
	NResults int    `form:"n_results" binding:"omitempty,min=1,max=50"`
	Type     string `form:"type" binding:"omitempty,oneof=product review"`
}

type APISemanticSearchResult struct {
	Id       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
	Distance float64        `json:"distance"`
	Product  *APIProduct    `json:"product,omitempty"`
}

func AdaptSemanticSearchResultDto(result models.SemanticSearchResult) APISemanticSearchResult {
	doc := result.Hit.Document
	out := APISemanticSearchResult{
		Id:   doc.Id,
		Text: doc.Text,
		Metadata: map[string]any{
			"type":         string(doc.Type),
			"product_id":   doc.ProductId,
			"product_name": doc.ProductName,
			"price":        doc.Price,
			"rating":       doc.Rating,
			"category":     doc.Category,
		},
		Distance: result.Hit.Distance,
	}
	if result.Product != nil {
		product := AdaptProductDto(*result.Product)
		out.Product = &product
	}
	return out
}
