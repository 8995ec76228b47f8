package models

import (
	"fmt"
	"strings"
)

type KnowledgeDocumentType string

const (
	KnowledgeProduct KnowledgeDocumentType = "product"
	KnowledgeReview  KnowledgeDocumentType = "review"
)

type KnowledgeDocument struct {
	Id          string
	Type        KnowledgeDocumentType
	ProductId   int64
	ProductName string
	Price       float64
	Rating      float64
	Category    string
	Text        string
}

type KnowledgeSearchFilter struct {
	Type *KnowledgeDocumentType
}

type KnowledgeHit struct {
	Document KnowledgeDocument
	Distance float64
}

// SemanticSearchResult carries the product a hit describes when it still exists
type SemanticSearchResult struct {
	Hit     KnowledgeHit
	Product *Product
}

type KnowledgeCollectionInfo struct {
	Name   string
	Count  int
	Status string
}

func ProductKnowledgeId(productId int64) string {
	return fmt.Sprintf("product_%d", productId)
}

func ReviewKnowledgeId(reviewId int64) string {
	return fmt.Sprintf("review_%d", reviewId)
}

func ProductKnowledgeDocument(product Product, categoryName string) KnowledgeDocument {
	var text strings.Builder
	fmt.Fprintf(&text, "Product: %s.", product.Name)
	if categoryName != "" {
		fmt.Fprintf(&text, " Category: %s.", categoryName)
	}
	if product.Description != "" {
		fmt.Fprintf(&text, " Description: %s", strings.TrimSpace(product.Description))
		if !strings.HasSuffix(text.String(), ".") {
			text.WriteString(".")
		}
	}
	fmt.Fprintf(&text, " Price: %.2f.", product.UnitPrice())
	if product.ReviewCount > 0 {
		fmt.Fprintf(&text, " Rated %.2f/5 by %d reviews.", product.AverageRating, product.ReviewCount)
	}

	return KnowledgeDocument{
		Id:          ProductKnowledgeId(product.Id),
		Type:        KnowledgeProduct,
		ProductId:   product.Id,
		ProductName: product.Name,
		Price:       product.UnitPrice(),
		Rating:      product.AverageRating,
		Category:    categoryName,
		Text:        text.String(),
	}
}

func ReviewKnowledgeDocument(review Review, product Product, categoryName string) KnowledgeDocument {
	return KnowledgeDocument{
		Id:          ReviewKnowledgeId(review.Id),
		Type:        KnowledgeReview,
		ProductId:   product.Id,
		ProductName: product.Name,
		Price:       product.UnitPrice(),
		Rating:      float64(review.Rating),
		Category:    categoryName,
		Text: fmt.Sprintf("Review of %s (%d/5): %s",
			product.Name, review.Rating, strings.TrimSpace(review.Content)),
	}
}
