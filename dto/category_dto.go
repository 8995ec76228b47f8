package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/storefront/storefront-backend/models"
)

type APICategory struct {
	Id          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ParentId    null.Int      `json:"parent_id"`
	CreatedAt   time.Time     `json:"created_at"`
	Children    []APICategory `json:"children,omitempty"`
}

func AdaptCategoryDto(category models.Category) APICategory {
	out := APICategory{
		Id:          category.Id,
		Name:        category.Name,
		Description: category.Description,
		ParentId:    null.IntFromPtr(category.ParentId),
		CreatedAt:   category.CreatedAt,
	}
	if category.Children != nil {
		out.Children = make([]APICategory, 0, len(category.Children))
		for _, child := range category.Children {
			out.Children = append(out.Children, AdaptCategoryDto(child))
		}
	}
	return out
}

type CreateCategoryBody struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	ParentId    *int64 `json:"parent_id" binding:"omitempty,min=1"`
}

func AdaptCreateCategoryInput(body CreateCategoryBody) models.CreateCategoryInput {
	return models.CreateCategoryInput{
		Name:        body.Name,
		Description: body.Description,
		ParentId:    body.ParentId,
	}
}

type UpdateCategoryBody struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ParentId    *int64  `json:"parent_id" binding:"omitempty,min=1"`
}

func AdaptUpdateCategoryInput(body UpdateCategoryBody) models.UpdateCategoryInput {
	return models.UpdateCategoryInput{
		Name:        body.Name,
		Description: body.Description,
		ParentId:    body.ParentId,
	}
}
