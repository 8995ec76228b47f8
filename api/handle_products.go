package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/dto"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases"
)

func handleListProducts(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.ProductListQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewProductUsecase()
		page, err := usecase.ListProducts(ctx, dto.AdaptProductFilters(query))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptPaginated(page, dto.AdaptProductDto))
	}
}

func handleSearchProducts(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.ProductSearchQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewProductUsecase()
		page, err := usecase.SearchProducts(ctx, dto.AdaptProductSearch(query))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptProductSearchPage(page))
	}
}

func handleSemanticSearch(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.SemanticSearchQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewKnowledgeUsecase()
		results, err := usecase.SemanticSearch(ctx, query.Query, query.NResults, query.Type)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"results": pure_utils.Map(results, dto.AdaptSemanticSearchResultDto),
		})
	}
}

func handleGetProduct(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		productId, err := idParam(c, "product_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewProductUsecase()
		product, err := usecase.GetProduct(ctx, productId, c.ClientIP())
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptProductDto(product))
	}
}

func handleCreateProduct(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateProductBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewProductUsecase()
		product, err := usecase.CreateProduct(ctx, dto.AdaptCreateProductInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptProductDto(product))
	}
}

func handleUpdateProduct(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		productId, err := idParam(c, "product_id")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.UpdateProductBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewProductUsecase()
		product, err := usecase.UpdateProduct(ctx, productId, dto.AdaptUpdateProductInput(body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptProductDto(product))
	}
}

func handleDeleteProduct(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		productId, err := idParam(c, "product_id")
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewProductUsecase()
		if presentError(ctx, c, usecase.DeleteProduct(ctx, productId)) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
