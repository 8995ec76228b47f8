package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/models"
)

func TestParseSampleCatalog_embedded(t *testing.T) {
	catalog, err := parseSampleCatalog(sampleCatalogYaml)
	require.NoError(t, err)

	var products int
	var walk func(categories []sampleCategory)
	walk = func(categories []sampleCategory) {
		for _, c := range categories {
			assert.NotEmpty(t, c.Name)
			for _, p := range c.Products {
				assert.NotEmpty(t, p.Name)
				assert.Positive(t, p.Price)
				assert.GreaterOrEqual(t, p.Stock, 0)
				if p.PromotionalPrice != nil {
					assert.Less(t, *p.PromotionalPrice, p.Price, p.Name)
				}
				products++
			}
			walk(c.Children)
		}
	}
	walk(catalog.Categories)

	assert.Positive(t, products)
}

func TestParseSampleCatalog_errors(t *testing.T) {
	_, err := parseSampleCatalog([]byte("categories: ["))
	assert.Error(t, err)

	_, err = parseSampleCatalog([]byte("categories: []"))
	assert.Error(t, err)
}

func TestSeedAdmin_requiresCredentials(t *testing.T) {
	usecase := SeedUsecase{config: infra.SeedConfig{AdminUsername: "admin"}}

	_, err := usecase.SeedAdmin(context.Background())

	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestSeedWithAI_needsGenerator(t *testing.T) {
	usecase := SeedUsecase{}

	_, err := usecase.SeedWithAI(context.Background(), 3)

	assert.ErrorIs(t, err, models.UnavailableError)
}
