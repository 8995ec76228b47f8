package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type ProductGenerator interface {
	GenerateProducts(ctx context.Context, categoryName string, count int) ([]models.GeneratedProduct, error)
}

type GenAIProductGenerator struct {
	client *genai.Client
	model  string
}

func NewGenAIProductGenerator(client *genai.Client, model string) *GenAIProductGenerator {
	return &GenAIProductGenerator{client: client, model: model}
}

const productGenerationPrompt = `You generate realistic products for an online store.
Return a JSON array of exactly %d products of the category %q.
Each product is an object with the keys:
"name" (string, at most 80 characters), "description" (string, two sentences),
"price" (number with two decimals, between 1 and 2000), "stock" (integer between 0 and 200),
"review" (object with "content", a short customer review, and "rating", an integer between 1 and 5).
Return only the JSON array.`

func (g *GenAIProductGenerator) GenerateProducts(ctx context.Context, categoryName string, count int,
) ([]models.GeneratedProduct, error) {
	logger := utils.LoggerFromContext(ctx)
	temperature := float32(0.8)

	return retry.DoWithData(
		func() ([]models.GeneratedProduct, error) {
			resp, err := g.client.Models.GenerateContent(ctx, g.model,
				genai.Text(fmt.Sprintf(productGenerationPrompt, count, categoryName)),
				&genai.GenerateContentConfig{
					ResponseMIMEType: "application/json",
					Temperature:      &temperature,
				})
			if err != nil {
				return nil, errors.Wrap(err, "product generation request failed")
			}
			return ParseGeneratedProducts(resp.Text())
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.WarnContext(ctx, "retrying product generation",
				"category", categoryName, "attempt", n+1, "error", err.Error())
		}),
	)
}

// ParseGeneratedProducts reads the model output, tolerating a markdown fence and an
// object wrapping the array under "products". Invalid entries are skipped.
func ParseGeneratedProducts(raw string) ([]models.GeneratedProduct, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	if !gjson.Valid(raw) {
		return nil, errors.New("generated products are not valid JSON")
	}
	result := gjson.Parse(raw)
	if result.IsObject() {
		result = result.Get("products")
	}
	if !result.IsArray() {
		return nil, errors.New("generated products are not a JSON array")
	}

	products := make([]models.GeneratedProduct, 0, len(result.Array()))
	for _, item := range result.Array() {
		product := models.GeneratedProduct{
			Name:          strings.TrimSpace(item.Get("name").String()),
			Description:   strings.TrimSpace(item.Get("description").String()),
			Price:         item.Get("price").Float(),
			Stock:         int(item.Get("stock").Int()),
			ReviewContent: strings.TrimSpace(item.Get("review.content").String()),
			ReviewRating:  int(item.Get("review.rating").Int()),
		}
		if product.Name == "" || product.Price <= 0 || product.Stock < 0 {
			continue
		}
		products = append(products, product)
	}
	if len(products) == 0 {
		return nil, errors.New("no usable product in generated output")
	}
	return products, nil
}
