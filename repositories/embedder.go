package repositories

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"google.golang.org/genai"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/utils"
)

const EMBEDDING_BATCH_SIZE = 32

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelName() string
}

type GenAIEmbedder struct {
	client    *genai.Client
	model     string
	dimension int
}

func NewGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required when the knowledge base is enabled")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create genai client")
	}
	return client, nil
}

func NewGenAIEmbedder(client *genai.Client, config infra.KnowledgeBaseConfig) *GenAIEmbedder {
	return &GenAIEmbedder{
		client:    client,
		model:     config.EmbeddingModel,
		dimension: config.EmbeddingDimension,
	}
}

func (e *GenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *GenAIEmbedder) ModelName() string {
	return e.model
}

func (e *GenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, batch := range pure_utils.Chunk(texts, EMBEDDING_BATCH_SIZE) {
		embedded, err := e.embedBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, embedded...)
	}
	return vectors, nil
}

func (e *GenAIEmbedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	logger := utils.LoggerFromContext(ctx)
	contents := pure_utils.Map(texts, func(text string) *genai.Content {
		return genai.NewContentFromText(text, genai.RoleUser)
	})
	dimension := int32(e.dimension)

	return retry.DoWithData(
		func() ([][]float32, error) {
			resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
				OutputDimensionality: &dimension,
			})
			if err != nil {
				return nil, errors.Wrap(err, "embedding request failed")
			}
			if len(resp.Embeddings) != len(texts) {
				return nil, errors.Newf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
			}
			return pure_utils.Map(resp.Embeddings, func(embedding *genai.ContentEmbedding) []float32 {
				return embedding.Values
			}), nil
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.WarnContext(ctx, "retrying embedding request", "attempt", n+1, "error", err.Error())
		}),
	)
}
