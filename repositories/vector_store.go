package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/pgvector/pgvector-go"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

const VECTOR_UPSERT_BATCH_SIZE = 100

type VectorStore interface {
	AddDocuments(ctx context.Context, exec Executor, docs []models.KnowledgeDocument) error
	Search(ctx context.Context, exec Executor, query string, n int,
		filter models.KnowledgeSearchFilter) ([]models.KnowledgeHit, error)
	DeleteByProduct(ctx context.Context, exec Executor, productId int64) error
	DeleteCollection(ctx context.Context, exec Executor) error
	CollectionInfo(ctx context.Context, exec Executor) (models.KnowledgeCollectionInfo, error)
	IsEmpty(ctx context.Context, exec Executor) (bool, error)
}

// PgVectorStore keeps knowledge documents and their embeddings in a pgvector column,
// scoped by collection name. Nearest neighbour search is delegated to the extension.
type PgVectorStore struct {
	embedder   Embedder
	collection string
}

func NewPgVectorStore(embedder Embedder, collection string) *PgVectorStore {
	return &PgVectorStore{embedder: embedder, collection: collection}
}

func (s *PgVectorStore) AddDocuments(ctx context.Context, exec Executor, docs []models.KnowledgeDocument) error {
	for _, batch := range pure_utils.Chunk(docs, VECTOR_UPSERT_BATCH_SIZE) {
		embeddings, err := s.embedder.Embed(ctx, pure_utils.Map(batch,
			func(doc models.KnowledgeDocument) string { return doc.Text }))
		if err != nil {
			return errors.Wrap(err, "could not embed knowledge documents")
		}
		if len(embeddings) != len(batch) {
			return errors.Newf("expected %d embeddings, got %d", len(batch), len(embeddings))
		}
		if err := s.checkDimensions(embeddings); err != nil {
			return err
		}

		query := NewQueryBuilder().
			Insert(dbmodels.TABLE_KNOWLEDGE_DOCUMENTS).
			Columns("id", "collection", "doc_type", "product_id", "product_name",
				"price", "rating", "category", "content", "embedding").
			Suffix(`ON CONFLICT (collection, id) DO UPDATE SET
				doc_type = EXCLUDED.doc_type,
				product_id = EXCLUDED.product_id,
				product_name = EXCLUDED.product_name,
				price = EXCLUDED.price,
				rating = EXCLUDED.rating,
				category = EXCLUDED.category,
				content = EXCLUDED.content,
				embedding = EXCLUDED.embedding`)
		for i, doc := range batch {
			query = query.Values(doc.Id, s.collection, string(doc.Type), doc.ProductId, doc.ProductName,
				doc.Price, doc.Rating, doc.Category, doc.Text, pgvector.NewVector(embeddings[i]))
		}

		if _, err := ExecBuilder(ctx, exec, query); err != nil {
			return err
		}
	}
	return nil
}

func (s *PgVectorStore) Search(ctx context.Context, exec Executor, query string, n int,
	filter models.KnowledgeSearchFilter,
) ([]models.KnowledgeHit, error) {
	embeddings, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, errors.Wrap(err, "could not embed search query")
	}
	if len(embeddings) != 1 {
		return nil, errors.Newf("expected one query embedding, got %d", len(embeddings))
	}
	if err := s.checkDimensions(embeddings); err != nil {
		return nil, err
	}

	sql := NewQueryBuilder().
		Select("id", "doc_type", "product_id", "product_name", "price", "rating", "category", "content").
		Column(squirrel.Expr("embedding <=> ? AS distance", pgvector.NewVector(embeddings[0]))).
		From(dbmodels.TABLE_KNOWLEDGE_DOCUMENTS).
		Where(squirrel.Eq{"collection": s.collection}).
		OrderBy("distance").
		Limit(uint64(n))
	if filter.Type != nil {
		sql = sql.Where(squirrel.Eq{"doc_type": string(*filter.Type)})
	}

	return SqlToListOfModels(ctx, exec, sql, dbmodels.AdaptKnowledgeHit)
}

// The embedding column is declared without a dimension so that EMBEDDING_DIMENSION
// can be changed with a rebuild. Every vector must still match the configured one.
func (s *PgVectorStore) checkDimensions(embeddings [][]float32) error {
	expected := s.embedder.Dimension()
	for _, embedding := range embeddings {
		if len(embedding) != expected {
			return errors.Wrapf(models.UnavailableError,
				"embedding has %d dimensions, the knowledge base expects %d", len(embedding), expected)
		}
	}
	return nil
}

func (s *PgVectorStore) DeleteByProduct(ctx context.Context, exec Executor, productId int64) error {
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(dbmodels.TABLE_KNOWLEDGE_DOCUMENTS).
		Where(squirrel.Eq{"collection": s.collection, "product_id": productId}))
	return err
}

func (s *PgVectorStore) DeleteCollection(ctx context.Context, exec Executor) error {
	_, err := ExecBuilder(ctx, exec, NewQueryBuilder().
		Delete(dbmodels.TABLE_KNOWLEDGE_DOCUMENTS).
		Where(squirrel.Eq{"collection": s.collection}))
	return err
}

func (s *PgVectorStore) count(ctx context.Context, exec Executor) (int, error) {
	return QueryScalar[int](ctx, exec, NewQueryBuilder().
		Select("COUNT(*)").
		From(dbmodels.TABLE_KNOWLEDGE_DOCUMENTS).
		Where(squirrel.Eq{"collection": s.collection}))
}

func (s *PgVectorStore) CollectionInfo(ctx context.Context, exec Executor) (models.KnowledgeCollectionInfo, error) {
	count, err := s.count(ctx, exec)
	if err != nil {
		return models.KnowledgeCollectionInfo{}, err
	}
	status := "ready"
	if count == 0 {
		status = "empty"
	}
	return models.KnowledgeCollectionInfo{Name: s.collection, Count: count, Status: status}, nil
}

func (s *PgVectorStore) IsEmpty(ctx context.Context, exec Executor) (bool, error) {
	count, err := s.count(ctx, exec)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
