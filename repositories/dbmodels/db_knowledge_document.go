package dbmodels

import (
	"github.com/storefront/storefront-backend/models"
)

const TABLE_KNOWLEDGE_DOCUMENTS = "knowledge_documents"

type DBKnowledgeHit struct {
	Id          string  `db:"id"`
	DocType     string  `db:"doc_type"`
	ProductId   int64   `db:"product_id"`
	ProductName string  `db:"product_name"`
	Price       float64 `db:"price"`
	Rating      float64 `db:"rating"`
	Category    string  `db:"category"`
	Content     string  `db:"content"`
	Distance    float64 `db:"distance"`
}

func AdaptKnowledgeHit(db DBKnowledgeHit) (models.KnowledgeHit, error) {
	return models.KnowledgeHit{
		Document: models.KnowledgeDocument{
			Id:          db.Id,
			Type:        models.KnowledgeDocumentType(db.DocType),
			ProductId:   db.ProductId,
			ProductName: db.ProductName,
			Price:       db.Price,
			Rating:      db.Rating,
			Category:    db.Category,
			Text:        db.Content,
		},
		Distance: db.Distance,
	}, nil
}
