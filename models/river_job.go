package models

// rebuilds the knowledge documents (product + reviews) of one product
type IndexProductKnowledgeArgs struct {
	ProductId int64 `json:"product_id"`
}

func (IndexProductKnowledgeArgs) Kind() string { return "index_product_knowledge" }

// drops the knowledge documents of a deleted product
type DeleteProductKnowledgeArgs struct {
	ProductId int64 `json:"product_id"`
}

func (DeleteProductKnowledgeArgs) Kind() string { return "delete_product_knowledge" }
