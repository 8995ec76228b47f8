package models

// GeneratedProduct is a product proposed by the generative model when seeding the catalog.
type GeneratedProduct struct {
	Name          string
	Description   string
	Price         float64
	Stock         int
	ReviewContent string
	ReviewRating  int
}

type SeedReport struct {
	Categories int
	Products   int
	Reviews    int
}
