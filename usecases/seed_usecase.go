package usecases

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/utils"
)

const (
	sampleReviewers         = 5
	sampleReviewsPerProduct = 2
	reviewerUsernamePrefix  = "reviewer_"
)

//go:embed seed/sample_catalog.yaml
var sampleCatalogYaml []byte

type sampleCatalog struct {
	Categories []sampleCategory `yaml:"categories"`
}

type sampleCategory struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Children    []sampleCategory `yaml:"children"`
	Products    []sampleProduct  `yaml:"products"`
}

type sampleProduct struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Price            float64  `yaml:"price"`
	PromotionalPrice *float64 `yaml:"promotional_price"`
	Stock            int      `yaml:"stock"`
}

func parseSampleCatalog(raw []byte) (sampleCatalog, error) {
	var catalog sampleCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return sampleCatalog{}, errors.Wrap(err, "could not parse the sample catalog")
	}
	if len(catalog.Categories) == 0 {
		return sampleCatalog{}, errors.New("the sample catalog has no category")
	}
	return catalog, nil
}

type SeedRepository interface {
	GetUserByUsername(ctx context.Context, exec repositories.Executor, username string) (*models.User, error)
	FirstUserWithRole(ctx context.Context, exec repositories.Executor, role models.Role) (*models.User, error)
	CreateUser(ctx context.Context, exec repositories.Executor, user models.CreateUser) (models.User, error)
	ListCategories(ctx context.Context, exec repositories.Executor) ([]models.Category, error)
	GetCategoryByName(ctx context.Context, exec repositories.Executor, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, exec repositories.Executor, input models.CreateCategoryInput) (models.Category, error)
	CreateProduct(ctx context.Context, exec repositories.Executor, vendorId int64, input models.CreateProductInput) (models.Product, error)
	DeleteAllProducts(ctx context.Context, exec repositories.Executor) (int64, error)
	CreateReview(ctx context.Context, exec repositories.Executor, userId int64, input models.CreateReviewInput) (models.Review, error)
	ProductRatingStats(ctx context.Context, exec repositories.Executor, productId int64) (models.ProductRatingStats, error)
	SetProductRatingStats(ctx context.Context, exec repositories.Executor, productId int64, stats models.ProductRatingStats) error
}

type SeedUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         SeedRepository
	taskQueue          repositories.TaskQueueRepository
	generator          repositories.ProductGenerator
	cache              repositories.Cache
	config             infra.SeedConfig
}

// SeedAdmin creates the admin account from the seed configuration, unless it exists.
func (usecase *SeedUsecase) SeedAdmin(ctx context.Context) (models.User, error) {
	logger := utils.LoggerFromContext(ctx)
	if usecase.config.AdminUsername == "" || usecase.config.AdminPassword == "" {
		return models.User{}, errors.Wrap(models.BadParameterError,
			"SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD are required")
	}
	exec := usecase.executorFactory.NewExecutor()
	existing, err := usecase.repository.GetUserByUsername(ctx, exec, usecase.config.AdminUsername)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		logger.InfoContext(ctx, "admin already exists", "user_id", existing.Id)
		return *existing, nil
	}

	hash, err := HashPassword(usecase.config.AdminPassword)
	if err != nil {
		return models.User{}, err
	}
	admin, err := usecase.repository.CreateUser(ctx, exec, models.CreateUser{
		Username:     usecase.config.AdminUsername,
		Email:        usecase.config.AdminEmail,
		Name:         "Admin",
		Surname:      "Storefront",
		PasswordHash: hash,
		Role:         models.ADMIN,
	})
	if err != nil {
		return models.User{}, err
	}
	logger.InfoContext(ctx, "admin created", "user_id", admin.Id, "username", admin.Username)
	return admin, nil
}

// SeedSampleProducts loads the embedded catalog. Products are assigned to the first vendor,
// else the first admin, else the first user.
func (usecase *SeedUsecase) SeedSampleProducts(ctx context.Context, clear bool) (models.SeedReport, error) {
	catalog, err := parseSampleCatalog(sampleCatalogYaml)
	if err != nil {
		return models.SeedReport{}, err
	}
	sellerId, err := usecase.sellerId(ctx)
	if err != nil {
		return models.SeedReport{}, err
	}

	report, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.SeedReport, error) {
			var report models.SeedReport
			if clear {
				deleted, err := usecase.repository.DeleteAllProducts(ctx, tx)
				if err != nil {
					return report, err
				}
				utils.LoggerFromContext(ctx).InfoContext(ctx, "existing products deleted", "count", deleted)
			}

			reviewers, err := usecase.ensureReviewers(ctx, tx)
			if err != nil {
				return report, err
			}
			for _, root := range catalog.Categories {
				if err := usecase.seedCategory(ctx, tx, root, nil, sellerId, reviewers, &report); err != nil {
					return report, err
				}
			}
			return report, nil
		})
	if err != nil {
		return models.SeedReport{}, err
	}

	NewCatalogCache(usecase.cache).Invalidate(ctx)
	utils.LoggerFromContext(ctx).InfoContext(ctx, "sample catalog seeded",
		"categories", report.Categories, "products", report.Products, "reviews", report.Reviews)
	return report, nil
}

func (usecase *SeedUsecase) seedCategory(
	ctx context.Context,
	tx repositories.Transaction,
	sample sampleCategory,
	parentId *int64,
	sellerId int64,
	reviewers []models.User,
	report *models.SeedReport,
) error {
	category, created, err := usecase.ensureCategory(ctx, tx, models.CreateCategoryInput{
		Name:        sample.Name,
		Description: sample.Description,
		ParentId:    parentId,
	})
	if err != nil {
		return err
	}
	if created {
		report.Categories++
	}

	for _, p := range sample.Products {
		product, err := usecase.repository.CreateProduct(ctx, tx, sellerId, models.CreateProductInput{
			Name:             p.Name,
			Description:      p.Description,
			Price:            p.Price,
			PromotionalPrice: p.PromotionalPrice,
			Stock:            p.Stock,
			CategoryId:       &category.Id,
		})
		if err != nil {
			return errors.Wrapf(err, "could not create sample product %s", p.Name)
		}
		report.Products++

		for i := range sampleReviewsPerProduct {
			reviewer := reviewers[(int(product.Id)+i)%len(reviewers)]
			if _, err := usecase.repository.CreateReview(ctx, tx, reviewer.Id, models.CreateReviewInput{
				ProductId: product.Id,
				Content:   faker.Sentence(),
				Rating:    3 + rand.IntN(3),
			}); err != nil {
				return err
			}
			report.Reviews++
		}
		if err := usecase.finishProduct(ctx, tx, product.Id); err != nil {
			return err
		}
	}

	for _, child := range sample.Children {
		if err := usecase.seedCategory(ctx, tx, child, &category.Id, sellerId, reviewers, report); err != nil {
			return err
		}
	}
	return nil
}

// SeedWithAI asks the generative model for count products in every root category.
func (usecase *SeedUsecase) SeedWithAI(ctx context.Context, count int) (models.SeedReport, error) {
	logger := utils.LoggerFromContext(ctx)
	if usecase.generator == nil {
		return models.SeedReport{}, errors.Wrap(models.UnavailableError,
			"product generation needs GEMINI_API_KEY")
	}
	if count <= 0 {
		return models.SeedReport{}, errors.Wrap(models.BadParameterError, "count must be positive")
	}
	exec := usecase.executorFactory.NewExecutor()

	sellerId, err := usecase.sellerId(ctx)
	if err != nil {
		return models.SeedReport{}, err
	}
	categories, err := usecase.repository.ListCategories(ctx, exec)
	if err != nil {
		return models.SeedReport{}, err
	}

	var report models.SeedReport
	for _, category := range models.BuildCategoryTree(categories) {
		generated, err := usecase.generator.GenerateProducts(ctx, category.Name, count)
		if err != nil {
			logger.WarnContext(ctx, "product generation failed, skipping category",
				"category", category.Name, "error", err.Error())
			continue
		}

		categoryReport, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
			func(tx repositories.Transaction) (models.SeedReport, error) {
				return usecase.insertGenerated(ctx, tx, category, sellerId, generated)
			})
		if err != nil {
			return report, err
		}
		report.Products += categoryReport.Products
		report.Reviews += categoryReport.Reviews
		logger.InfoContext(ctx, "generated products inserted",
			"category", category.Name, "products", categoryReport.Products)
	}

	NewCatalogCache(usecase.cache).Invalidate(ctx)
	return report, nil
}

func (usecase *SeedUsecase) insertGenerated(
	ctx context.Context,
	tx repositories.Transaction,
	category models.Category,
	sellerId int64,
	generated []models.GeneratedProduct,
) (models.SeedReport, error) {
	var report models.SeedReport
	reviewers, err := usecase.ensureReviewers(ctx, tx)
	if err != nil {
		return report, err
	}

	for i, g := range generated {
		product, err := usecase.repository.CreateProduct(ctx, tx, sellerId, models.CreateProductInput{
			Name:        g.Name,
			Description: g.Description,
			Price:       g.Price,
			Stock:       g.Stock,
			CategoryId:  &category.Id,
		})
		if err != nil {
			return report, err
		}
		report.Products++

		if strings.TrimSpace(g.ReviewContent) != "" && models.ValidateRating(g.ReviewRating) == nil {
			if _, err := usecase.repository.CreateReview(ctx, tx, reviewers[i%len(reviewers)].Id,
				models.CreateReviewInput{
					ProductId: product.Id,
					Content:   g.ReviewContent,
					Rating:    g.ReviewRating,
				}); err != nil {
				return report, err
			}
			report.Reviews++
		}
		if err := usecase.finishProduct(ctx, tx, product.Id); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (usecase *SeedUsecase) finishProduct(ctx context.Context, tx repositories.Transaction, productId int64) error {
	if err := RecomputeProductRatingStats(ctx, tx, usecase.repository, productId); err != nil {
		return err
	}
	return usecase.taskQueue.EnqueueIndexProductKnowledge(ctx, tx, productId)
}

func (usecase *SeedUsecase) sellerId(ctx context.Context) (int64, error) {
	exec := usecase.executorFactory.NewExecutor()
	for _, role := range []models.Role{models.VENDOR, models.ADMIN, models.NO_ROLE} {
		user, err := usecase.repository.FirstUserWithRole(ctx, exec, role)
		if err != nil {
			return 0, err
		}
		if user != nil {
			return user.Id, nil
		}
	}
	return 0, errors.Wrap(models.NotFoundError, "no user to own the products, run -seed-admin first")
}

func (usecase *SeedUsecase) ensureCategory(ctx context.Context, exec repositories.Executor,
	input models.CreateCategoryInput,
) (models.Category, bool, error) {
	existing, err := usecase.repository.GetCategoryByName(ctx, exec, input.Name)
	if err != nil {
		return models.Category{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}
	category, err := usecase.repository.CreateCategory(ctx, exec, input)
	return category, err == nil, err
}

// ensureReviewers returns the customer accounts that sign the sample reviews. They get
// a random password nobody knows.
func (usecase *SeedUsecase) ensureReviewers(ctx context.Context, exec repositories.Executor) ([]models.User, error) {
	reviewers := make([]models.User, 0, sampleReviewers)
	for i := 1; i <= sampleReviewers; i++ {
		username := fmt.Sprintf("%s%d", reviewerUsernamePrefix, i)
		existing, err := usecase.repository.GetUserByUsername(ctx, exec, username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			reviewers = append(reviewers, *existing)
			continue
		}

		hash, err := HashPassword(uuid.NewString())
		if err != nil {
			return nil, err
		}
		reviewer, err := usecase.repository.CreateUser(ctx, exec, models.CreateUser{
			Username:     username,
			Email:        fmt.Sprintf("%s@reviewers.storefront.local", username),
			Name:         faker.FirstName(),
			Surname:      faker.LastName(),
			PasswordHash: hash,
			Role:         models.CUSTOMER,
		})
		if err != nil {
			return nil, err
		}
		reviewers = append(reviewers, reviewer)
	}
	return reviewers, nil
}
