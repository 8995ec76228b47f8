package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/storefront/storefront-backend/mocks"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/repositories/clock"
	"github.com/storefront/storefront-backend/usecases/security"
)

type ProductUsecaseTestSuite struct {
	suite.Suite
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	repository         *mocks.ProductRepository
	taskQueue          *mocks.TaskQueueRepository
	cache              repositories.Cache

	ctx     context.Context
	product models.Product
}

func (suite *ProductUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.ProductRepository)
	suite.taskQueue = new(mocks.TaskQueueRepository)
	suite.cache = repositories.NewMemoryCache(64, clock.New())

	suite.ctx = context.Background()
	suite.product = models.Product{Id: 12, Name: "Cast iron pan", Price: 45, Stock: 4, IsActive: true, VendorId: 5}
}

func (suite *ProductUsecaseTestSuite) makeUsecase(creds models.Credentials) *ProductUsecase {
	return &ProductUsecase{
		enforceSecurity: &security.EnforceSecurityCatalogImpl{
			EnforceSecurityImpl: security.EnforceSecurityImpl{Credentials: creds},
		},
		executorFactory:    suite.executorFactory,
		transactionFactory: suite.transactionFactory,
		repository:         suite.repository,
		taskQueue:          suite.taskQueue,
		catalogCache:       NewCatalogCache(suite.cache),
		credentials:        creds,
	}
}

func (suite *ProductUsecaseTestSuite) AssertExpectations() {
	suite.repository.AssertExpectations(suite.T())
	suite.taskQueue.AssertExpectations(suite.T())
	suite.transactionFactory.AssertExpectations(suite.T())
}

func (suite *ProductUsecaseTestSuite) TestListProducts_readThroughCache() {
	exec := suite.transaction
	filters := models.ProductFilters{Pagination: models.Pagination{Page: 1, Size: 10}}
	page := models.Page[models.Product]{Items: []models.Product{suite.product}, Total: 1, Page: 1, Size: 10}
	suite.executorFactory.On("NewExecutor").Return(exec)
	suite.repository.On("ListProducts", exec, filters).Return(page, nil).Once()

	usecase := suite.makeUsecase(models.Credentials{})
	first, err := usecase.ListProducts(suite.ctx, models.ProductFilters{})
	suite.Require().NoError(err)
	second, err := usecase.ListProducts(suite.ctx, models.ProductFilters{})
	suite.Require().NoError(err)

	suite.Equal(1, first.Total)
	suite.Equal("Cast iron pan", second.Items[0].Name)
	suite.AssertExpectations()
}

func (suite *ProductUsecaseTestSuite) TestListProducts_emptyPageIsNotFound() {
	exec := suite.transaction
	suite.executorFactory.On("NewExecutor").Return(exec)
	suite.repository.On("ListProducts", exec, mock.Anything).
		Return(models.Page[models.Product]{Items: []models.Product{}, Page: 3, Size: 10}, nil)

	_, err := suite.makeUsecase(models.Credentials{}).ListProducts(suite.ctx,
		models.ProductFilters{Pagination: models.Pagination{Page: 3}})

	suite.ErrorIs(err, models.NotFoundError)
	suite.AssertExpectations()
}

func (suite *ProductUsecaseTestSuite) TestListProducts_invertedPriceRange() {
	_, err := suite.makeUsecase(models.Credentials{}).ListProducts(suite.ctx, models.ProductFilters{
		MinPrice: pure_utils.Ptr(50.0),
		MaxPrice: pure_utils.Ptr(10.0),
	})

	suite.ErrorIs(err, models.BadParameterError)
	suite.repository.AssertNotCalled(suite.T(), "ListProducts", mock.Anything, mock.Anything)
}

func (suite *ProductUsecaseTestSuite) TestSearchProducts_blankQuery() {
	_, err := suite.makeUsecase(models.Credentials{}).SearchProducts(suite.ctx, models.ProductSearch{Query: "   "})

	suite.ErrorIs(err, models.ErrEmptySearchQuery)
	suite.ErrorIs(err, models.BadParameterError)
}

func (suite *ProductUsecaseTestSuite) TestGetProduct_countsOneViewPerClient() {
	exec := suite.transaction
	suite.executorFactory.On("NewExecutor").Return(exec)
	suite.repository.On("GetProductById", exec, int64(12)).Return(suite.product, nil)
	suite.repository.On("IncrementViewCount", exec, int64(12)).Return(nil).Once()

	usecase := suite.makeUsecase(models.Credentials{})
	viewed, err := usecase.GetProduct(suite.ctx, 12, "10.0.0.1")
	suite.Require().NoError(err)
	suite.Equal(1, viewed.ViewCount)

	again, err := usecase.GetProduct(suite.ctx, 12, "10.0.0.1")
	suite.Require().NoError(err)
	suite.Equal(0, again.ViewCount)
	suite.AssertExpectations()
}

func (suite *ProductUsecaseTestSuite) TestCreateProduct_enqueuesIndexing() {
	tx := suite.transaction
	creds := models.Credentials{UserId: 5, Role: models.VENDOR}
	input := models.CreateProductInput{Name: "Cast iron pan", Price: 45, Stock: 4}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("CreateProduct", tx, int64(5), input).Return(suite.product, nil)
	suite.taskQueue.On("EnqueueIndexProductKnowledge", tx, int64(12)).Return(nil)

	product, err := suite.makeUsecase(creds).CreateProduct(suite.ctx, input)

	suite.NoError(err)
	suite.Equal(int64(12), product.Id)
	suite.AssertExpectations()
}

func (suite *ProductUsecaseTestSuite) TestCreateProduct_customerForbidden() {
	_, err := suite.makeUsecase(models.Credentials{UserId: 3, Role: models.CUSTOMER}).CreateProduct(suite.ctx,
		models.CreateProductInput{Name: "Cast iron pan", Price: 45, Stock: 4})

	suite.ErrorIs(err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *ProductUsecaseTestSuite) TestCreateProduct_nonPositivePrice() {
	_, err := suite.makeUsecase(models.Credentials{UserId: 5, Role: models.VENDOR}).CreateProduct(suite.ctx,
		models.CreateProductInput{Name: "Cast iron pan", Price: 0, Stock: 4})

	suite.ErrorIs(err, models.BadParameterError)
}

func (suite *ProductUsecaseTestSuite) TestUpdateProduct_otherVendorForbidden() {
	tx := suite.transaction
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetProductByIdForUpdate", tx, int64(12)).Return(suite.product, nil)

	_, err := suite.makeUsecase(models.Credentials{UserId: 6, Role: models.VENDOR}).UpdateProduct(suite.ctx, 12,
		models.UpdateProductInput{Stock: pure_utils.Ptr(0)})

	suite.ErrorIs(err, models.ForbiddenError)
	suite.repository.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *ProductUsecaseTestSuite) TestDeleteProduct_adminDropsKnowledge() {
	tx := suite.transaction
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetProductByIdForUpdate", tx, int64(12)).Return(suite.product, nil)
	suite.repository.On("DeleteProduct", tx, int64(12)).Return(nil)
	suite.taskQueue.On("EnqueueDeleteProductKnowledge", tx, int64(12)).Return(nil)

	err := suite.makeUsecase(models.Credentials{UserId: 1, Role: models.ADMIN}).DeleteProduct(suite.ctx, 12)

	suite.NoError(err)
	suite.AssertExpectations()
}

func TestProductUsecase(t *testing.T) {
	suite.Run(t, new(ProductUsecaseTestSuite))
}
