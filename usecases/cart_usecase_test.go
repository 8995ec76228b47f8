package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/storefront/storefront-backend/mocks"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/usecases/security"
)

type CartUsecaseTestSuite struct {
	suite.Suite
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	repository         *mocks.CartRepository

	ctx         context.Context
	credentials models.Credentials
	product     models.Product
}

func (suite *CartUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.CartRepository)

	suite.ctx = context.Background()
	suite.credentials = models.Credentials{UserId: 3, Role: models.CUSTOMER}
	suite.product = models.Product{
		Id:               7,
		Name:             "Echo Buds 2",
		Price:            10,
		PromotionalPrice: pure_utils.Ptr(8.0),
		Stock:            5,
		IsActive:         true,
	}
}

func (suite *CartUsecaseTestSuite) makeUsecase() *CartUsecase {
	return &CartUsecase{
		enforceSecurity: &security.EnforceSecurityCartImpl{
			EnforceSecurityImpl: security.EnforceSecurityImpl{Credentials: suite.credentials},
		},
		executorFactory:    suite.executorFactory,
		transactionFactory: suite.transactionFactory,
		repository:         suite.repository,
		credentials:        suite.credentials,
	}
}

func (suite *CartUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.transactionFactory.AssertExpectations(t)
	suite.executorFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
}

func (suite *CartUsecaseTestSuite) TestAddToCart_newLine() {
	expected := models.CartItem{Id: 1, UserId: 3, ProductId: 7, Quantity: 2, Price: 16}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetProductById", suite.transaction, int64(7)).Return(suite.product, nil)
	suite.repository.On("GetCartItemByProduct", suite.transaction, int64(3), int64(7)).
		Return((*models.CartItem)(nil), nil)
	suite.repository.On("CreateCartItem", suite.transaction, models.CartItem{
		UserId: 3, ProductId: 7, Quantity: 2, Price: 16,
	}).Return(expected, nil)

	item, err := suite.makeUsecase().AddToCart(suite.ctx, models.AddCartItemInput{ProductId: 7, Quantity: 2})

	suite.NoError(err)
	suite.Equal(expected, item)
	suite.AssertExpectations()
}

func (suite *CartUsecaseTestSuite) TestAddToCart_sumsExistingLine() {
	existing := &models.CartItem{Id: 11, UserId: 3, ProductId: 7, Quantity: 1, Price: 8}
	expected := models.CartItem{Id: 11, UserId: 3, ProductId: 7, Quantity: 3, Price: 24}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetProductById", suite.transaction, int64(7)).Return(suite.product, nil)
	suite.repository.On("GetCartItemByProduct", suite.transaction, int64(3), int64(7)).Return(existing, nil)
	suite.repository.On("UpdateCartItem", suite.transaction, int64(11), 3, 24.0).Return(expected, nil)

	item, err := suite.makeUsecase().AddToCart(suite.ctx, models.AddCartItemInput{ProductId: 7, Quantity: 2})

	suite.NoError(err)
	suite.Equal(expected, item)
	suite.AssertExpectations()
}

func (suite *CartUsecaseTestSuite) TestAddToCart_stockExceeded() {
	existing := &models.CartItem{Id: 11, UserId: 3, ProductId: 7, Quantity: 4}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetProductById", suite.transaction, int64(7)).Return(suite.product, nil)
	suite.repository.On("GetCartItemByProduct", suite.transaction, int64(3), int64(7)).Return(existing, nil)

	_, err := suite.makeUsecase().AddToCart(suite.ctx, models.AddCartItemInput{ProductId: 7, Quantity: 2})

	suite.ErrorIs(err, models.BadParameterError)
	suite.ErrorContains(err, "Available stock: 5, current in cart: 4")
	suite.AssertExpectations()
}

func (suite *CartUsecaseTestSuite) TestAddToCart_inactiveProduct() {
	suite.product.IsActive = false
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetProductById", suite.transaction, int64(7)).Return(suite.product, nil)

	_, err := suite.makeUsecase().AddToCart(suite.ctx, models.AddCartItemInput{ProductId: 7, Quantity: 1})

	suite.ErrorIs(err, models.ErrProductNotFound)
	suite.AssertExpectations()
}

func (suite *CartUsecaseTestSuite) TestAddToCart_invalidQuantity() {
	_, err := suite.makeUsecase().AddToCart(suite.ctx, models.AddCartItemInput{ProductId: 7, Quantity: 0})

	suite.ErrorIs(err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *CartUsecaseTestSuite) TestAddToCart_anonymous() {
	suite.credentials = models.Credentials{}

	_, err := suite.makeUsecase().AddToCart(suite.ctx, models.AddCartItemInput{ProductId: 7, Quantity: 1})

	suite.ErrorIs(err, models.UnAuthorizedError)
	suite.AssertExpectations()
}

func (suite *CartUsecaseTestSuite) TestGetCartItem_otherUser() {
	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("GetCartItem", suite.transaction, int64(11)).
		Return(models.CartItem{Id: 11, UserId: 99, ProductId: 7}, nil)

	_, err := suite.makeUsecase().GetCartItem(suite.ctx, 11)

	suite.ErrorIs(err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *CartUsecaseTestSuite) TestDeleteCartItem() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetCartItem", suite.transaction, int64(11)).
		Return(models.CartItem{Id: 11, UserId: 3, ProductId: 7}, nil)
	suite.repository.On("DeleteCartItem", suite.transaction, int64(11)).Return(nil)

	err := suite.makeUsecase().DeleteCartItem(suite.ctx, 11)

	suite.NoError(err)
	suite.AssertExpectations()
}

func TestCartUsecase(t *testing.T) {
	suite.Run(t, new(CartUsecaseTestSuite))
}

func TestLinePriceUsesLowerPromotionalPrice(t *testing.T) {
	product := models.Product{Price: 10, PromotionalPrice: pure_utils.Ptr(12.0)}
	assert.Equal(t, 30.0, models.LinePrice(product, 3))

	product.PromotionalPrice = pure_utils.Ptr(7.5)
	assert.Equal(t, 22.5, models.LinePrice(product, 3))
}
