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

type OrderUsecaseTestSuite struct {
	suite.Suite
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	repository         *mocks.OrderRepository

	ctx         context.Context
	credentials models.Credentials
}

func (suite *OrderUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.OrderRepository)

	suite.ctx = context.Background()
	suite.credentials = models.Credentials{UserId: 3, Role: models.CUSTOMER}
}

func (suite *OrderUsecaseTestSuite) makeUsecase() *OrderUsecase {
	return &OrderUsecase{
		enforceSecurity: &security.EnforceSecurityOrderImpl{
			EnforceSecurityImpl: security.EnforceSecurityImpl{Credentials: suite.credentials},
		},
		executorFactory:    suite.executorFactory,
		transactionFactory: suite.transactionFactory,
		repository:         suite.repository,
		catalogCache:       NewCatalogCache(repositories.NewMemoryCache(16, clock.New())),
		credentials:        suite.credentials,
	}
}

func (suite *OrderUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.transactionFactory.AssertExpectations(t)
	suite.executorFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
}

func (suite *OrderUsecaseTestSuite) TestPlaceOrder() {
	cart := []models.CartItem{
		{Id: 1, UserId: 3, ProductId: 9, Quantity: 1},
		{Id: 2, UserId: 3, ProductId: 4, Quantity: 2},
	}
	products := []models.Product{
		{Id: 4, Name: "Cast Iron Skillet", Price: 49, Stock: 10, IsActive: true, VendorId: 20},
		{Id: 9, Name: "Espresso Machine", Price: 449, PromotionalPrice: pure_utils.Ptr(399.0), Stock: 1, IsActive: true, VendorId: 21},
	}
	expectedItems := []models.OrderItem{
		{ProductId: pure_utils.Ptr(int64(9)), VendorId: 21, ProductName: "Espresso Machine", Quantity: 1, UnitPrice: 399, TotalPrice: 399},
		{ProductId: pure_utils.Ptr(int64(4)), VendorId: 20, ProductName: "Cast Iron Skillet", Quantity: 2, UnitPrice: 49, TotalPrice: 98},
	}
	expected := models.Order{Id: 50, UserId: 3, TotalAmount: 497, Status: models.OrderPending, Items: expectedItems}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ListCartItems", suite.transaction, int64(3)).Return(cart, nil)
	suite.repository.On("LockProducts", suite.transaction, []int64{4, 9}).Return(products, nil)
	suite.repository.On("AdjustStock", suite.transaction, int64(9), -1).Return(nil)
	suite.repository.On("AdjustStock", suite.transaction, int64(4), -2).Return(nil)
	suite.repository.On("CreateOrder", suite.transaction, int64(3), expectedItems).Return(expected, nil)
	suite.repository.On("ClearCart", suite.transaction, int64(3)).Return(nil)

	order, err := suite.makeUsecase().PlaceOrder(suite.ctx)

	suite.NoError(err)
	suite.Equal(expected, order)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestPlaceOrder_emptyCart() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ListCartItems", suite.transaction, int64(3)).Return([]models.CartItem{}, nil)

	_, err := suite.makeUsecase().PlaceOrder(suite.ctx)

	suite.ErrorIs(err, models.ErrEmptyCart)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestPlaceOrder_notEnoughStock() {
	cart := []models.CartItem{{Id: 1, UserId: 3, ProductId: 4, Quantity: 3}}
	products := []models.Product{{Id: 4, Name: "Cast Iron Skillet", Price: 49, Stock: 2, IsActive: true}}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("ListCartItems", suite.transaction, int64(3)).Return(cart, nil)
	suite.repository.On("LockProducts", suite.transaction, []int64{4}).Return(products, nil)

	_, err := suite.makeUsecase().PlaceOrder(suite.ctx)

	suite.ErrorIs(err, models.BadParameterError)
	suite.ErrorContains(err, "Available stock: 2")
	suite.repository.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestCancelOrder_restoresStock() {
	pending := models.Order{
		Id: 50, UserId: 3, Status: models.OrderPending,
		Items: []models.OrderItem{
			{ProductId: pure_utils.Ptr(int64(4)), Quantity: 2},
			{ProductId: nil, Quantity: 1},
		},
	}
	canceled := pending
	canceled.Status = models.OrderCanceled

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(pending, nil)
	suite.repository.On("AdjustStock", suite.transaction, int64(4), 2).Return(nil)
	suite.repository.On("UpdateOrderStatus", suite.transaction, models.UpdateOrderStatus{
		OrderId: 50, Status: models.OrderCanceled,
	}).Return(nil)
	suite.repository.On("GetOrderById", suite.transaction, int64(50)).Return(canceled, nil)

	order, err := suite.makeUsecase().CancelOrder(suite.ctx, 50)

	suite.NoError(err)
	suite.Equal(models.OrderCanceled, order.Status)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestShipOrder_pendingOrderCannotShip() {
	suite.credentials = models.Credentials{UserId: 20, Role: models.VENDOR}
	pending := models.Order{
		Id: 50, UserId: 3, Status: models.OrderPending,
		Items: []models.OrderItem{{VendorId: 20, Quantity: 1}},
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(pending, nil)

	_, err := suite.makeUsecase().ShipOrder(suite.ctx, 50, "TRACK-1")

	suite.ErrorIs(err, models.BadParameterError)
	suite.ErrorContains(err, "order cannot go from pending to shipped")
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestShipOrder_otherVendor() {
	suite.credentials = models.Credentials{UserId: 30, Role: models.VENDOR}
	paid := models.Order{
		Id: 50, UserId: 3, Status: models.OrderPaid,
		Items: []models.OrderItem{{VendorId: 20, Quantity: 1}},
	}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(paid, nil)

	_, err := suite.makeUsecase().ShipOrder(suite.ctx, 50, "TRACK-1")

	suite.ErrorIs(err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestShipOrder_missingTrackingNumber() {
	_, err := suite.makeUsecase().ShipOrder(suite.ctx, 50, "   ")

	suite.ErrorIs(err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestConfirmReceipt_buyerCompletesShippedOrder() {
	shipped := models.Order{Id: 50, UserId: 3, Status: models.OrderShipped, TrackingNumber: pure_utils.Ptr("TRACK-1")}
	completed := shipped
	completed.Status = models.OrderCompleted

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(shipped, nil)
	suite.repository.On("UpdateOrderStatus", suite.transaction, models.UpdateOrderStatus{
		OrderId: 50, Status: models.OrderCompleted,
	}).Return(nil)
	suite.repository.On("GetOrderById", suite.transaction, int64(50)).Return(completed, nil)

	order, err := suite.makeUsecase().ConfirmReceipt(suite.ctx, 50)

	suite.NoError(err)
	suite.Equal(models.OrderCompleted, order.Status)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestConfirmReceipt_otherCustomerForbidden() {
	suite.credentials = models.Credentials{UserId: 4, Role: models.CUSTOMER}
	shipped := models.Order{Id: 50, UserId: 3, Status: models.OrderShipped}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(shipped, nil)

	_, err := suite.makeUsecase().ConfirmReceipt(suite.ctx, 50)

	suite.ErrorIs(err, models.ForbiddenError)
	suite.repository.AssertNotCalled(suite.T(), "UpdateOrderStatus", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestConfirmReceipt_paidOrderNotShippedYet() {
	paid := models.Order{Id: 50, UserId: 3, Status: models.OrderPaid}

	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(paid, nil)

	_, err := suite.makeUsecase().ConfirmReceipt(suite.ctx, 50)

	suite.ErrorIs(err, models.BadParameterError)
	suite.ErrorContains(err, "order cannot go from paid to completed")
	suite.repository.AssertNotCalled(suite.T(), "UpdateOrderStatus", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestListOrdersByStatus_unknown() {
	_, err := suite.makeUsecase().ListOrdersByStatus(suite.ctx, "lost")

	suite.ErrorIs(err, models.ErrInvalidOrderStatus)
	suite.AssertExpectations()
}

func (suite *OrderUsecaseTestSuite) TestListOrders_vendorSeesOwnSales() {
	suite.credentials = models.Credentials{UserId: 20, Role: models.VENDOR}
	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("ListOrders", suite.transaction, models.OrderFilters{
		VendorId: pure_utils.Ptr(int64(20)),
	}).Return([]models.Order{}, nil)

	orders, err := suite.makeUsecase().ListOrders(suite.ctx, nil)

	suite.NoError(err)
	suite.Empty(orders)
	suite.AssertExpectations()
}

func TestOrderUsecase(t *testing.T) {
	suite.Run(t, new(OrderUsecaseTestSuite))
}
