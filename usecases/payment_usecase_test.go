package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/storefront/storefront-backend/mocks"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/usecases/security"
)

type PaymentUsecaseTestSuite struct {
	suite.Suite
	transaction        *mocks.Transaction
	transactionFactory *mocks.TransactionFactory
	executorFactory    *mocks.ExecutorFactory
	repository         *mocks.PaymentRepository
	gateway            *mocks.PaymentGateway

	ctx         context.Context
	credentials models.Credentials
	order       models.Order
}

func (suite *PaymentUsecaseTestSuite) SetupTest() {
	suite.transaction = new(mocks.Transaction)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transaction}
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.repository = new(mocks.PaymentRepository)
	suite.gateway = new(mocks.PaymentGateway)

	suite.ctx = context.Background()
	suite.credentials = models.Credentials{UserId: 3, Role: models.CUSTOMER}
	suite.order = models.Order{Id: 50, UserId: 3, TotalAmount: 42.5, Status: models.OrderPending}
}

func (suite *PaymentUsecaseTestSuite) makeUsecase() *PaymentUsecase {
	return &PaymentUsecase{
		enforceSecurity: &security.EnforceSecurityOrderImpl{
			EnforceSecurityImpl: security.EnforceSecurityImpl{Credentials: suite.credentials},
		},
		executorFactory:    suite.executorFactory,
		transactionFactory: suite.transactionFactory,
		repository:         suite.repository,
		gateway:            suite.gateway,
		currency:           "usd",
		credentials:        suite.credentials,
	}
}

func (suite *PaymentUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.transactionFactory.AssertExpectations(t)
	suite.executorFactory.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.gateway.AssertExpectations(t)
}

func (suite *PaymentUsecaseTestSuite) TestCheckout() {
	session := models.CheckoutSession{SessionId: "cs_1", Amount: 42.5, Currency: "usd"}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(suite.order, nil)
	suite.repository.On("HasCompletedPayment", suite.transaction, int64(50)).Return(false, nil)
	suite.gateway.On("CreateCheckoutSession", suite.order, "usd").Return(session, nil)
	suite.repository.On("CreatePayment", suite.transaction, models.CreatePayment{
		OrderId:   50,
		UserId:    3,
		Amount:    42.5,
		Currency:  "usd",
		SessionId: "cs_1",
	}).Return(models.Payment{Id: 1}, nil)

	result, err := suite.makeUsecase().Checkout(suite.ctx, 50)

	suite.NoError(err)
	suite.Equal(session, result)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestCheckout_alreadyPaid() {
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(suite.order, nil)
	suite.repository.On("HasCompletedPayment", suite.transaction, int64(50)).Return(true, nil)

	_, err := suite.makeUsecase().Checkout(suite.ctx, 50)

	suite.ErrorIs(err, models.ErrOrderAlreadyPaid)
	suite.ErrorIs(err, models.ConflictError)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestCheckout_notOwner() {
	suite.credentials = models.Credentials{UserId: 4, Role: models.CUSTOMER}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(suite.order, nil)

	_, err := suite.makeUsecase().Checkout(suite.ctx, 50)

	suite.ErrorIs(err, models.ForbiddenError)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestCheckout_canceledOrder() {
	suite.order.Status = models.OrderCanceled
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(suite.order, nil)

	_, err := suite.makeUsecase().Checkout(suite.ctx, 50)

	suite.ErrorIs(err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestMockSuccess() {
	payment := models.Payment{Id: 7, OrderId: 50, Amount: 42.5, Status: models.PaymentPending, SessionId: "cs_1"}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetPaymentBySessionId", suite.transaction, "cs_1", true).Return(payment, nil)
	suite.repository.On("GetOrderByIdForUpdate", suite.transaction, int64(50)).Return(suite.order, nil)
	suite.repository.On("UpdatePaymentStatus", suite.transaction, int64(7), models.PaymentCompleted).Return(nil)
	suite.repository.On("UpdateOrderStatus", suite.transaction, models.UpdateOrderStatus{
		OrderId: 50,
		Status:  models.OrderPaid,
	}).Return(nil)

	result, err := suite.makeUsecase().MockSuccess(suite.ctx, "cs_1")

	suite.NoError(err)
	suite.Equal(models.PaymentCompleted, result.Status)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestMockSuccess_alreadyCompleted() {
	payment := models.Payment{Id: 7, OrderId: 50, Status: models.PaymentCompleted, SessionId: "cs_1"}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetPaymentBySessionId", suite.transaction, "cs_1", true).Return(payment, nil)

	_, err := suite.makeUsecase().MockSuccess(suite.ctx, "cs_1")

	suite.ErrorIs(err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestMockSuccess_missingSessionId() {
	_, err := suite.makeUsecase().MockSuccess(suite.ctx, "  ")

	suite.ErrorIs(err, models.BadParameterError)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestMockCancel() {
	payment := models.Payment{Id: 7, OrderId: 50, Status: models.PaymentPending, SessionId: "cs_1"}
	suite.transactionFactory.On("Transaction", suite.ctx, mock.Anything).Return(nil)
	suite.repository.On("GetPaymentBySessionId", suite.transaction, "cs_1", true).Return(payment, nil)
	suite.repository.On("UpdatePaymentStatus", suite.transaction, int64(7), models.PaymentFailed).Return(nil)

	result, err := suite.makeUsecase().MockCancel(suite.ctx, "cs_1")

	suite.NoError(err)
	suite.Equal(models.PaymentFailed, result.Status)
	suite.AssertExpectations()
}

func (suite *PaymentUsecaseTestSuite) TestListPaymentsOfOrder_otherCustomer() {
	suite.credentials = models.Credentials{UserId: 4, Role: models.CUSTOMER}
	suite.executorFactory.On("NewExecutor").Return(suite.transaction)
	suite.repository.On("GetOrderById", suite.transaction, int64(50)).Return(suite.order, nil)

	_, err := suite.makeUsecase().ListPaymentsOfOrder(suite.ctx, 50)

	suite.ErrorIs(err, models.ForbiddenError)
	suite.AssertExpectations()
}

func TestPaymentUsecase(t *testing.T) {
	suite.Run(t, new(PaymentUsecaseTestSuite))
}
