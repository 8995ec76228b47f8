package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/security"
	"github.com/storefront/storefront-backend/utils"
)

type PaymentRepository interface {
	GetOrderById(ctx context.Context, exec repositories.Executor, orderId int64) (models.Order, error)
	GetOrderByIdForUpdate(ctx context.Context, exec repositories.Executor, orderId int64) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, exec repositories.Executor, update models.UpdateOrderStatus) error
	CreatePayment(ctx context.Context, exec repositories.Executor, payment models.CreatePayment) (models.Payment, error)
	GetPaymentBySessionId(ctx context.Context, exec repositories.Executor, sessionId string, forUpdate bool) (models.Payment, error)
	ListPaymentsOfOrder(ctx context.Context, exec repositories.Executor, orderId int64) ([]models.Payment, error)
	HasCompletedPayment(ctx context.Context, exec repositories.Executor, orderId int64) (bool, error)
	UpdatePaymentStatus(ctx context.Context, exec repositories.Executor, paymentId int64, status models.PaymentStatus) error
}

type PaymentUsecase struct {
	enforceSecurity    security.EnforceSecurityOrder
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         PaymentRepository
	gateway            repositories.PaymentGateway
	currency           string
	credentials        models.Credentials
}

func (usecase *PaymentUsecase) Checkout(ctx context.Context, orderId int64) (models.CheckoutSession, error) {
	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.CheckoutSession, error) {
			order, err := usecase.repository.GetOrderByIdForUpdate(ctx, tx, orderId)
			if err != nil {
				return models.CheckoutSession{}, err
			}
			if err := usecase.enforceSecurity.PayOrder(order); err != nil {
				return models.CheckoutSession{}, err
			}
			if order.Status != models.OrderPending {
				return models.CheckoutSession{}, errors.Wrapf(models.BadParameterError,
					"order %d is %s, only pending orders can be paid", order.Id, order.Status)
			}
			paid, err := usecase.repository.HasCompletedPayment(ctx, tx, order.Id)
			if err != nil {
				return models.CheckoutSession{}, err
			}
			if paid {
				return models.CheckoutSession{}, models.ErrOrderAlreadyPaid
			}

			session, err := usecase.gateway.CreateCheckoutSession(ctx, order, usecase.currency)
			if err != nil {
				return models.CheckoutSession{}, errors.Wrap(err, "error creating checkout session")
			}
			if _, err := usecase.repository.CreatePayment(ctx, tx, models.CreatePayment{
				OrderId:   order.Id,
				UserId:    order.UserId,
				Amount:    order.TotalAmount,
				Currency:  session.Currency,
				SessionId: session.SessionId,
			}); err != nil {
				return models.CheckoutSession{}, err
			}
			return session, nil
		})
}

// MockSuccess settles a pending payment and moves its order to paid.
func (usecase *PaymentUsecase) MockSuccess(ctx context.Context, sessionId string) (models.Payment, error) {
	if err := requireSessionId(sessionId); err != nil {
		return models.Payment{}, err
	}

	payment, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Payment, error) {
			payment, err := usecase.repository.GetPaymentBySessionId(ctx, tx, sessionId, true)
			if err != nil {
				return models.Payment{}, err
			}
			if payment.Status != models.PaymentPending {
				return models.Payment{}, errors.Wrapf(models.BadParameterError,
					"payment is already %s", payment.Status)
			}
			order, err := usecase.repository.GetOrderByIdForUpdate(ctx, tx, payment.OrderId)
			if err != nil {
				return models.Payment{}, err
			}
			if err := order.Status.TransitionTo(models.OrderPaid); err != nil {
				return models.Payment{}, err
			}
			if err := usecase.repository.UpdatePaymentStatus(ctx, tx, payment.Id, models.PaymentCompleted); err != nil {
				return models.Payment{}, err
			}
			if err := usecase.repository.UpdateOrderStatus(ctx, tx, models.UpdateOrderStatus{
				OrderId: order.Id,
				Status:  models.OrderPaid,
			}); err != nil {
				return models.Payment{}, err
			}
			payment.Status = models.PaymentCompleted
			return payment, nil
		})
	if err != nil {
		return models.Payment{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "payment completed",
		"payment_id", payment.Id, "order_id", payment.OrderId, "amount", payment.Amount)
	return payment, nil
}

// MockCancel marks a pending payment as failed. The order stays pending and can be paid again.
func (usecase *PaymentUsecase) MockCancel(ctx context.Context, sessionId string) (models.Payment, error) {
	if err := requireSessionId(sessionId); err != nil {
		return models.Payment{}, err
	}

	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Payment, error) {
			payment, err := usecase.repository.GetPaymentBySessionId(ctx, tx, sessionId, true)
			if err != nil {
				return models.Payment{}, err
			}
			if payment.Status == models.PaymentCompleted {
				return models.Payment{}, errors.Wrap(models.BadParameterError,
					"a completed payment cannot be canceled")
			}
			if payment.Status == models.PaymentFailed {
				return payment, nil
			}
			if err := usecase.repository.UpdatePaymentStatus(ctx, tx, payment.Id, models.PaymentFailed); err != nil {
				return models.Payment{}, err
			}
			payment.Status = models.PaymentFailed
			return payment, nil
		})
}

// Success is the landing page of the gateway after a successful checkout.
func (usecase *PaymentUsecase) Success(ctx context.Context, sessionId string) (models.Payment, error) {
	if err := requireSessionId(sessionId); err != nil {
		return models.Payment{}, err
	}
	return usecase.repository.GetPaymentBySessionId(ctx, usecase.executorFactory.NewExecutor(), sessionId, false)
}

func (usecase *PaymentUsecase) Cancel(ctx context.Context, sessionId string) (models.Payment, error) {
	return usecase.MockCancel(ctx, sessionId)
}

func (usecase *PaymentUsecase) ListPaymentsOfOrder(ctx context.Context, orderId int64) ([]models.Payment, error) {
	exec := usecase.executorFactory.NewExecutor()
	order, err := usecase.repository.GetOrderById(ctx, exec, orderId)
	if err != nil {
		return nil, err
	}
	if err := usecase.enforceSecurity.ReadPayments(order); err != nil {
		return nil, err
	}
	return usecase.repository.ListPaymentsOfOrder(ctx, exec, orderId)
}

func requireSessionId(sessionId string) error {
	if strings.TrimSpace(sessionId) == "" {
		return errors.Wrap(models.BadParameterError, "session_id is required")
	}
	return nil
}
