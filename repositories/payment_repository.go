package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

func selectPayments() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(dbmodels.PaymentFields...).
		From(dbmodels.TABLE_PAYMENTS)
}

func (repo *StoreDbRepository) CreatePayment(ctx context.Context, exec Executor, payment models.CreatePayment) (models.Payment, error) {
	return SqlToModel(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_PAYMENTS).
			Columns("order_id", "user_id", "amount", "currency", "status", "stripe_session_id").
			Values(payment.OrderId, payment.UserId, payment.Amount, payment.Currency,
				string(models.PaymentPending), payment.SessionId).
			Suffix("RETURNING "+columnList(dbmodels.PaymentFields)),
		dbmodels.AdaptPayment,
	)
}

func (repo *StoreDbRepository) GetPaymentBySessionId(ctx context.Context, exec Executor,
	sessionId string, forUpdate bool,
) (models.Payment, error) {
	query := selectPayments().Where(squirrel.Eq{"stripe_session_id": sessionId})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}
	payment, err := SqlToModel(ctx, exec, query, dbmodels.AdaptPayment)
	if errors.Is(err, models.NotFoundError) {
		return models.Payment{}, models.ErrPaymentNotFound
	}
	return payment, err
}

func (repo *StoreDbRepository) ListPaymentsOfOrder(ctx context.Context, exec Executor, orderId int64) ([]models.Payment, error) {
	return SqlToListOfModels(ctx, exec,
		selectPayments().Where(squirrel.Eq{"order_id": orderId}).OrderBy("created_at", "id"),
		dbmodels.AdaptPayment,
	)
}

func (repo *StoreDbRepository) HasCompletedPayment(ctx context.Context, exec Executor, orderId int64) (bool, error) {
	return QueryScalar[bool](ctx, exec,
		NewQueryBuilder().
			Select().
			Column(squirrel.Expr(
				"EXISTS (SELECT 1 FROM "+dbmodels.TABLE_PAYMENTS+" WHERE order_id = ? AND status = ?)",
				orderId, string(models.PaymentCompleted),
			)),
	)
}

func (repo *StoreDbRepository) UpdatePaymentStatus(ctx context.Context, exec Executor,
	paymentId int64, status models.PaymentStatus,
) error {
	affected, err := ExecBuilder(ctx, exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_PAYMENTS).
			Set("status", string(status)).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": paymentId}),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPaymentNotFound
	}
	return nil
}
