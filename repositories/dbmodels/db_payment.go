package dbmodels

import (
	"time"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type DBPayment struct {
	Id              int64     `db:"id"`
	OrderId         int64     `db:"order_id"`
	UserId          int64     `db:"user_id"`
	Amount          float64   `db:"amount"`
	Currency        string    `db:"currency"`
	Status          string    `db:"status"`
	StripeSessionId string    `db:"stripe_session_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const TABLE_PAYMENTS = "payments"

var PaymentFields = utils.ColumnList[DBPayment]()

func AdaptPayment(db DBPayment) (models.Payment, error) {
	return models.Payment{
		Id:        db.Id,
		OrderId:   db.OrderId,
		UserId:    db.UserId,
		Amount:    db.Amount,
		Currency:  db.Currency,
		Status:    models.PaymentStatus(db.Status),
		SessionId: db.StripeSessionId,
		CreatedAt: db.CreatedAt,
		UpdatedAt: db.UpdatedAt,
	}, nil
}
