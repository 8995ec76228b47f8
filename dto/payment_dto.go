package dto

import (
	"time"

	"github.com/storefront/storefront-backend/models"
)

type CheckoutBody struct {
	OrderId int64 `json:"order_id" binding:"required,min=1"`
}

type SessionQuery struct {
	SessionId string `form:"session_id" binding:"required"`
}

type APICheckoutSession struct {
	SessionId   string  `json:"session_id"`
	CheckoutUrl string  `json:"checkout_url"`
	SuccessUrl  string  `json:"success_url"`
	CancelUrl   string  `json:"cancel_url"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

func AdaptCheckoutSessionDto(session models.CheckoutSession) APICheckoutSession {
	return APICheckoutSession{
		SessionId:   session.SessionId,
		CheckoutUrl: session.CheckoutUrl,
		SuccessUrl:  session.SuccessUrl,
		CancelUrl:   session.CancelUrl,
		Amount:      session.Amount,
		Currency:    session.Currency,
	}
}

type APIPayment struct {
	Id              int64     `json:"id"`
	OrderId         int64     `json:"order_id"`
	UserId          int64     `json:"user_id"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	StripeSessionId string    `json:"stripe_session_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func AdaptPaymentDto(payment models.Payment) APIPayment {
	return APIPayment{
		Id:              payment.Id,
		OrderId:         payment.OrderId,
		UserId:          payment.UserId,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		Status:          string(payment.Status),
		StripeSessionId: payment.SessionId,
		CreatedAt:       payment.CreatedAt,
		UpdatedAt:       payment.UpdatedAt,
	}
}
