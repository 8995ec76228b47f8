package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	Id        int64
	OrderId   int64
	UserId    int64
	Amount    float64
	Currency  string
	Status    PaymentStatus
	SessionId string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreatePayment struct {
	OrderId   int64
	UserId    int64
	Amount    float64
	Currency  string
	SessionId string
}

type CheckoutSession struct {
	SessionId   string
	CheckoutUrl string
	SuccessUrl  string
	CancelUrl   string
	Amount      float64
	Currency    string
}
