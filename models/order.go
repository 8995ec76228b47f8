package models

import (
	"math"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCanceled  OrderStatus = "canceled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCanceled}

func OrderStatusFrom(s string) (OrderStatus, error) {
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidOrderStatus
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPaid, OrderCanceled},
	OrderPaid:    {OrderShipped},
	OrderShipped: {OrderCompleted},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) TransitionTo(next OrderStatus) error {
	if !s.CanTransitionTo(next) {
		return NewInvalidTransitionError(s, next)
	}
	return nil
}

type Order struct {
	Id             int64
	UserId         int64
	TotalAmount    float64
	Status         OrderStatus
	TrackingNumber *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []OrderItem
}

func (o Order) HasVendor(vendorId int64) bool {
	for _, item := range o.Items {
		if item.VendorId == vendorId {
			return true
		}
	}
	return false
}

type OrderItem struct {
	Id          int64
	OrderId     int64
	ProductId   *int64
	VendorId    int64
	ProductName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
}

type OrderFilters struct {
	UserId   *int64
	VendorId *int64
	Status   *OrderStatus
}

type UpdateOrderStatus struct {
	OrderId        int64
	Status         OrderStatus
	TrackingNumber *string
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func OrderTotal(items []OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.TotalPrice
	}
	return roundCents(total)
}
