package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[[2]OrderStatus]bool{
		{OrderPending, OrderPaid}:      true,
		{OrderPending, OrderCanceled}:  true,
		{OrderPaid, OrderShipped}:      true,
		{OrderShipped, OrderCompleted}: true,
	}

	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				expected := allowed[[2]OrderStatus{from, to}]
				assert.Equal(t, expected, from.CanTransitionTo(to))

				err := from.TransitionTo(to)
				if expected {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, BadParameterError)
				}
			})
		}
	}
}

func TestOrderStatusFrom(t *testing.T) {
	status, err := OrderStatusFrom("shipped")
	assert.NoError(t, err)
	assert.Equal(t, OrderShipped, status)

	_, err = OrderStatusFrom("Shipped")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{{TotalPrice: 0.1}, {TotalPrice: 0.2}, {TotalPrice: 10}}
	assert.Equal(t, 10.3, OrderTotal(items))
}
