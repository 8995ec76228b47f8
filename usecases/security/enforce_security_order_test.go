package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront/storefront-backend/models"
)

func TestEnforceSecurityOrder(t *testing.T) {
	order := models.Order{
		Id:     1,
		UserId: 10,
		Items:  []models.OrderItem{{VendorId: 20}},
	}

	tts := []struct {
		name        string
		credentials models.Credentials
		check       func(e *EnforceSecurityOrderImpl) error
		allowed     bool
	}{
		{"buyer reads", models.Credentials{UserId: 10, Role: models.CUSTOMER}, func(e *EnforceSecurityOrderImpl) error { return e.ReadOrder(order) }, true},
		{"selling vendor reads", models.Credentials{UserId: 20, Role: models.VENDOR}, func(e *EnforceSecurityOrderImpl) error { return e.ReadOrder(order) }, true},
		{"other vendor cannot read", models.Credentials{UserId: 21, Role: models.VENDOR}, func(e *EnforceSecurityOrderImpl) error { return e.ReadOrder(order) }, false},
		{"other customer cannot read", models.Credentials{UserId: 11, Role: models.CUSTOMER}, func(e *EnforceSecurityOrderImpl) error { return e.ReadOrder(order) }, false},
		{"admin reads", models.Credentials{UserId: 1, Role: models.ADMIN}, func(e *EnforceSecurityOrderImpl) error { return e.ReadOrder(order) }, true},
		{"selling vendor ships", models.Credentials{UserId: 20, Role: models.VENDOR}, func(e *EnforceSecurityOrderImpl) error { return e.ShipOrder(order) }, true},
		{"buyer cannot ship", models.Credentials{UserId: 10, Role: models.CUSTOMER}, func(e *EnforceSecurityOrderImpl) error { return e.ShipOrder(order) }, false},
		{"buyer confirms receipt", models.Credentials{UserId: 10, Role: models.CUSTOMER}, func(e *EnforceSecurityOrderImpl) error { return e.ConfirmReceipt(order) }, true},
		{"admin cannot confirm receipt", models.Credentials{UserId: 1, Role: models.ADMIN}, func(e *EnforceSecurityOrderImpl) error { return e.ConfirmReceipt(order) }, false},
		{"admin cancels", models.Credentials{UserId: 1, Role: models.ADMIN}, func(e *EnforceSecurityOrderImpl) error { return e.CancelOrder(order) }, true},
		{"vendor cannot cancel", models.Credentials{UserId: 20, Role: models.VENDOR}, func(e *EnforceSecurityOrderImpl) error { return e.CancelOrder(order) }, false},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			e := &EnforceSecurityOrderImpl{EnforceSecurityImpl{Credentials: tt.credentials}}
			err := tt.check(e)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, models.ForbiddenError)
			}
		})
	}
}

func TestVisibleOrders(t *testing.T) {
	customer := &EnforceSecurityOrderImpl{EnforceSecurityImpl{Credentials: models.Credentials{UserId: 10, Role: models.CUSTOMER}}}
	filters, err := customer.VisibleOrders(models.OrderFilters{})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), *filters.UserId)
	assert.Nil(t, filters.VendorId)

	vendor := &EnforceSecurityOrderImpl{EnforceSecurityImpl{Credentials: models.Credentials{UserId: 20, Role: models.VENDOR}}}
	filters, err = vendor.VisibleOrders(models.OrderFilters{})
	assert.NoError(t, err)
	assert.Nil(t, filters.UserId)
	assert.Equal(t, int64(20), *filters.VendorId)

	admin := &EnforceSecurityOrderImpl{EnforceSecurityImpl{Credentials: models.Credentials{UserId: 1, Role: models.ADMIN}}}
	filters, err = admin.VisibleOrders(models.OrderFilters{})
	assert.NoError(t, err)
	assert.Nil(t, filters.UserId)
	assert.Nil(t, filters.VendorId)

	anonymous := &EnforceSecurityOrderImpl{}
	_, err = anonymous.VisibleOrders(models.OrderFilters{})
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}
