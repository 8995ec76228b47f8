package security

import (
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
)

type EnforceSecurityOrder interface {
	PlaceOrder() error
	ReadOrder(order models.Order) error
	VisibleOrders(filters models.OrderFilters) (models.OrderFilters, error)
	CancelOrder(order models.Order) error
	ShipOrder(order models.Order) error
	ConfirmReceipt(order models.Order) error
	PayOrder(order models.Order) error
	ReadPayments(order models.Order) error
}

type EnforceSecurityOrderImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityOrderImpl) PlaceOrder() error {
	return e.RequireRole(models.CUSTOMER, models.VENDOR, models.ADMIN)
}

// ReadOrder lets the buyer, an admin, or a vendor selling one of the items see the order.
func (e *EnforceSecurityOrderImpl) ReadOrder(order models.Order) error {
	if e.Credentials.IsAdmin() || e.isOwner(order.UserId) {
		return nil
	}
	if e.Credentials.Role == models.VENDOR && order.HasVendor(e.Credentials.UserId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to access this order")
}

// VisibleOrders narrows the filters to what the caller can see.
func (e *EnforceSecurityOrderImpl) VisibleOrders(filters models.OrderFilters) (models.OrderFilters, error) {
	switch e.Credentials.Role {
	case models.ADMIN:
		return filters, nil
	case models.VENDOR:
		filters.VendorId = pure_utils.Ptr(e.Credentials.UserId)
		return filters, nil
	case models.CUSTOMER:
		filters.UserId = pure_utils.Ptr(e.Credentials.UserId)
		return filters, nil
	}
	return filters, errors.Wrap(models.UnAuthorizedError, "Not authenticated")
}

func (e *EnforceSecurityOrderImpl) CancelOrder(order models.Order) error {
	if e.Credentials.IsAdmin() || e.isOwner(order.UserId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to cancel this order")
}

func (e *EnforceSecurityOrderImpl) ShipOrder(order models.Order) error {
	if e.Credentials.IsAdmin() {
		return nil
	}
	if e.Credentials.Role == models.VENDOR && order.HasVendor(e.Credentials.UserId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to ship this order")
}

func (e *EnforceSecurityOrderImpl) ConfirmReceipt(order models.Order) error {
	if e.isOwner(order.UserId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Only the buyer can confirm the receipt of an order")
}

func (e *EnforceSecurityOrderImpl) PayOrder(order models.Order) error {
	if e.isOwner(order.UserId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to pay this order")
}

func (e *EnforceSecurityOrderImpl) ReadPayments(order models.Order) error {
	if e.Credentials.IsAdmin() || e.isOwner(order.UserId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to access the payments of this order")
}
