package security

import (
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
)

type EnforceSecurityCart interface {
	UseCart() error
	ReadCartItem(item models.CartItem) error
}

type EnforceSecurityCartImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityCartImpl) UseCart() error {
	return e.RequireRole(models.CUSTOMER, models.VENDOR, models.ADMIN)
}

func (e *EnforceSecurityCartImpl) ReadCartItem(item models.CartItem) error {
	if !e.isOwner(item.UserId) {
		return errors.Wrap(models.ForbiddenError, "Not authorized to access this cart item")
	}
	return nil
}
