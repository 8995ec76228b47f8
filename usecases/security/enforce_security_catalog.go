package security

import (
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
)

type EnforceSecurityCatalog interface {
	ManageCategories() error
	CreateProduct() error
	UpdateProduct(product models.Product) error
	DeleteProduct(product models.Product) error
	ManageKnowledgeBase() error
}

type EnforceSecurityCatalogImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityCatalogImpl) ManageCategories() error {
	return e.RequireRole(models.ADMIN)
}

func (e *EnforceSecurityCatalogImpl) CreateProduct() error {
	return e.RequireRole(models.ADMIN, models.VENDOR)
}

// vendors only manage their own products
func (e *EnforceSecurityCatalogImpl) UpdateProduct(product models.Product) error {
	if err := e.RequireRole(models.ADMIN, models.VENDOR); err != nil {
		return err
	}
	if e.Credentials.IsAdmin() || e.isOwner(product.VendorId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to update this product")
}

func (e *EnforceSecurityCatalogImpl) DeleteProduct(product models.Product) error {
	if err := e.RequireRole(models.ADMIN, models.VENDOR); err != nil {
		return err
	}
	if e.Credentials.IsAdmin() || e.isOwner(product.VendorId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to delete this product")
}

func (e *EnforceSecurityCatalogImpl) ManageKnowledgeBase() error {
	return e.RequireRole(models.ADMIN)
}
