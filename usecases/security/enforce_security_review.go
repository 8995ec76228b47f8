package security

import (
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
)

type EnforceSecurityReview interface {
	WriteReview() error
	UpdateReview(review models.Review) error
	DeleteReview(review models.Review) error
}

type EnforceSecurityReviewImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityReviewImpl) WriteReview() error {
	return e.RequireRole(models.CUSTOMER, models.VENDOR, models.ADMIN)
}

func (e *EnforceSecurityReviewImpl) UpdateReview(review models.Review) error {
	if !e.isOwner(review.UserId) {
		return errors.Wrap(models.ForbiddenError, "Not authorized to update this review")
	}
	return nil
}

func (e *EnforceSecurityReviewImpl) DeleteReview(review models.Review) error {
	if e.Credentials.IsAdmin() || e.isOwner(review.UserId) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "Not authorized to delete this review")
}
