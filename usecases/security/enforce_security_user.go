package security

import (
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
)

type EnforceSecurityUser interface {
	ListUsers() error
	UpdateUser(target models.User, update models.UpdateUser) error
}

type EnforceSecurityUserImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityUserImpl) ListUsers() error {
	return e.RequireRole(models.ADMIN)
}

func (e *EnforceSecurityUserImpl) UpdateUser(target models.User, update models.UpdateUser) error {
	if e.Credentials.UserId == 0 {
		return errors.Wrap(models.UnAuthorizedError, "Not authenticated")
	}

	if update.Role != nil || update.IsActive != nil {
		if !e.Credentials.IsAdmin() {
			return errors.Wrap(models.ForbiddenError, "only admins can change roles or account status")
		}
		if e.isOwner(target.Id) {
			return errors.Wrap(models.BadParameterError, "admins cannot change their own role or status")
		}
		return nil
	}

	if !e.isOwner(target.Id) {
		return errors.Wrap(models.ForbiddenError, "users can only update their own profile")
	}
	return nil
}
