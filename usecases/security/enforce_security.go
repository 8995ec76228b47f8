package security

import (
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
)

type EnforceSecurity interface {
	RequireRole(roles ...models.Role) error
	UserId() int64
}

type EnforceSecurityImpl struct {
	Credentials models.Credentials
}

func (e *EnforceSecurityImpl) RequireRole(roles ...models.Role) error {
	if e.Credentials.UserId == 0 {
		return errors.Wrap(models.UnAuthorizedError, "Not authenticated")
	}
	for _, role := range roles {
		if e.Credentials.Role == role {
			return nil
		}
	}
	return errors.Wrapf(models.ForbiddenError, "role %s is not allowed to perform this action", e.Credentials.Role)
}

func (e *EnforceSecurityImpl) UserId() int64 {
	return e.Credentials.UserId
}

func (e *EnforceSecurityImpl) isOwner(userId int64) bool {
	return e.Credentials.UserId != 0 && e.Credentials.UserId == userId
}
