package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/security"
)

const MinPasswordLength = 8

type UserRepository interface {
	GetUserById(ctx context.Context, exec repositories.Executor, userId int64) (models.User, error)
	ListUsers(ctx context.Context, exec repositories.Executor, pagination models.Pagination) ([]models.User, error)
	UpdateUser(ctx context.Context, exec repositories.Executor, userId int64, update models.UpdateUser) (models.User, error)
}

type UserUsecase struct {
	enforceSecurity security.EnforceSecurityUser
	executorFactory executor_factory.ExecutorFactory
	repository      UserRepository
	credentials     models.Credentials
}

func (usecase *UserUsecase) Me(ctx context.Context) (models.User, error) {
	if usecase.credentials.UserId == 0 {
		return models.User{}, errors.Wrap(models.UnAuthorizedError, "Not authenticated")
	}
	return usecase.repository.GetUserById(ctx, usecase.executorFactory.NewExecutor(), usecase.credentials.UserId)
}

// UpdateMe changes the profile fields of the caller. Role and status are ignored here.
func (usecase *UserUsecase) UpdateMe(ctx context.Context, update models.UpdateUser) (models.User, error) {
	update.Role = nil
	update.IsActive = nil
	return usecase.updateUser(ctx, usecase.credentials.UserId, update)
}

func (usecase *UserUsecase) ListUsers(ctx context.Context, pagination models.Pagination) ([]models.User, error) {
	if err := usecase.enforceSecurity.ListUsers(); err != nil {
		return nil, err
	}
	return usecase.repository.ListUsers(ctx, usecase.executorFactory.NewExecutor(), pagination.Normalized())
}

func (usecase *UserUsecase) UpdateUserRole(ctx context.Context, userId int64, rawRole string) (models.User, error) {
	role := models.RoleFromString(rawRole)
	if role == models.NO_ROLE {
		return models.User{}, errors.Wrapf(models.BadParameterError,
			"invalid role %q, expected admin, vendor or customer", rawRole)
	}
	return usecase.updateUser(ctx, userId, models.UpdateUser{Role: &role})
}

func (usecase *UserUsecase) UpdateUserStatus(ctx context.Context, userId int64, isActive bool) (models.User, error) {
	return usecase.updateUser(ctx, userId, models.UpdateUser{IsActive: &isActive})
}

func (usecase *UserUsecase) updateUser(ctx context.Context, userId int64, update models.UpdateUser) (models.User, error) {
	exec := usecase.executorFactory.NewExecutor()
	if usecase.credentials.UserId == 0 {
		return models.User{}, errors.Wrap(models.UnAuthorizedError, "Not authenticated")
	}
	target, err := usecase.repository.GetUserById(ctx, exec, userId)
	if err != nil {
		return models.User{}, err
	}
	if err := usecase.enforceSecurity.UpdateUser(target, update); err != nil {
		return models.User{}, err
	}
	return usecase.repository.UpdateUser(ctx, exec, userId, update)
}

func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", errors.Wrapf(models.BadParameterError,
			"password must be at least %d characters long", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "could not hash password")
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
