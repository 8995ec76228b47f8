package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

func (repo *StoreDbRepository) GetUserById(ctx context.Context, exec Executor, userId int64) (models.User, error) {
	user, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.UserFields...).
			From(dbmodels.TABLE_USERS).
			Where(squirrel.Eq{"id": userId}),
		dbmodels.AdaptUser,
	)
	if errors.Is(err, models.NotFoundError) {
		return models.User{}, errors.Wrapf(models.ErrUnknownUser, "user %d", userId)
	}
	return user, err
}

func (repo *StoreDbRepository) GetUserByUsername(ctx context.Context, exec Executor, username string) (*models.User, error) {
	return SqlToOptionalModel(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.UserFields...).
			From(dbmodels.TABLE_USERS).
			Where(squirrel.Eq{"username": username}),
		dbmodels.AdaptUser,
	)
}

// FirstUserWithRole returns the oldest user with the role, or nil.
func (repo *StoreDbRepository) FirstUserWithRole(ctx context.Context, exec Executor, role models.Role) (*models.User, error) {
	query := NewQueryBuilder().
		Select(dbmodels.UserFields...).
		From(dbmodels.TABLE_USERS).
		OrderBy("id").
		Limit(1)
	if role != models.NO_ROLE {
		query = query.Where(squirrel.Eq{"role": role.String()})
	}
	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptUser)
}

func (repo *StoreDbRepository) ListUsers(ctx context.Context, exec Executor, pagination models.Pagination) ([]models.User, error) {
	return SqlToListOfModels(ctx, exec,
		NewQueryBuilder().
			Select(dbmodels.UserFields...).
			From(dbmodels.TABLE_USERS).
			OrderBy("id").
			Limit(uint64(pagination.Size)).
			Offset(pagination.Offset()),
		dbmodels.AdaptUser,
	)
}

func (repo *StoreDbRepository) CreateUser(ctx context.Context, exec Executor, user models.CreateUser) (models.User, error) {
	created, err := SqlToModel(ctx, exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_USERS).
			Columns("username", "email", "name", "surname", "password_hash", "role").
			Values(user.Username, user.Email, user.Name, user.Surname, user.PasswordHash, user.Role.String()).
			Suffix("RETURNING "+columnList(dbmodels.UserFields)),
		dbmodels.AdaptUser,
	)
	if err != nil {
		return models.User{}, adaptUserConstraintError(err)
	}
	return created, nil
}

func (repo *StoreDbRepository) UpdateUser(ctx context.Context, exec Executor, userId int64, update models.UpdateUser) (models.User, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_USERS).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userId}).
		Suffix("RETURNING " + columnList(dbmodels.UserFields))

	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Surname != nil {
		query = query.Set("surname", *update.Surname)
	}
	if update.Role != nil {
		query = query.Set("role", update.Role.String())
	}
	if update.IsActive != nil {
		query = query.Set("is_active", *update.IsActive)
	}

	user, err := SqlToModel(ctx, exec, query, dbmodels.AdaptUser)
	if errors.Is(err, models.NotFoundError) {
		return models.User{}, errors.Wrapf(models.ErrUnknownUser, "user %d", userId)
	}
	if err != nil {
		return models.User{}, adaptUserConstraintError(err)
	}
	return user, nil
}

func adaptUserConstraintError(err error) error {
	if !IsUniqueViolationError(err) {
		return err
	}
	switch violatedConstraint(err) {
	case "users_username_idx":
		return errors.Wrap(models.ConflictError, "Username already registered")
	case "users_email_idx":
		return errors.Wrap(models.ConflictError, "Email already registered")
	}
	return errors.Wrap(models.ConflictError, "user already exists")
}
