package dbmodels

import (
	"time"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/utils"
)

type DBUser struct {
	Id           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Surname      string    `db:"surname"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const TABLE_USERS = "users"

var UserFields = utils.ColumnList[DBUser]()

func AdaptUser(db DBUser) (models.User, error) {
	return models.User{
		Id:           db.Id,
		Username:     db.Username,
		Email:        db.Email,
		Name:         db.Name,
		Surname:      db.Surname,
		PasswordHash: db.PasswordHash,
		Role:         models.RoleFromString(db.Role),
		IsActive:     db.IsActive,
		CreatedAt:    db.CreatedAt,
		UpdatedAt:    db.UpdatedAt,
	}, nil
}
