package models

import (
	"net/mail"
	"regexp"
	"time"

	"github.com/cockroachdb/errors"
)

type User struct {
	Id           int64
	Username     string
	Email        string
	Name         string
	Surname      string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateUser struct {
	Username     string
	Email        string
	Name         string
	Surname      string
	PasswordHash string
	Role         Role
}

type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Surname  string
}

type UpdateUser struct {
	Email    *string
	Name     *string
	Surname  *string
	Role     *Role
	IsActive *bool
}

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type TokenClaims struct {
	UserId    int64
	Role      Role
	Type      TokenType
	TokenId   string
	ExpiresAt time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

var (
	UsernamePattern   = regexp.MustCompile(`^[\p{Han}A-Za-z0-9_]{1,16}$`)
	PersonNamePattern = regexp.MustCompile(`^[\p{Han}A-Za-z\s\-']{1,100}$`)
)

func (input RegisterUserInput) Validate() error {
	if !UsernamePattern.MatchString(input.Username) {
		return errors.Wrap(BadParameterError,
			"username must be 1 to 16 letters, digits or underscores")
	}
	if !PersonNamePattern.MatchString(input.Name) || !PersonNamePattern.MatchString(input.Surname) {
		return errors.Wrap(BadParameterError,
			"name and surname must be 1 to 100 letters, spaces, hyphens or apostrophes")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return errors.Wrap(BadParameterError, "invalid email address")
	}
	return nil
}
