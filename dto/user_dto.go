package dto

import (
	"time"

	"github.com/storefront/storefront-backend/models"
)

type APIUser struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AdaptUserDto(user models.User) APIUser {
	return APIUser{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		Surname:   user.Surname,
		Role:      user.Role.String(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type RegisterBody struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,personname"`
	Surname  string `json:"surname" binding:"required,personname"`
}

func AdaptRegisterInput(body RegisterBody) models.RegisterUserInput {
	return models.RegisterUserInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
		Surname:  body.Surname,
	}
}

type LoginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenBody struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type APITokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func AdaptTokenPairDto(pair models.TokenPair) APITokenPair {
	return APITokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	}
}

type UpdateMeBody struct {
	Email   *string `json:"email" binding:"omitempty,email"`
	Name    *string `json:"name" binding:"omitempty,personname"`
	Surname *string `json:"surname" binding:"omitempty,personname"`
}

func AdaptUpdateMe(body UpdateMeBody) models.UpdateUser {
	return models.UpdateUser{
		Email:   body.Email,
		Name:    body.Name,
		Surname: body.Surname,
	}
}

type UpdateRoleBody struct {
	Role string `json:"role" binding:"required,oneof=admin vendor customer"`
}

type UpdateStatusBody struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
