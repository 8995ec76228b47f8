package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/utils"
)

const revokedTokenPrefix = "revoked_token"

type AuthRepository interface {
	GetUserById(ctx context.Context, exec repositories.Executor, userId int64) (models.User, error)
	GetUserByUsername(ctx context.Context, exec repositories.Executor, username string) (*models.User, error)
	CreateUser(ctx context.Context, exec repositories.Executor, user models.CreateUser) (models.User, error)
}

type TokenRepository interface {
	EncodeToken(user models.Credentials, tokenType models.TokenType, lifetime time.Duration) (string, models.TokenClaims, error)
	DecodeToken(tokenString string) (models.TokenClaims, error)
}

type AuthUsecase struct {
	executorFactory executor_factory.ExecutorFactory
	repository      AuthRepository
	tokens          TokenRepository
	cache           repositories.Cache
	config          infra.AuthConfig
}

func (usecase *AuthUsecase) Register(ctx context.Context, input models.RegisterUserInput) (models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := input.Validate(); err != nil {
		return models.User{}, err
	}
	hash, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := usecase.repository.CreateUser(ctx, usecase.executorFactory.NewExecutor(), models.CreateUser{
		Username:     input.Username,
		Email:        input.Email,
		Name:         input.Name,
		Surname:      input.Surname,
		PasswordHash: hash,
		Role:         models.CUSTOMER,
	})
	if err != nil {
		return models.User{}, err
	}
	utils.LoggerFromContext(ctx).InfoContext(ctx, "user registered", "user_id", user.Id)
	return user, nil
}

func (usecase *AuthUsecase) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	user, err := usecase.repository.GetUserByUsername(ctx, usecase.executorFactory.NewExecutor(), username)
	if err != nil {
		return models.TokenPair{}, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return models.TokenPair{}, models.ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.TokenPair{}, models.ErrInactiveUser
	}
	return usecase.issueTokens(user.IntoCredentials())
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is revoked.
func (usecase *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	claims, err := usecase.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	user, err := usecase.activeUser(ctx, claims.UserId)
	if err != nil {
		return models.TokenPair{}, err
	}
	if err := usecase.revoke(ctx, claims); err != nil {
		return models.TokenPair{}, err
	}
	return usecase.issueTokens(user.IntoCredentials())
}

func (usecase *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := usecase.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	return usecase.revoke(ctx, claims)
}

// ValidateAccessToken is used by the authentication middleware.
func (usecase *AuthUsecase) ValidateAccessToken(ctx context.Context, accessToken string) (models.Credentials, error) {
	claims, err := usecase.tokens.DecodeToken(accessToken)
	if err != nil {
		return models.Credentials{}, err
	}
	if claims.Type != models.AccessToken {
		return models.Credentials{}, models.ErrWrongTokenType
	}
	user, err := usecase.activeUser(ctx, claims.UserId)
	if err != nil {
		return models.Credentials{}, err
	}
	return user.IntoCredentials(), nil
}

func (usecase *AuthUsecase) validateRefreshToken(ctx context.Context, refreshToken string) (models.TokenClaims, error) {
	claims, err := usecase.tokens.DecodeToken(refreshToken)
	if err != nil {
		return models.TokenClaims{}, err
	}
	if claims.Type != models.RefreshToken {
		return models.TokenClaims{}, models.ErrWrongTokenType
	}

	_, err = usecase.cache.Get(ctx, revokedTokenKey(claims.TokenId))
	switch {
	case err == nil:
		return models.TokenClaims{}, models.ErrRevokedToken
	case errors.Is(err, repositories.ErrCacheMiss):
		return claims, nil
	default:
		return models.TokenClaims{}, errors.Wrap(models.UnavailableError,
			"could not check the token deny list: "+err.Error())
	}
}

func (usecase *AuthUsecase) activeUser(ctx context.Context, userId int64) (models.User, error) {
	user, err := usecase.repository.GetUserById(ctx, usecase.executorFactory.NewExecutor(), userId)
	if errors.Is(err, models.NotFoundError) {
		return models.User{}, errors.Wrap(models.UnAuthorizedError, "Could not validate credentials")
	}
	if err != nil {
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, models.ErrInactiveUser
	}
	return user, nil
}

// revoke keeps the token id in the deny list until the token would have expired anyway.
func (usecase *AuthUsecase) revoke(ctx context.Context, claims models.TokenClaims) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := usecase.cache.Set(ctx, revokedTokenKey(claims.TokenId), []byte("1"), ttl); err != nil {
		return errors.Wrap(models.UnavailableError, "could not revoke token: "+err.Error())
	}
	return nil
}

func (usecase *AuthUsecase) issueTokens(credentials models.Credentials) (models.TokenPair, error) {
	access, _, err := usecase.tokens.EncodeToken(credentials, models.AccessToken, usecase.config.AccessTokenLifetime)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, _, err := usecase.tokens.EncodeToken(credentials, models.RefreshToken, usecase.config.RefreshTokenLifetime)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func revokedTokenKey(tokenId string) string {
	return repositories.CacheKey(revokedTokenPrefix, tokenId)
}
