package repositories

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/clock"
)

const tokenIssuer = "storefront"

// Claims embeds jwt.RegisteredClaims for sub, exp, iat and jti
type Claims struct {
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type JwtRepository struct {
	secret infra.SigningSecret
	method jwt.SigningMethod
	clock  clock.Clock
}

func NewJwtRepository(secret infra.SigningSecret, c clock.Clock) *JwtRepository {
	if c == nil {
		c = clock.New()
	}
	return &JwtRepository{
		secret: secret,
		method: jwt.GetSigningMethod(secret.Algorithm),
		clock:  c,
	}
}

func (repo *JwtRepository) EncodeToken(user models.Credentials, tokenType models.TokenType,
	lifetime time.Duration,
) (string, models.TokenClaims, error) {
	now := repo.clock.Now()
	claims := models.TokenClaims{
		UserId:    user.UserId,
		Role:      user.Role,
		Type:      tokenType,
		TokenId:   uuid.NewString(),
		ExpiresAt: now.Add(lifetime),
	}

	token := jwt.NewWithClaims(repo.method, &Claims{
		Role: user.Role.String(),
		Type: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.UserId, 10),
			Issuer:    tokenIssuer,
			ID:        claims.TokenId,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	signed, err := token.SignedString(repo.secret.Key)
	if err != nil {
		return "", models.TokenClaims{}, errors.Wrap(err, "could not sign token")
	}
	return signed, claims, nil
}

func (repo *JwtRepository) DecodeToken(tokenString string) (models.TokenClaims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return repo.secret.Key, nil
		},
		jwt.WithValidMethods([]string{repo.method.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(repo.clock.Now),
	)
	if err != nil {
		return models.TokenClaims{}, errors.Wrap(models.UnAuthorizedError, err.Error())
	}

	userId, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.TokenClaims{}, errors.Wrap(models.UnAuthorizedError, "invalid token subject")
	}

	return models.TokenClaims{
		UserId:    userId,
		Role:      models.RoleFromString(claims.Role),
		Type:      models.TokenType(claims.Type),
		TokenId:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
