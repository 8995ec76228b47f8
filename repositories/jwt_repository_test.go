package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories/clock"
)

func TestJwtRepository_RoundTrip(t *testing.T) {
	c := clock.NewMock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	repo := NewJwtRepository(infra.SigningSecret{Key: []byte("secret"), Algorithm: "HS256"}, c)

	token, issued, err := repo.EncodeToken(
		models.Credentials{UserId: 42, Role: models.VENDOR}, models.AccessToken, 30*time.Minute)
	require.NoError(t, err)

	claims, err := repo.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserId)
	assert.Equal(t, models.VENDOR, claims.Role)
	assert.Equal(t, models.AccessToken, claims.Type)
	assert.Equal(t, issued.TokenId, claims.TokenId)
	assert.True(t, issued.ExpiresAt.Equal(claims.ExpiresAt))
}

func TestJwtRepository_Expired(t *testing.T) {
	c := clock.NewMock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	repo := NewJwtRepository(infra.SigningSecret{Key: []byte("secret"), Algorithm: "HS256"}, c)

	token, _, err := repo.EncodeToken(models.Credentials{UserId: 1, Role: models.CUSTOMER}, models.RefreshToken, time.Minute)
	require.NoError(t, err)

	c.Advance(2 * time.Minute)
	_, err = repo.DecodeToken(token)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}

func TestJwtRepository_WrongSecret(t *testing.T) {
	c := clock.NewMock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	signer := NewJwtRepository(infra.SigningSecret{Key: []byte("secret"), Algorithm: "HS256"}, c)
	verifier := NewJwtRepository(infra.SigningSecret{Key: []byte("other"), Algorithm: "HS256"}, c)

	token, _, err := signer.EncodeToken(models.Credentials{UserId: 1, Role: models.ADMIN}, models.AccessToken, time.Minute)
	require.NoError(t, err)

	_, err = verifier.DecodeToken(token)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}
