package utils

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/models"
)

func CredentialsFromCtx(ctx context.Context) (models.Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey).(models.Credentials)
	return creds, ok
}

// MustCredentialsFromCtx is used by handlers mounted behind the required auth middleware.
func MustCredentialsFromCtx(ctx context.Context) (models.Credentials, error) {
	creds, ok := CredentialsFromCtx(ctx)
	if !ok || creds.UserId == 0 {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "no credentials in context")
	}
	return creds, nil
}

func StoreCredentialsInContext(ctx context.Context, creds models.Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey, creds)
}
