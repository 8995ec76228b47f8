package api

import (
	"context"

	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

// usecasesWithCreds builds the usecases of a request. Routes behind the optional
// authentication run with empty credentials for anonymous callers.
func usecasesWithCreds(ctx context.Context, uc usecases.Usecases) *usecases.UsecasesWithCreds {
	creds, _ := utils.CredentialsFromCtx(ctx)
	return &usecases.UsecasesWithCreds{
		Usecases:    uc,
		Credentials: creds,
	}
}
