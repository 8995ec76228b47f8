package utils

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/models"
)

type validator interface {
	ValidateAccessToken(ctx context.Context, accessToken string) (models.Credentials, error)
}

type Authentication struct {
	Validator validator
}

func NewAuthentication(validator validator) Authentication {
	return Authentication{
		Validator: validator,
	}
}

// Middleware rejects requests without a valid access token.
func (a *Authentication) Middleware(c *gin.Context) {
	a.authenticate(c, true)
}

// OptionalMiddleware authenticates the caller when a valid bearer token is present.
// Missing, malformed, expired or revoked tokens fall through as anonymous requests so
// that a client holding a stale access token can still log in or refresh it.
func (a *Authentication) OptionalMiddleware(c *gin.Context) {
	a.authenticate(c, false)
}

func (a *Authentication) authenticate(c *gin.Context, required bool) {
	ctx := c.Request.Context()

	token, err := ParseAuthorizationBearerHeader(c.Request.Header)
	if err != nil {
		if !required {
			c.Next()
			return
		}
		abortUnauthorized(c, err.Error())
		return
	}
	if token == "" {
		if required {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		c.Next()
		return
	}

	credentials, err := a.Validator.ValidateAccessToken(ctx, token)
	if err != nil {
		rejected := errors.Is(err, models.UnAuthorizedError) || errors.Is(err, models.NotFoundError)
		switch {
		case rejected && required:
			abortUnauthorized(c, "Could not validate credentials")
			return
		case rejected:
			LoggerFromContext(ctx).DebugContext(ctx, "ignoring invalid token on public route", "error", err.Error())
			c.Next()
			return
		}

		LogAndReportSentryError(ctx, err)
		if !required {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	newContext := StoreCredentialsInContext(ctx, credentials)
	logger := LoggerFromContext(newContext).With(
		slog.Int64("user_id", credentials.UserId),
		slog.String("role", credentials.Role.String()),
	)
	c.Request = c.Request.WithContext(StoreLoggerInContext(newContext, logger))
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.Wrap(models.UnAuthorizedError, "malformed token")
	}
	return strings.TrimSpace(token), nil
}
