package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// RateLimitedError is rendered with the http status code 429
	RateLimitedError = errors.New("too many requests")

	// UnavailableError is rendered with the http status code 503
	UnavailableError = errors.New("service unavailable")
)

// Authentication related errors
var (
	ErrUnknownUser        = errors.Wrap(NotFoundError, "unknown user")
	ErrInvalidCredentials = errors.Wrap(UnAuthorizedError, "incorrect username or password")
	ErrInactiveUser       = errors.Wrap(UnAuthorizedError, "user is deactivated")
	ErrRevokedToken       = errors.Wrap(UnAuthorizedError, "token has been revoked")
	ErrWrongTokenType     = errors.Wrap(UnAuthorizedError, "wrong token type")
)

// DB related errors
var (
	ErrIgnoreRollBackError = errors.New("ignore rollback error")
)

// Catalog and checkout errors
var (
	ErrProductNotFound      = errors.Wrap(NotFoundError, "Product not found")
	ErrNoProductsMatch      = errors.Wrap(NotFoundError, "No products found matching your search")
	ErrEmptySearchQuery     = errors.Wrap(BadParameterError, "Search query cannot be empty")
	ErrCartItemNotFound     = errors.Wrap(NotFoundError, "Cart Item not found")
	ErrEmptyCart            = errors.Wrap(BadParameterError, "cart is empty")
	ErrInvalidOrderStatus   = errors.Wrap(BadParameterError, "invalid order status")
	ErrPaymentNotFound      = errors.Wrap(NotFoundError, "Payment not found")
	ErrOrderAlreadyPaid     = errors.Wrap(ConflictError, "order already has a completed payment")
	ErrKnowledgeBaseOff     = errors.Wrap(UnavailableError, "semantic search is not enabled")
	ErrKnowledgeBaseEmpty   = errors.Wrap(UnavailableError, "knowledge base is empty")
	ErrCategoryStillInUse   = errors.Wrap(ConflictError, "category still has products or sub-categories")
	ErrReviewNestingTooDeep = errors.Wrap(BadParameterError, "follow-up reviews cannot be answered")
)

func NewStockExceededError(available int, inCart *int) error {
	if inCart != nil {
		return errors.Wrapf(BadParameterError,
			"Product stock exceeded. Available stock: %d, current in cart: %d", available, *inCart)
	}
	return errors.Wrapf(BadParameterError, "Product stock exceeded. Available stock: %d", available)
}

func NewInvalidTransitionError(from, to OrderStatus) error {
	return errors.Wrapf(BadParameterError, "order cannot go from %s to %s", from, to)
}
