package utils

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
)

// LogAndReportSentryError logs err with its stack and sends it to sentry, tagged with
// the caller when the request is authenticated. Cancelled requests are not reported.
func LogAndReportSentryError(ctx context.Context, err error) {
	logger := LoggerFromContext(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.DebugContext(ctx, "request ended before completion", "error", err.Error())
		return
	}
	logger.ErrorContext(ctx, fmt.Sprintf("%+v", err))

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if creds, ok := CredentialsFromCtx(ctx); ok && creds.UserId != 0 {
			scope.SetUser(sentry.User{ID: strconv.FormatInt(creds.UserId, 10)})
			scope.SetTag("role", creds.Role.String())
		}
		hub.CaptureException(err)
	})
}
