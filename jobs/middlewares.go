package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/storefront/storefront-backend/utils"
)

const (
	errorReportWindow = 30 * time.Second
	sdkIdentifier     = "sentry.go.river.storefront"
)

// LoggerMiddleware logs the outcome of every job and reports failures to Sentry,
// at most once per job kind and error message within errorReportWindow.
type LoggerMiddleware struct {
	river.MiddlewareDefaults
	logger *slog.Logger

	mu       *sync.Mutex
	reported map[string]int
	window   time.Duration
	report   func(ctx context.Context, err error)
}

func NewLoggerMiddleware(logger *slog.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger:   logger,
		mu:       &sync.Mutex{},
		reported: make(map[string]int),
		window:   errorReportWindow,
		report:   utils.LogAndReportSentryError,
	}
}

func (m LoggerMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) error {
	logger := m.logger.With(
		"job_id", job.ID,
		"job_kind", job.Kind,
		"job_attempt", job.Attempt,
		"queue", job.Queue,
		"priority", job.Priority,
	)
	start := time.Now()
	logger.DebugContext(ctx, fmt.Sprintf("starting %s job %d", job.Kind, job.ID))

	err := doInner(utils.StoreLoggerInContext(ctx, logger))
	elapsed := time.Since(start)

	var snoozeErr *river.JobSnoozeError
	switch {
	case err == nil:
		logger.InfoContext(ctx, fmt.Sprintf("%s job %d succeeded", job.Kind, job.ID), "duration", elapsed)
	case errors.As(err, &snoozeErr):
		logger.InfoContext(ctx, fmt.Sprintf("%s job %d snoozed", job.Kind, job.ID), "duration", elapsed)
	default:
		logger.ErrorContext(ctx, fmt.Sprintf("%s job %d failed", job.Kind, job.ID),
			"duration", elapsed, "error", err.Error())
		m.reportOnce(ctx, job.Kind, err)
	}
	return err
}

func (m LoggerMiddleware) reportOnce(ctx context.Context, kind string, err error) {
	key := kind + ":" + err.Error()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reported[key]++
	if m.reported[key] > 1 {
		return
	}

	// the job context is gone once Work returns
	reportCtx := context.WithoutCancel(ctx)
	time.AfterFunc(m.window, func() {
		m.mu.Lock()
		delete(m.reported, key)
		m.mu.Unlock()
		m.report(reportCtx, err)
	})
}

type RecovererMiddleware struct {
	river.MiddlewareDefaults
}

func NewRecovererMiddleware() *RecovererMiddleware {
	return &RecovererMiddleware{}
}

func (RecovererMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic in %s job %d: %v", job.Kind, job.ID, r)
		}
	}()
	return doInner(ctx)
}

type TracingMiddleware struct {
	river.MiddlewareDefaults
	tracer trace.Tracer
}

func NewTracingMiddleware(tracer trace.Tracer) *TracingMiddleware {
	return &TracingMiddleware{tracer: tracer}
}

func (m TracingMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) error {
	ctx, span := m.tracer.Start(ctx, "river."+job.Kind,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.Int64("job_id", job.ID),
			attribute.String("job_kind", job.Kind),
			attribute.Int("job_attempt", job.Attempt),
			attribute.String("queue", job.Queue),
			attribute.String("created_at", job.CreatedAt.Format(time.RFC3339)),
		),
	)
	defer span.End()

	err := doInner(utils.StoreOpenTelemetryTracerInContext(ctx, m.tracer))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

type SentryMiddleware struct {
	river.MiddlewareDefaults
}

func NewSentryMiddleware() *SentryMiddleware {
	return &SentryMiddleware{}
}

func (SentryMiddleware) Work(ctx context.Context, job *rivertype.JobRow, doInner func(context.Context) error) error {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
		ctx = sentry.SetHubOnContext(ctx, hub)
	}
	if client := hub.Client(); client != nil {
		client.SetSDKIdentifier(sdkIdentifier)
	}

	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("job_id", strconv.FormatInt(job.ID, 10))
		scope.SetTag("job_kind", job.Kind)
		scope.SetTag("job_attempt", strconv.Itoa(job.Attempt))
		scope.SetTag("queue", job.Queue)
		var args map[string]any
		if err := json.Unmarshal(job.EncodedArgs, &args); err == nil {
			scope.SetContext("job_args", args)
		}
	})

	transaction := sentry.StartTransaction(ctx, "river "+job.Kind,
		sentry.WithOpName("river.task"),
		sentry.WithTransactionSource(sentry.SourceTask),
	)
	defer transaction.Finish()

	err := doInner(transaction.Context())
	if err != nil {
		transaction.Status = sentry.SpanStatusInternalError
	} else {
		transaction.Status = sentry.SpanStatusOK
	}
	return err
}
