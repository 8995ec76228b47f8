package jobs

import (
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
	"go.opentelemetry.io/otel/trace"

	"github.com/storefront/storefront-backend/repositories"
)

const defaultKnowledgeWorkers = 4

// NewInsertOnlyClient is handed to the repositories of the api server, which only enqueues jobs.
func NewInsertOnlyClient(pool *pgxpool.Pool) (*river.Client[pgx.Tx], error) {
	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "could not create river client")
	}
	return client, nil
}

type WorkerClientConfig struct {
	Logger     *slog.Logger
	Tracer     trace.Tracer
	MaxWorkers int
}

// NewWorkerClient builds the client that works the knowledge base queue. Register
// workers on the returned *river.Workers before calling Start.
func NewWorkerClient(pool *pgxpool.Pool, workers *river.Workers, config WorkerClientConfig) (*river.Client[pgx.Tx], error) {
	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultKnowledgeWorkers
	}

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval: 500 * time.Millisecond,
		Queues: map[string]river.QueueConfig{
			repositories.KNOWLEDGE_BASE_QUEUE: {MaxWorkers: maxWorkers},
		},
		// Embedding calls are retried with backoff, keep this above the worker timeout.
		RescueStuckJobsAfter: 5 * time.Minute,
		Logger:               config.Logger,
		WorkerMiddleware: []rivertype.WorkerMiddleware{
			NewTracingMiddleware(config.Tracer),
			NewSentryMiddleware(),
			NewLoggerMiddleware(config.Logger),
			NewRecovererMiddleware(),
		},
		Workers: workers,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create river worker client")
	}
	return client, nil
}
