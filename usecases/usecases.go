package usecases

import (
	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/usecases/executor_factory"
	"github.com/storefront/storefront-backend/usecases/indexing"
)

type Usecases struct {
	Repositories        repositories.Repositories
	apiVersion          string
	authConfig          infra.AuthConfig
	knowledgeBaseConfig infra.KnowledgeBaseConfig
	paymentConfig       infra.PaymentConfig
	seedConfig          infra.SeedConfig
}

type Option func(*options)

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithAuthConfig(config infra.AuthConfig) Option {
	return func(o *options) {
		o.authConfig = config
	}
}

func WithKnowledgeBaseConfig(config infra.KnowledgeBaseConfig) Option {
	return func(o *options) {
		o.knowledgeBaseConfig = config
	}
}

func WithPaymentConfig(config infra.PaymentConfig) Option {
	return func(o *options) {
		o.paymentConfig = config
	}
}

func WithSeedConfig(config infra.SeedConfig) Option {
	return func(o *options) {
		o.seedConfig = config
	}
}

type options struct {
	apiVersion          string
	authConfig          infra.AuthConfig
	knowledgeBaseConfig infra.KnowledgeBaseConfig
	paymentConfig       infra.PaymentConfig
	seedConfig          infra.SeedConfig
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return Usecases{
		Repositories:        repositories,
		apiVersion:          o.apiVersion,
		authConfig:          o.authConfig,
		knowledgeBaseConfig: o.knowledgeBaseConfig,
		paymentConfig:       o.paymentConfig,
		seedConfig:          o.seedConfig,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) knowledgeBaseEnabled() bool {
	return usecases.knowledgeBaseConfig.Enabled && usecases.Repositories.VectorStore != nil
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.StoreDbRepository,
		cache:              usecases.Repositories.Cache,
		vectorStore:        usecases.Repositories.VectorStore,
		apiVersion:         usecases.apiVersion,
	}
}

func (usecases *Usecases) NewAuthUsecase() AuthUsecase {
	return AuthUsecase{
		executorFactory: usecases.NewExecutorFactory(),
		repository:      usecases.Repositories.StoreDbRepository,
		tokens:          usecases.Repositories.JwtRepository,
		cache:           usecases.Repositories.Cache,
		config:          usecases.authConfig,
	}
}

func (usecases *Usecases) NewKnowledgeIndexer() KnowledgeIndexer {
	return KnowledgeIndexer{
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		vectorStore:        usecases.Repositories.VectorStore,
		workers:            usecases.knowledgeBaseConfig.IndexingWorkers,
	}
}

func (usecases *Usecases) NewSeedUsecase() SeedUsecase {
	return SeedUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		taskQueue:          usecases.Repositories.TaskQueueRepository,
		generator:          usecases.Repositories.ProductGenerator,
		cache:              usecases.Repositories.Cache,
		config:             usecases.seedConfig,
	}
}

func (usecases *Usecases) NewIndexProductKnowledgeWorker() *indexing.IndexProductKnowledgeWorker {
	indexer := usecases.NewKnowledgeIndexer()
	return indexing.NewIndexProductKnowledgeWorker(&indexer)
}

func (usecases *Usecases) NewDeleteProductKnowledgeWorker() *indexing.DeleteProductKnowledgeWorker {
	indexer := usecases.NewKnowledgeIndexer()
	return indexing.NewDeleteProductKnowledgeWorker(&indexer)
}
