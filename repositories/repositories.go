package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/storefront/storefront-backend/repositories/clock"
)

// StoreDbRepository holds every postgres query of the storefront. Methods take the
// executor to run on so that usecases decide the transaction boundaries.
type StoreDbRepository struct {
	clock clock.Clock
}

type Repositories struct {
	ExecutorGetter      ExecutorGetter
	StoreDbRepository   *StoreDbRepository
	Cache               Cache
	JwtRepository       *JwtRepository
	PaymentGateway      PaymentGateway
	TaskQueueRepository TaskQueueRepository
	VectorStore         VectorStore
	ProductGenerator    ProductGenerator
}

type options struct {
	clock            clock.Clock
	cache            Cache
	jwtRepository    *JwtRepository
	paymentGateway   PaymentGateway
	riverClient      *river.Client[pgx.Tx]
	vectorStore      VectorStore
	productGenerator ProductGenerator
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func WithCache(cache Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

func WithJwtRepository(repo *JwtRepository) Option {
	return func(o *options) {
		o.jwtRepository = repo
	}
}

func WithPaymentGateway(gateway PaymentGateway) Option {
	return func(o *options) {
		o.paymentGateway = gateway
	}
}

// WithRiverClient enables background knowledge-base indexing.
func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func WithVectorStore(store VectorStore) Option {
	return func(o *options) {
		o.vectorStore = store
	}
}

func WithProductGenerator(generator ProductGenerator) Option {
	return func(o *options) {
		o.productGenerator = generator
	}
}

func NewRepositories(pool pgxPool, opts ...Option) Repositories {
	o := &options{clock: clock.New()}
	for _, opt := range opts {
		opt(o)
	}
	if o.cache == nil {
		o.cache = NewMemoryCache(DEFAULT_MEMORY_CACHE_SIZE, o.clock)
	}

	var taskQueue TaskQueueRepository = NoopTaskQueueRepository{}
	if o.riverClient != nil {
		taskQueue = NewRiverTaskQueueRepository(o.riverClient)
	}

	return Repositories{
		ExecutorGetter:      NewExecutorGetter(pool),
		StoreDbRepository:   &StoreDbRepository{clock: o.clock},
		Cache:               o.cache,
		JwtRepository:       o.jwtRepository,
		PaymentGateway:      o.paymentGateway,
		TaskQueueRepository: taskQueue,
		VectorStore:         o.vectorStore,
		ProductGenerator:    o.productGenerator,
	}
}
