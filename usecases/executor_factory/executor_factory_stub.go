package executor_factory

import (
	"github.com/pashagolub/pgxmock/v4"

	"github.com/storefront/storefront-backend/repositories"
)

// ExecutorFactoryStub runs executors and transactions on a pgxmock pool. Tests set
// expectations on Mock, including ExpectBegin / ExpectCommit around transactions.
type ExecutorFactoryStub struct {
	DbExecutorFactory
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		DbExecutorFactory: NewDbExecutorFactory(repositories.NewExecutorGetter(pool)),
		Mock:              pool,
	}
}
