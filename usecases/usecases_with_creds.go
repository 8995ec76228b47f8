package usecases

import (
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/usecases/security"
)

// UsecasesWithCreds builds the usecases of one request. Credentials are empty on
// public routes called without a token.
type UsecasesWithCreds struct {
	Usecases
	Credentials models.Credentials
}

func (usecases *UsecasesWithCreds) NewEnforceSecurity() security.EnforceSecurityImpl {
	return security.EnforceSecurityImpl{
		Credentials: usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceCatalogSecurity() security.EnforceSecurityCatalog {
	return &security.EnforceSecurityCatalogImpl{EnforceSecurityImpl: usecases.NewEnforceSecurity()}
}

func (usecases *UsecasesWithCreds) NewEnforceUserSecurity() security.EnforceSecurityUser {
	return &security.EnforceSecurityUserImpl{EnforceSecurityImpl: usecases.NewEnforceSecurity()}
}

func (usecases *UsecasesWithCreds) NewEnforceCartSecurity() security.EnforceSecurityCart {
	return &security.EnforceSecurityCartImpl{EnforceSecurityImpl: usecases.NewEnforceSecurity()}
}

func (usecases *UsecasesWithCreds) NewEnforceOrderSecurity() security.EnforceSecurityOrder {
	return &security.EnforceSecurityOrderImpl{EnforceSecurityImpl: usecases.NewEnforceSecurity()}
}

func (usecases *UsecasesWithCreds) NewEnforceReviewSecurity() security.EnforceSecurityReview {
	return &security.EnforceSecurityReviewImpl{EnforceSecurityImpl: usecases.NewEnforceSecurity()}
}

func (usecases *UsecasesWithCreds) NewUserUsecase() UserUsecase {
	return UserUsecase{
		enforceSecurity: usecases.NewEnforceUserSecurity(),
		executorFactory: usecases.NewExecutorFactory(),
		repository:      usecases.Repositories.StoreDbRepository,
		credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewCategoryUsecase() CategoryUsecase {
	return CategoryUsecase{
		enforceSecurity:    usecases.NewEnforceCatalogSecurity(),
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		catalogCache:       usecases.newCatalogCache(),
	}
}

func (usecases *UsecasesWithCreds) newCatalogCache() CatalogCache {
	return NewCatalogCache(usecases.Repositories.Cache)
}

func (usecases *UsecasesWithCreds) NewProductUsecase() ProductUsecase {
	return ProductUsecase{
		enforceSecurity:    usecases.NewEnforceCatalogSecurity(),
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		taskQueue:          usecases.Repositories.TaskQueueRepository,
		catalogCache:       usecases.newCatalogCache(),
		credentials:        usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewCartUsecase() CartUsecase {
	return CartUsecase{
		enforceSecurity:    usecases.NewEnforceCartSecurity(),
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		credentials:        usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewOrderUsecase() OrderUsecase {
	return OrderUsecase{
		enforceSecurity:    usecases.NewEnforceOrderSecurity(),
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		catalogCache:       usecases.newCatalogCache(),
		credentials:        usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewPaymentUsecase() PaymentUsecase {
	return PaymentUsecase{
		enforceSecurity:    usecases.NewEnforceOrderSecurity(),
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		gateway:            usecases.Repositories.PaymentGateway,
		currency:           usecases.paymentConfig.Currency,
		credentials:        usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewReviewUsecase() ReviewUsecase {
	return ReviewUsecase{
		enforceSecurity:    usecases.NewEnforceReviewSecurity(),
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.StoreDbRepository,
		taskQueue:          usecases.Repositories.TaskQueueRepository,
		credentials:        usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewKnowledgeUsecase() KnowledgeUsecase {
	return KnowledgeUsecase{
		enabled:         usecases.knowledgeBaseEnabled(),
		executorFactory: usecases.NewExecutorFactory(),
		repository:      usecases.Repositories.StoreDbRepository,
		vectorStore:     usecases.Repositories.VectorStore,
	}
}
