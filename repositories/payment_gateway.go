package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/storefront/storefront-backend/infra"
	"github.com/storefront/storefront-backend/models"
)

const mockSessionPrefix = "mock_cs_"

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, order models.Order, currency string) (models.CheckoutSession, error)
}

// MockPaymentGateway issues checkout sessions that are settled through the
// mock-success / mock-cancel endpoints of this api.
type MockPaymentGateway struct {
	publicApiUrl string
}

func NewMockPaymentGateway(cfg infra.PaymentConfig) *MockPaymentGateway {
	return &MockPaymentGateway{publicApiUrl: strings.TrimRight(cfg.PublicApiUrl, "/")}
}

func (g *MockPaymentGateway) CreateCheckoutSession(ctx context.Context,
	order models.Order, currency string,
) (models.CheckoutSession, error) {
	sessionId := mockSessionPrefix + uuid.NewString()
	query := url.Values{"session_id": {sessionId}}.Encode()

	return models.CheckoutSession{
		SessionId:   sessionId,
		CheckoutUrl: fmt.Sprintf("%s/payments/mock-success?%s", g.publicApiUrl, query),
		SuccessUrl:  fmt.Sprintf("%s/payments/success?%s", g.publicApiUrl, query),
		CancelUrl:   fmt.Sprintf("%s/payments/mock-cancel?%s", g.publicApiUrl, query),
		Amount:      order.TotalAmount,
		Currency:    currency,
	}, nil
}
