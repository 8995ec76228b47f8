package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/repositories"
	"github.com/storefront/storefront-backend/repositories/clock"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

// staticTokens accepts the listed access tokens and treats any other one as expired.
type staticTokens map[string]models.Credentials

func (tokens staticTokens) ValidateAccessToken(ctx context.Context, accessToken string) (models.Credentials, error) {
	if creds, ok := tokens[accessToken]; ok {
		return creds, nil
	}
	return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "token is expired")
}

var testTokens = staticTokens{
	"customer-token": {UserId: 3, Role: models.CUSTOMER},
	"vendor-token":   {UserId: 20, Role: models.VENDOR},
}

var testNow = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

type routesFixture struct {
	pool   pgxmock.PgxPoolIface
	router *gin.Engine
}

func newRoutesFixture(t *testing.T) routesFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repos := repositories.NewRepositories(pool,
		repositories.WithCache(repositories.NewMemoryCache(64, clock.New())))
	uc := usecases.NewUsecases(repos, usecases.WithApiVersion("test"))

	router := gin.New()
	addRoutes(router, Configuration{DefaultTimeout: 5 * time.Second}, uc, utils.NewAuthentication(testTokens))
	return routesFixture{pool: pool, router: router}
}

func (f routesFixture) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func productRow(id int64, name string, stock int) []any {
	return []any{id, name, "a description", 19.99, nil, stock, true,
		nil, int64(20), 0, 0.0, 0, testNow, testNow}
}

func TestRoutes_publicRoutesIgnoreStaleTokens(t *testing.T) {
	f := newRoutesFixture(t)

	w := f.do(http.MethodPost, "/auth/refresh", "expired-access", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", gjson.Get(w.Body.String(), "fields.refresh_token").String())
}

func TestRoutes_protectedRoutesRequireToken(t *testing.T) {
	f := newRoutesFixture(t)

	w := f.do(http.MethodGet, "/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/cart", "expired-access", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Could not validate credentials", gjson.Get(w.Body.String(), "message").String())
}

func TestRoutes_staticSegmentsWinOverParams(t *testing.T) {
	f := newRoutesFixture(t)

	w := f.do(http.MethodGet, "/products/search?q=%20", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Search query cannot be empty: bad parameter", gjson.Get(w.Body.String(), "message").String())

	w = f.do(http.MethodGet, "/products/semantic-search?q=lamp", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = f.do(http.MethodGet, "/products/lamp", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "product_id must be a positive integer: bad parameter", gjson.Get(w.Body.String(), "message").String())

	w = f.do(http.MethodGet, "/orders/status/lost", "customer-token", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, gjson.Get(w.Body.String(), "message").String(), "invalid order status")

	w = f.do(http.MethodGet, "/orders/latest", "customer-token", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "order_id must be a positive integer: bad parameter", gjson.Get(w.Body.String(), "message").String())

	assert.NoError(t, f.pool.ExpectationsWereMet())
}

func TestRoutes_listProductsQueryBinding(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"size zero", "size=0", "size"},
		{"size above max", "size=101", "size"},
		{"page zero", "page=0", "page"},
		{"page too far", "page=92233720368547759", "page"},
		{"negative price", "min_price=-1", "min_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoutesFixture(t)

			w := f.do(http.MethodGet, "/products?"+tt.query, "", "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.True(t, gjson.Get(w.Body.String(), "fields."+tt.field).Exists(), w.Body.String())
		})
	}

	t.Run("availability is a boolean", func(t *testing.T) {
		f := newRoutesFixture(t)

		w := f.do(http.MethodGet, "/products?availability=maybe", "", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRoutes_listProducts(t *testing.T) {
	f := newRoutesFixture(t)
	f.pool.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE stock = \$1`).
		WithArgs(0).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(6))
	f.pool.ExpectQuery(`SELECT .+ FROM products WHERE stock = \$1 ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 5`).
		WithArgs(0).
		WillReturnRows(pgxmock.NewRows(dbmodels.ProductFields).AddRow(productRow(6, "Desk lamp", 0)...))

	w := f.do(http.MethodGet, "/products?availability=false&page=2&size=5", "", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Equal(t, int64(1), gjson.Get(body, "items.#").Int())
	assert.Equal(t, "Desk lamp", gjson.Get(body, "items.0.name").String())
	assert.Equal(t, int64(6), gjson.Get(body, "total").Int())
	assert.Equal(t, int64(2), gjson.Get(body, "page").Int())
	assert.Equal(t, int64(5), gjson.Get(body, "size").Int())
	assert.Equal(t, int64(2), gjson.Get(body, "pages").Int())
	assert.NoError(t, f.pool.ExpectationsWereMet())
}

func TestRoutes_searchProducts(t *testing.T) {
	f := newRoutesFixture(t)
	f.pool.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE`).
		WithArgs(true, "%lamp%", "%lamp%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	f.pool.ExpectQuery(`SELECT .+ FROM products WHERE .+ LIMIT 10 OFFSET 0`).
		WithArgs(true, "%lamp%", "%lamp%").
		WillReturnRows(pgxmock.NewRows(dbmodels.ProductFields).AddRow(productRow(6, "Desk lamp", 2)...))

	w := f.do(http.MethodGet, "/products/search?q=lamp", "", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Equal(t, "Desk lamp", gjson.Get(body, "products.0.name").String())
	assert.False(t, gjson.Get(body, "items").Exists())
	assert.Equal(t, int64(1), gjson.Get(body, "total").Int())
	assert.Equal(t, int64(1), gjson.Get(body, "page").Int())
	assert.Equal(t, int64(10), gjson.Get(body, "size").Int())
	assert.Equal(t, int64(1), gjson.Get(body, "pages").Int())
	assert.NoError(t, f.pool.ExpectationsWereMet())
}

func TestRoutes_listProductReviews(t *testing.T) {
	f := newRoutesFixture(t)
	f.pool.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
		WithArgs(int64(6)).
		WillReturnRows(pgxmock.NewRows(dbmodels.ProductFields).AddRow(productRow(6, "Desk lamp", 2)...))
	f.pool.ExpectQuery(`SELECT .+ FROM reviews WHERE product_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(6)).
		WillReturnRows(pgxmock.NewRows(dbmodels.ReviewFields).
			AddRow(int64(2), int64(20), int64(6), pure_utils.Ptr(int64(1)), "thanks!", 5, 0, 0, testNow, testNow).
			AddRow(int64(1), int64(3), int64(6), nil, "bright enough", 4, 1, 0, testNow, testNow))

	w := f.do(http.MethodGet, "/reviews/6", "", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Equal(t, int64(1), gjson.Get(body, "review.#").Int())
	assert.Equal(t, "bright enough", gjson.Get(body, "review.0.content").String())
	assert.Equal(t, int64(2), gjson.Get(body, "review.0.follow_up_reviews.0.id").Int())
	assert.NoError(t, f.pool.ExpectationsWereMet())
}

func TestRoutes_deleteCartItem(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.pool.ExpectBegin()
		f.pool.ExpectQuery(`SELECT .+ FROM cart_items WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnRows(pgxmock.NewRows(dbmodels.CartItemFields).
				AddRow(int64(9), int64(3), int64(6), 2, 19.99, testNow, testNow))
		f.pool.ExpectExec(`DELETE FROM cart_items WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		f.pool.ExpectCommit()

		w := f.do(http.MethodDelete, "/cart/9", "customer-token", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Cart item deleted successfully", gjson.Get(w.Body.String(), "message").String())
		assert.NoError(t, f.pool.ExpectationsWereMet())
	})

	t.Run("someone else's item", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.pool.ExpectBegin()
		f.pool.ExpectQuery(`SELECT .+ FROM cart_items WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnRows(pgxmock.NewRows(dbmodels.CartItemFields).
				AddRow(int64(9), int64(4), int64(6), 2, 19.99, testNow, testNow))
		f.pool.ExpectRollback()

		w := f.do(http.MethodDelete, "/cart/9", "customer-token", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NoError(t, f.pool.ExpectationsWereMet())
	})
}

func paymentRow(status models.PaymentStatus) []any {
	return []any{int64(7), int64(50), int64(3), 497.0, "usd", string(status), "cs_test_1", testNow, testNow}
}

func TestRoutes_mockPaymentSuccess(t *testing.T) {
	f := newRoutesFixture(t)
	f.pool.ExpectBegin()
	f.pool.ExpectQuery(`SELECT .+ FROM payments WHERE stripe_session_id = \$1 FOR UPDATE`).
		WithArgs("cs_test_1").
		WillReturnRows(pgxmock.NewRows(dbmodels.PaymentFields).AddRow(paymentRow(models.PaymentPending)...))
	f.pool.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(50)).
		WillReturnRows(pgxmock.NewRows(dbmodels.OrderFields).
			AddRow(int64(50), int64(3), 497.0, "pending", nil, testNow, testNow))
	f.pool.ExpectQuery(`SELECT .+ FROM order_items WHERE order_id IN \(\$1\)`).
		WithArgs(int64(50)).
		WillReturnRows(pgxmock.NewRows(dbmodels.OrderItemFields))
	f.pool.ExpectExec(`UPDATE payments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("completed", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.pool.ExpectExec(`UPDATE orders SET order_status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("paid", int64(50)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.pool.ExpectCommit()

	w := f.do(http.MethodGet, "/payments/mock-success?session_id=cs_test_1", "", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t,
		`{"message": "Payment successful (Mock)", "order_id": 50, "amount": 497, "status": "completed"}`,
		w.Body.String())
	assert.NoError(t, f.pool.ExpectationsWereMet())
}

func TestRoutes_mockPaymentCancel(t *testing.T) {
	f := newRoutesFixture(t)
	f.pool.ExpectBegin()
	f.pool.ExpectQuery(`SELECT .+ FROM payments WHERE stripe_session_id = \$1 FOR UPDATE`).
		WithArgs("cs_test_1").
		WillReturnRows(pgxmock.NewRows(dbmodels.PaymentFields).AddRow(paymentRow(models.PaymentPending)...))
	f.pool.ExpectExec(`UPDATE payments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("failed", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.pool.ExpectCommit()

	w := f.do(http.MethodGet, "/payments/mock-cancel?session_id=cs_test_1", "", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message": "Payment canceled (Mock)", "order_id": 50}`, w.Body.String())
	assert.NoError(t, f.pool.ExpectationsWereMet())
}

func TestRoutes_mockPaymentRequiresSession(t *testing.T) {
	f := newRoutesFixture(t)

	w := f.do(http.MethodGet, "/payments/mock-success", "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, f.pool.ExpectationsWereMet())
}
