package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
	"github.com/storefront/storefront-backend/repositories/dbmodels"
)

func productRow(id int64, name string, stock int) []any {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return []any{id, name, "a description", 19.99, nil, stock, stock > 0,
		nil, int64(3), 0, 0.0, 0, now, now}
}

func TestStoreDbRepository_ListProducts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	filters := models.ProductFilters{
		Pagination:   models.Pagination{Page: 2, Size: 5},
		CategoryId:   pure_utils.Ptr(int64(4)),
		MinPrice:     pure_utils.Ptr(10.0),
		Availability: pure_utils.Ptr(true),
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE category_id = \$1 AND price >= \$2 AND stock > \$3`).
		WithArgs(int64(4), 10.0, 0).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`SELECT .+ FROM products WHERE category_id = \$1 AND price >= \$2 AND stock > \$3 ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 5`).
		WithArgs(int64(4), 10.0, 0).
		WillReturnRows(pgxmock.NewRows(dbmodels.ProductFields).AddRow(productRow(6, "lamp", 2)...))

	repo := StoreDbRepository{}
	page, err := repo.ListProducts(context.Background(), mock, filters)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 2, page.Pages())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "lamp", page.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDbRepository_SearchProducts_EscapesWildcards(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	search := models.ProductSearch{Pagination: models.Pagination{Page: 1, Size: 10}, Query: "50%_off"}
	pattern := `%50\%\_off%`

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE \(is_active = \$1 AND \(name ILIKE \$2 OR description ILIKE \$3\)\)`).
		WithArgs(true, pattern, pattern).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM products WHERE`).
		WithArgs(true, pattern, pattern).
		WillReturnRows(pgxmock.NewRows(dbmodels.ProductFields))

	repo := StoreDbRepository{}
	page, err := repo.SearchProducts(context.Background(), mock, search)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDbRepository_AdjustStock(t *testing.T) {
	t.Run("nominal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE products SET stock = stock \+ \$1, is_active = stock \+ \$2 > 0, updated_at = NOW\(\) WHERE id = \$3`).
			WithArgs(-2, -2, int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := StoreDbRepository{}
		assert.NoError(t, repo.AdjustStock(context.Background(), mock, 5, -2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative stock", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE products`).
			WithArgs(-20, -20, int64(5)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation})

		repo := StoreDbRepository{}
		err = repo.AdjustStock(context.Background(), mock, 5, -20)
		assert.ErrorIs(t, err, models.BadParameterError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE products`).
			WithArgs(1, 1, int64(9)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := StoreDbRepository{}
		err = repo.AdjustStock(context.Background(), mock, 9, 1)
		assert.ErrorIs(t, err, models.ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `plain`, escapeLike("plain"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
