package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/storefront/storefront-backend/models"
)

func TestPresentError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad parameter", models.ErrEmptySearchQuery, http.StatusBadRequest, "Search query cannot be empty: bad parameter"},
		{"unauthorized", models.ErrRevokedToken, http.StatusUnauthorized, "token has been revoked: unauthorized"},
		{"forbidden", errors.Wrap(models.ForbiddenError, "not your cart"), http.StatusForbidden, "not your cart: forbidden"},
		{"not found", models.ErrProductNotFound, http.StatusNotFound, "Product not found: not found"},
		{"conflict", models.ErrOrderAlreadyPaid, http.StatusConflict, "order already has a completed payment: duplicate value"},
		{"unavailable", models.ErrKnowledgeBaseOff, http.StatusServiceUnavailable, "semantic search is not enabled: service unavailable"},
		{"timeout", context.DeadlineExceeded, http.StatusRequestTimeout, "context deadline exceeded"},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			assert.True(t, presentError(c.Request.Context(), c, tt.err))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, gjson.Get(w.Body.String(), "message").String())
		})
	}
}

func TestPresentError_nil(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.False(t, presentError(c.Request.Context(), c, nil))
	assert.Equal(t, 0, w.Body.Len())
}

func TestPresentError_unauthorizedSetsChallenge(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	presentError(c.Request.Context(), c, models.ErrInvalidCredentials)

	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}
