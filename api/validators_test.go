package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/storefront/storefront-backend/dto"
)

func bindingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	r := gin.New()
	r.POST("/auth/register", func(c *gin.Context) {
		var body dto.RegisterBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	r.POST("/reviews/like-dislike", func(c *gin.Context) {
		var body dto.ReactionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentBindingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"like_dislike": *body.LikeDislike})
	})
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterBodyValidation(t *testing.T) {
	r := bindingRouter(t)

	t.Run("valid", func(t *testing.T) {
		w := post(r, "/auth/register", `{"username": "李_jane42", "email": "jane@example.com",
			"password": "long enough", "name": "Jane", "surname": "O'Neil-Smith"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("invalid fields are reported by json name", func(t *testing.T) {
		w := post(r, "/auth/register", `{"username": "jane doe!", "email": "not-an-email",
			"password": "short", "name": "J4ne", "surname": "Doe"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Equal(t, "must be 1 to 16 letters, digits or underscores", gjson.Get(body, "fields.username").String())
		assert.Equal(t, "must be a valid email address", gjson.Get(body, "fields.email").String())
		assert.Equal(t, "must have at least 8 characters", gjson.Get(body, "fields.password").String())
		assert.True(t, gjson.Get(body, "fields.name").Exists())
		assert.False(t, gjson.Get(body, "fields.surname").Exists())
	})

	t.Run("malformed json", func(t *testing.T) {
		w := post(r, "/auth/register", `{"username": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReactionBodyValidation(t *testing.T) {
	r := bindingRouter(t)

	w := post(r, "/reviews/like-dislike", `{"review_id": 3, "like_dislike": 0}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "like_dislike").Int())

	w = post(r, "/reviews/like-dislike", `{"review_id": 3, "like_dislike": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be one of 0, 1", gjson.Get(w.Body.String(), "fields.like_dislike").String())

	w = post(r, "/reviews/like-dislike", `{"review_id": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", gjson.Get(w.Body.String(), "fields.like_dislike").String())
}

func TestIdParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products/:product_id", func(c *gin.Context) {
		id, err := idParam(c, "product_id")
		if presentError(c.Request.Context(), c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, status := range map[string]int{
		"/products/12":  http.StatusOK,
		"/products/abc": http.StatusBadRequest,
		"/products/0":   http.StatusBadRequest,
		"/products/-4":  http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}
