package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/storefront/storefront-backend/models"
)

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidateAccessToken(ctx context.Context, accessToken string) (models.Credentials, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(models.Credentials), args.Error(1)
}

func TestAuthenticationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		optional       bool
		authorization  string
		setupValidator func(*MockValidator)
		expectedStatus int
		expectCreds    bool
	}{
		{
			name:          "valid token",
			authorization: "Bearer good-token",
			setupValidator: func(v *MockValidator) {
				v.On("ValidateAccessToken", mock.Anything, "good-token").
					Return(models.Credentials{UserId: 7, Role: models.CUSTOMER}, nil)
			},
			expectedStatus: http.StatusOK,
			expectCreds:    true,
		},
		{
			name:           "missing header on protected route",
			setupValidator: func(v *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing header on optional route",
			optional:       true,
			setupValidator: func(v *MockValidator) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed header",
			authorization:  "Token abc",
			setupValidator: func(v *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "revoked token",
			authorization: "Bearer revoked",
			setupValidator: func(v *MockValidator) {
				v.On("ValidateAccessToken", mock.Anything, "revoked").
					Return(models.Credentials{}, errors.Wrap(models.ErrRevokedToken, "jti"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "expired token on optional route",
			optional:      true,
			authorization: "Bearer expired-access",
			setupValidator: func(v *MockValidator) {
				v.On("ValidateAccessToken", mock.Anything, "expired-access").
					Return(models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "token is expired"))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed header on optional route",
			optional:       true,
			authorization:  "Token abc",
			setupValidator: func(v *MockValidator) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "validator failure on optional route",
			optional:      true,
			authorization: "Bearer boom",
			setupValidator: func(v *MockValidator) {
				v.On("ValidateAccessToken", mock.Anything, "boom").
					Return(models.Credentials{}, errors.New("database down"))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "validator failure",
			authorization: "Bearer boom",
			setupValidator: func(v *MockValidator) {
				v.On("ValidateAccessToken", mock.Anything, "boom").
					Return(models.Credentials{}, errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockValidator)
			tt.setupValidator(validator)
			auth := NewAuthentication(validator)

			var gotCreds bool
			router := gin.New()
			handler := auth.Middleware
			if tt.optional {
				handler = auth.OptionalMiddleware
			}
			router.GET("/", handler, func(c *gin.Context) {
				_, gotCreds = CredentialsFromCtx(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectCreds, gotCreds)
			validator.AssertExpectations(t)
		})
	}
}

func TestParseAuthorizationBearerHeader(t *testing.T) {
	header := http.Header{}
	header.Add("Authorization", "Bearer TOKEN")
	token, err := ParseAuthorizationBearerHeader(header)
	assert.NoError(t, err)
	assert.Equal(t, "TOKEN", token)

	token, err = ParseAuthorizationBearerHeader(http.Header{})
	assert.NoError(t, err)
	assert.Empty(t, token)

	header = http.Header{}
	header.Add("Authorization", "MalformedBearer")
	_, err = ParseAuthorizationBearerHeader(header)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}
