package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/mobileauthsvc/domain"
	"github.com/you/mobileauthsvc/internal/mocks"
)

func setupMiddlewareTest(tokenSvc domain.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		email, _ := c.Get("user_email")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "user_email": email})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(svc *mocks.MockTokenService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer good-token",
			setupMock: func(svc *mocks.MockTokenService) {
				svc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
					if token != "good-token" {
						t.Errorf("expected good-token, got %s", token)
					}
					return &domain.TokenClaims{UserID: "u-1", Email: "dana@example.com"}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_id":"u-1"`,
		},
		{
			name:           "missing authorization header",
			authHeader:     "",
			setupMock:      func(svc *mocks.MockTokenService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Authorization header required",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMock:      func(svc *mocks.MockTokenService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid authorization header format",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			setupMock: func(svc *mocks.MockTokenService) {
				svc.ValidateAccessTokenFunc = func(string) (*domain.TokenClaims, error) {
					return nil, domain.ErrTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Token expired",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMock: func(svc *mocks.MockTokenService) {
				svc.ValidateAccessTokenFunc = func(string) (*domain.TokenClaims, error) {
					return nil, domain.ErrTokenInvalid
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			tt.setupMock(tokenSvc)
			r := setupMiddlewareTest(tokenSvc)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %s", tt.expectedBody, w.Body.String())
			}
		})
	}
}
