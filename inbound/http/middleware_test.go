package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type MiddlewareTestSuite struct {
	suite.Suite
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func (s *MiddlewareTestSuite) TestCorsMiddleware() {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
		handlerCalled  bool
	}{
		{
			name:           "OPTIONS request is answered directly",
			method:         http.MethodOptions,
			expectedStatus: http.StatusOK,
			handlerCalled:  false,
		},
		{
			name:           "GET request passes through",
			method:         http.MethodGet,
			expectedStatus: http.StatusNoContent,
			handlerCalled:  true,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(tc.method, "/api/rate-cards", nil)
			w := httptest.NewRecorder()

			CorsMiddleware(next).ServeHTTP(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			s.Equal(tc.handlerCalled, called)
			s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func (s *MiddlewareTestSuite) TestAdminAuthMiddleware() {
	secret := []byte("test-secret")

	signToken := func(secret []byte, exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "admin@example.com",
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString(secret)
		s.Require().NoError(err)
		return signed
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		handlerCalled  bool
	}{
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			handlerCalled:  false,
		},
		{
			name:           "malformed header",
			authHeader:     "Token abc",
			expectedStatus: http.StatusUnauthorized,
			handlerCalled:  false,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
			handlerCalled:  false,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + signToken(secret, time.Now().Add(-time.Hour)),
			expectedStatus: http.StatusUnauthorized,
			handlerCalled:  false,
		},
		{
			name:           "token signed with wrong secret",
			authHeader:     "Bearer " + signToken([]byte("other"), time.Now().Add(time.Hour)),
			expectedStatus: http.StatusUnauthorized,
			handlerCalled:  false,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer " + signToken(secret, time.Now().Add(time.Hour)),
			expectedStatus: http.StatusNoContent,
			handlerCalled:  true,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/admin/rate-cards", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()

			AdminAuthMiddleware(secret)(next).ServeHTTP(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			s.Equal(tc.handlerCalled, called)
		})
	}
}
