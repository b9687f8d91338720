// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/allisson/blogs/internal/identity/domain"
)

// mockTokenService is a mock implementation of TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueToken(identity *identityDomain.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) VerifyToken(token string) (*identityDomain.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Identity), args.Error(1)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestLogger creates a test logger that discards output.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticationMiddleware_Success(t *testing.T) {
	// Setup mocks
	mockTokenSvc := &mockTokenService{}
	logger := createTestLogger()

	identityID := uuid.Must(uuid.NewV7())
	identity := &identityDomain.Identity{
		ID:          identityID,
		Role:        identityDomain.RoleEditor,
		Permissions: []identityDomain.Capability{identityDomain.CreateBlogCapability},
	}

	mockTokenSvc.On("VerifyToken", "token-xyz789").Return(identity, nil).Once()

	// Create test router with middleware
	router := gin.New()
	router.Use(AuthenticationMiddleware(mockTokenSvc, logger))
	router.GET("/test", func(c *gin.Context) {
		// Verify identity is in context
		retrieved, ok := GetIdentity(c.Request.Context())
		require.True(t, ok, "identity should be in context")
		require.NotNil(t, retrieved, "identity should not be nil")
		assert.Equal(t, identityID, retrieved.ID)
		assert.Equal(t, identityDomain.RoleEditor, retrieved.Role)

		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	// Make request
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer token-xyz789")
	router.ServeHTTP(w, req)

	// Assertions
	assert.Equal(t, http.StatusOK, w.Code)
	mockTokenSvc.AssertExpectations(t)
}

func TestAuthenticationMiddleware_Success_CaseInsensitiveBearer(t *testing.T) {
	testCases := []struct {
		name   string
		prefix string
	}{
		{"lowercase_bearer", "bearer "},
		{"uppercase_BEARER", "BEARER "},
		{"mixedcase_BeArEr", "BeArEr "},
		{"standard_Bearer", "Bearer "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup mocks
			mockTokenSvc := &mockTokenService{}
			logger := createTestLogger()

			identity := &identityDomain.Identity{
				ID:   uuid.Must(uuid.NewV7()),
				Role: identityDomain.RoleUser,
			}
			mockTokenSvc.On("VerifyToken", "token-xyz789").Return(identity, nil).Once()

			// Create test router
			router := gin.New()
			router.Use(AuthenticationMiddleware(mockTokenSvc, logger))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			// Make request with different case
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", tc.prefix+"token-xyz789")
			router.ServeHTTP(w, req)

			// Should succeed regardless of case
			assert.Equal(t, http.StatusOK, w.Code)
			mockTokenSvc.AssertExpectations(t)
		})
	}
}

func TestAuthenticationMiddleware_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		authHeader string
	}{
		{"missing_authorization_header", ""},
		{"malformed_header", "Token abc"},
		{"empty_bearer_token", "Bearer "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockTokenSvc := &mockTokenService{}
			logger := createTestLogger()

			router := gin.New()
			router.Use(AuthenticationMiddleware(mockTokenSvc, logger))
			router.GET("/test", func(c *gin.Context) {
				t.Fatal("handler must not run for unauthenticated requests")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			// Token service is never consulted for malformed headers
			mockTokenSvc.AssertNotCalled(t, "VerifyToken", mock.Anything)
		})
	}
}

func TestAuthenticationMiddleware_Error_InvalidToken(t *testing.T) {
	mockTokenSvc := &mockTokenService{}
	logger := createTestLogger()

	mockTokenSvc.On("VerifyToken", "bad-token").Return(nil, identityDomain.ErrInvalidToken).Once()

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockTokenSvc, logger))
	router.GET("/test", func(c *gin.Context) {
		t.Fatal("handler must not run for invalid tokens")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockTokenSvc.AssertExpectations(t)
}

func TestOptionalAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_AnonymousRequestPassesThrough", func(t *testing.T) {
		mockTokenSvc := &mockTokenService{}
		logger := createTestLogger()

		router := gin.New()
		router.Use(OptionalAuthenticationMiddleware(mockTokenSvc, logger))
		router.GET("/test", func(c *gin.Context) {
			_, ok := GetIdentity(c.Request.Context())
			assert.False(t, ok, "anonymous request should carry no identity")
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockTokenSvc.AssertNotCalled(t, "VerifyToken", mock.Anything)
	})

	t.Run("Success_ValidTokenAttachesIdentity", func(t *testing.T) {
		mockTokenSvc := &mockTokenService{}
		logger := createTestLogger()

		identity := &identityDomain.Identity{
			ID:   uuid.Must(uuid.NewV7()),
			Role: identityDomain.RoleUser,
		}
		mockTokenSvc.On("VerifyToken", "token-xyz789").Return(identity, nil).Once()

		router := gin.New()
		router.Use(OptionalAuthenticationMiddleware(mockTokenSvc, logger))
		router.GET("/test", func(c *gin.Context) {
			retrieved, ok := GetIdentity(c.Request.Context())
			require.True(t, ok)
			assert.Equal(t, identity.ID, retrieved.ID)
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer token-xyz789")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockTokenSvc.AssertExpectations(t)
	})

	t.Run("Error_InvalidTokenStillRejected", func(t *testing.T) {
		mockTokenSvc := &mockTokenService{}
		logger := createTestLogger()

		mockTokenSvc.On("VerifyToken", "bad-token").Return(nil, identityDomain.ErrInvalidToken).Once()

		router := gin.New()
		router.Use(OptionalAuthenticationMiddleware(mockTokenSvc, logger))
		router.GET("/test", func(c *gin.Context) {
			t.Fatal("handler must not run for invalid tokens")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockTokenSvc.AssertExpectations(t)
	})
}
