package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/blogs/internal/httputil"
	identityUseCase "github.com/allisson/blogs/internal/identity/usecase"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authUseCase identityUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(authUseCase identityUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler verifies credentials and issues a session token.
// POST /v1/auth/login - Public, rate limited.
// Returns 200 OK with the signed token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input identityUseCase.LoginInput

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Call use case
	output, err := h.authUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, output)
}
