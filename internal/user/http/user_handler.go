// Package http provides HTTP handlers for user management operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/httputil"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	identityHTTP "github.com/allisson/blogs/internal/identity/http"
	"github.com/allisson/blogs/internal/user/http/dto"
	userUseCase "github.com/allisson/blogs/internal/user/usecase"
)

// defaultListLimit is the page size for user listings when the client does
// not ask for one.
const defaultListLimit = 5

// assignPermissionRequest carries the capability name to grant.
type assignPermissionRequest struct {
	Capability string `json:"capability"`
}

// UserHandler handles HTTP requests for user management operations.
type UserHandler struct {
	userUseCase userUseCase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler registers a new user account.
// POST /v1/users - Public.
// Returns 201 Created with the user data.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var input userUseCase.RegisterUserInput

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Call use case
	user, err := h.userUseCase.RegisterUser(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// ListHandler lists users, newest first.
// GET /v1/users - Requires the ADMIN role, defaults to the 5 most recent.
// Returns 200 OK with the user list.
func (h *UserHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c, defaultListLimit)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	users, err := h.userUseCase.ListUsers(c.Request.Context(), identity, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MakeListResponse(dto.MapUsersToResponse(users), offset, limit))
}

// AssignPermissionHandler grants a capability to a user.
// POST /v1/users/:id/permissions - Requires the ADMIN role. Idempotent.
// Returns 200 OK with the user's updated authorization profile.
func (h *UserHandler) AssignPermissionHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req assignPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	user, err := h.userUseCase.AssignPermission(
		c.Request.Context(),
		identity,
		userID,
		identityDomain.Capability(req.Capability),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
