// Package http provides HTTP handlers for comment operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/comment/http/dto"
	commentUseCase "github.com/allisson/blogs/internal/comment/usecase"
	"github.com/allisson/blogs/internal/httputil"
	identityHTTP "github.com/allisson/blogs/internal/identity/http"
)

// defaultListLimit is the page size for comment listings when the client does
// not ask for one. Readers see the handful of most recent comments by default.
const defaultListLimit = 5

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	commentUseCase commentUseCase.UseCase
	logger         *slog.Logger
}

// NewCommentHandler creates a new comment handler with required dependencies.
func NewCommentHandler(commentUseCase commentUseCase.UseCase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

// CreateHandler attaches a comment to a blog.
// POST /v1/blogs/:id/comments - Requires authentication.
// Returns 201 Created with the comment data.
func (h *CommentHandler) CreateHandler(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid blog ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var input commentUseCase.AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	comment, err := h.commentUseCase.AddComment(c.Request.Context(), identity, blogID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCommentToResponse(comment))
}

// DeleteHandler removes a comment, owner only.
// DELETE /v1/comments/:id
// Returns 204 No Content.
func (h *CommentHandler) DeleteHandler(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid comment ID format: must be a valid UUID"),
			h.logger)
		return
	}

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	if err := h.commentUseCase.DeleteComment(c.Request.Context(), identity, commentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListHandler lists a blog's comments, newest first.
// GET /v1/blogs/:id/comments - Public, defaults to the 5 most recent.
// Returns 200 OK with the comment list.
func (h *CommentHandler) ListHandler(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid blog ID format: must be a valid UUID"),
			h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c, defaultListLimit)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	comments, err := h.commentUseCase.ListComments(c.Request.Context(), blogID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MakeListResponse(dto.MapCommentsToResponse(comments), offset, limit))
}
