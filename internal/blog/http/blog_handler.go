// Package http provides HTTP handlers for blog operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/blog/domain"
	"github.com/allisson/blogs/internal/blog/http/dto"
	blogUseCase "github.com/allisson/blogs/internal/blog/usecase"
	"github.com/allisson/blogs/internal/httputil"
	identityHTTP "github.com/allisson/blogs/internal/identity/http"
)

// maxImageSize caps uploaded cover images at 5 MiB.
const maxImageSize = 5 << 20

// defaultListLimit is the page size for blog listings when the client does
// not ask for one.
const defaultListLimit = 50

// BlogHandler handles HTTP requests for blog operations.
type BlogHandler struct {
	blogUseCase blogUseCase.UseCase
	logger      *slog.Logger
}

// NewBlogHandler creates a new blog handler with required dependencies.
func NewBlogHandler(blogUseCase blogUseCase.UseCase, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		blogUseCase: blogUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a new blog.
// POST /v1/blogs - Requires the CREATE_BLOG capability.
// Returns 201 Created with the blog data.
func (h *BlogHandler) CreateHandler(c *gin.Context) {
	var input blogUseCase.CreateBlogInput

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	// Call use case
	blog, err := h.blogUseCase.CreateBlog(c.Request.Context(), identity, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapBlogToResponse(blog))
}

// UpdateHandler rewrites a blog's content.
// PUT /v1/blogs/:id - Requires the EDIT_BLOG or UPDATE_BLOG capability.
// Returns 200 OK with the updated blog data.
func (h *BlogHandler) UpdateHandler(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid blog ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var input blogUseCase.UpdateBlogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	blog, err := h.blogUseCase.UpdateBlog(c.Request.Context(), identity, blogID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBlogToResponse(blog))
}

// DeleteHandler removes a blog and its comments.
// DELETE /v1/blogs/:id - Requires the DELETE_BLOG capability.
// Returns 204 No Content.
func (h *BlogHandler) DeleteHandler(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid blog ID format: must be a valid UUID"),
			h.logger)
		return
	}

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	if err := h.blogUseCase.DeleteBlog(c.Request.Context(), identity, blogID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetHandler fetches a single blog.
// GET /v1/blogs/:id - Public.
// Returns 200 OK with the blog data.
func (h *BlogHandler) GetHandler(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid blog ID format: must be a valid UUID"),
			h.logger)
		return
	}

	blog, err := h.blogUseCase.GetBlog(c.Request.Context(), blogID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBlogToResponse(blog))
}

// ListHandler lists blogs, optionally narrowed by ?search=.
// GET /v1/blogs - Public.
// Returns 200 OK with the blog list.
func (h *BlogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c, defaultListLimit)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	blogs, err := h.blogUseCase.ListBlogs(c.Request.Context(), domain.SearchFilter{
		Query:  c.Query("search"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MakeListResponse(dto.MapBlogsToResponse(blogs), offset, limit))
}

// UploadImageHandler stores a cover image for the blog.
// POST /v1/blogs/:id/image - Requires the EDIT_BLOG or UPDATE_BLOG capability.
// Accepts multipart form data with an "image" file field.
// Returns 200 OK with the updated blog data.
func (h *BlogHandler) UploadImageHandler(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid blog ID format: must be a valid UUID"),
			h.logger)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("image file is required"), h.logger)
		return
	}
	if fileHeader.Size > maxImageSize {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("image exceeds the %d byte limit", maxImageSize),
			h.logger)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer file.Close()

	identity, _ := identityHTTP.GetIdentity(c.Request.Context())

	blog, err := h.blogUseCase.UploadImage(
		c.Request.Context(),
		identity,
		blogID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBlogToResponse(blog))
}
