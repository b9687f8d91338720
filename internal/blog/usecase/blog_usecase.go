// Package usecase implements the blog business logic and orchestrates blog domain operations.
package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/authz"
	"github.com/allisson/blogs/internal/blog/domain"
	"github.com/allisson/blogs/internal/blog/storage"
	"github.com/allisson/blogs/internal/database"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	appValidation "github.com/allisson/blogs/internal/validation"
)

// CreateBlogInput contains the input data for blog creation. The author is
// always taken from the authenticated identity, never from the input.
type CreateBlogInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
}

// UpdateBlogInput contains the input data for blog updates.
type UpdateBlogInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
}

// Config carries the tunable content constraints.
type Config struct {
	TitleMinLength       int
	DescriptionMinLength int
}

// UseCase defines the interface for blog business logic operations
type UseCase interface {
	// CreateBlog creates a blog for the identity. Requires the CREATE_BLOG
	// capability (the ADMIN role passes every capability check).
	CreateBlog(ctx context.Context, identity *identityDomain.Identity, input CreateBlogInput) (*domain.Blog, error)

	// UpdateBlog rewrites a blog's content. Requires EDIT_BLOG or
	// UPDATE_BLOG; both capability names are honored.
	UpdateBlog(
		ctx context.Context,
		identity *identityDomain.Identity,
		id uuid.UUID,
		input UpdateBlogInput,
	) (*domain.Blog, error)

	// DeleteBlog removes a blog and its comments in one transaction.
	// Requires DELETE_BLOG.
	DeleteBlog(ctx context.Context, identity *identityDomain.Identity, id uuid.UUID) error

	// GetBlog fetches a single blog and bumps its view counter. Public.
	GetBlog(ctx context.Context, id uuid.UUID) (*domain.Blog, error)

	// ListBlogs lists blogs newest first, optionally narrowed by a
	// case-insensitive search over title and category. Public.
	ListBlogs(ctx context.Context, filter domain.SearchFilter) ([]*domain.Blog, error)

	// UploadImage stores a cover image for the blog and records its URL.
	// Requires the same capabilities as UpdateBlog.
	UploadImage(
		ctx context.Context,
		identity *identityDomain.Identity,
		id uuid.UUID,
		filename string,
		contentType string,
		content io.Reader,
	) (*domain.Blog, error)
}

// BlogRepository interface defines blog repository operations
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.SearchFilter) ([]*domain.Blog, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

// CommentRemover removes a blog's comments during cascade deletion.
type CommentRemover interface {
	DeleteByBlogID(ctx context.Context, blogID uuid.UUID) error
}

// updateCapabilities lists the capability names honored for blog updates.
// Existing deployments granted UPDATE_BLOG before the rename to EDIT_BLOG,
// so both stay valid.
var updateCapabilities = []identityDomain.Capability{
	identityDomain.EditBlogCapability,
	identityDomain.UpdateBlogCapability,
}

// BlogUseCase handles blog-related business logic
type BlogUseCase struct {
	txManager      database.TxManager
	blogRepo       BlogRepository
	commentRemover CommentRemover
	imageStore     storage.ImageStore
	config         Config
}

// NewBlogUseCase creates a new BlogUseCase
func NewBlogUseCase(
	txManager database.TxManager,
	blogRepo BlogRepository,
	commentRemover CommentRemover,
	imageStore storage.ImageStore,
	config Config,
) UseCase {
	return &BlogUseCase{
		txManager:      txManager,
		blogRepo:       blogRepo,
		commentRemover: commentRemover,
		imageStore:     imageStore,
		config:         config,
	}
}

// validateContent validates the blog content fields shared by create and update.
func (uc *BlogUseCase) validateContent(title, description, category string) error {
	err := validation.Errors{
		"title": validation.Validate(title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(uc.config.TitleMinLength, 255).
				Error(fmt.Sprintf("title must be between %d and 255 characters", uc.config.TitleMinLength)),
		),
		"description": validation.Validate(description,
			validation.Required.Error("description is required"),
			appValidation.NotBlank,
			validation.Length(uc.config.DescriptionMinLength, 10000).
				Error(fmt.Sprintf("description must be at least %d characters", uc.config.DescriptionMinLength)),
		),
		"category": validation.Validate(category,
			validation.Required.Error("category is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("category must be between 1 and 100 characters"),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

// CreateBlog creates a blog authored by the identity
func (uc *BlogUseCase) CreateBlog(
	ctx context.Context,
	identity *identityDomain.Identity,
	input CreateBlogInput,
) (*domain.Blog, error) {
	return authz.Guard(ctx, identity, identityDomain.CreateBlogCapability,
		func(ctx context.Context) (*domain.Blog, error) {
			if err := uc.validateContent(input.Title, input.Description, input.Category); err != nil {
				return nil, err
			}

			blog := &domain.Blog{
				ID:          uuid.Must(uuid.NewV7()),
				Title:       strings.TrimSpace(input.Title),
				Description: input.Description,
				Category:    strings.TrimSpace(input.Category),
				Tags:        input.Tags,
				AuthorID:    identity.ID,
				Published:   input.Published,
			}

			if err := uc.blogRepo.Create(ctx, blog); err != nil {
				return nil, err
			}

			return blog, nil
		})
}

// UpdateBlog rewrites a blog's content
func (uc *BlogUseCase) UpdateBlog(
	ctx context.Context,
	identity *identityDomain.Identity,
	id uuid.UUID,
	input UpdateBlogInput,
) (*domain.Blog, error) {
	return authz.GuardAny(ctx, identity, updateCapabilities,
		func(ctx context.Context) (*domain.Blog, error) {
			if err := uc.validateContent(input.Title, input.Description, input.Category); err != nil {
				return nil, err
			}

			blog, err := uc.blogRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}

			blog.Title = strings.TrimSpace(input.Title)
			blog.Description = input.Description
			blog.Category = strings.TrimSpace(input.Category)
			blog.Tags = input.Tags
			blog.Published = input.Published

			if err := uc.blogRepo.Update(ctx, blog); err != nil {
				return nil, err
			}

			return blog, nil
		})
}

// DeleteBlog removes a blog and its comments in one transaction
func (uc *BlogUseCase) DeleteBlog(
	ctx context.Context,
	identity *identityDomain.Identity,
	id uuid.UUID,
) error {
	if err := authz.Require(identity, identityDomain.DeleteBlogCapability); err != nil {
		return err
	}

	// Comments go first so a failure leaves the blog and its comment thread
	// intact rather than orphaning comments.
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.blogRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := uc.commentRemover.DeleteByBlogID(ctx, id); err != nil {
			return err
		}
		return uc.blogRepo.Delete(ctx, id)
	})
}

// GetBlog fetches a single blog and bumps its view counter
func (uc *BlogUseCase) GetBlog(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	blog, err := uc.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// View counting is best effort
	if err := uc.blogRepo.IncrementViews(ctx, id); err == nil {
		blog.Views++
	}

	return blog, nil
}

// ListBlogs lists blogs newest first, optionally narrowed by a search query
func (uc *BlogUseCase) ListBlogs(ctx context.Context, filter domain.SearchFilter) ([]*domain.Blog, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return uc.blogRepo.List(ctx, filter)
}

// UploadImage stores a cover image for the blog and records its URL
func (uc *BlogUseCase) UploadImage(
	ctx context.Context,
	identity *identityDomain.Identity,
	id uuid.UUID,
	filename string,
	contentType string,
	content io.Reader,
) (*domain.Blog, error) {
	return authz.GuardAny(ctx, identity, updateCapabilities,
		func(ctx context.Context) (*domain.Blog, error) {
			blog, err := uc.blogRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}

			// Key by blog ID so re-uploads replace the previous image
			key := fmt.Sprintf("blogs/%s/cover%s", blog.ID, path.Ext(filename))
			url, err := uc.imageStore.Save(ctx, key, contentType, content)
			if err != nil {
				return nil, err
			}

			blog.ImageURL = url
			if err := uc.blogRepo.Update(ctx, blog); err != nil {
				return nil, err
			}

			return blog, nil
		})
}
