// Package usecase implements the comment business logic and orchestrates comment domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/authz"
	blogDomain "github.com/allisson/blogs/internal/blog/domain"
	"github.com/allisson/blogs/internal/comment/domain"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	appValidation "github.com/allisson/blogs/internal/validation"
)

// AddCommentInput contains the input data for adding a comment.
type AddCommentInput struct {
	Content string `json:"content"`
}

// UseCase defines the interface for comment business logic operations
type UseCase interface {
	// AddComment attaches a comment to a blog. Any authenticated identity may
	// comment; no capability grant is needed.
	AddComment(
		ctx context.Context,
		identity *identityDomain.Identity,
		blogID uuid.UUID,
		input AddCommentInput,
	) (*domain.Comment, error)

	// DeleteComment removes a comment. Only the comment's author may delete
	// it; the ADMIN role gets no bypass here.
	DeleteComment(ctx context.Context, identity *identityDomain.Identity, id uuid.UUID) error

	// ListComments returns a blog's comments, newest first. Public.
	ListComments(ctx context.Context, blogID uuid.UUID, offset, limit int) ([]*domain.Comment, error)
}

// CommentRepository interface defines comment repository operations
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByBlogID(ctx context.Context, blogID uuid.UUID, offset, limit int) ([]*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBlogID(ctx context.Context, blogID uuid.UUID) error
}

// BlogFinder is the slice of the blog repository needed to verify that the
// target blog exists before attaching a comment.
type BlogFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*blogDomain.Blog, error)
}

// CommentUseCase handles comment-related business logic
type CommentUseCase struct {
	commentRepo CommentRepository
	blogFinder  BlogFinder
}

// NewCommentUseCase creates a new CommentUseCase
func NewCommentUseCase(commentRepo CommentRepository, blogFinder BlogFinder) UseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		blogFinder:  blogFinder,
	}
}

// AddComment attaches a comment to a blog
func (uc *CommentUseCase) AddComment(
	ctx context.Context,
	identity *identityDomain.Identity,
	blogID uuid.UUID,
	input AddCommentInput,
) (*domain.Comment, error) {
	if err := authz.RequireAuthenticated(identity); err != nil {
		return nil, err
	}

	err := validation.Validate(input.Content,
		validation.Required.Error("content is required"),
		appValidation.NotBlank,
		validation.Length(1, 2000).Error("content must be between 1 and 2000 characters"),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	// The blog must exist before a comment can point at it
	if _, err := uc.blogFinder.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:       uuid.Must(uuid.NewV7()),
		BlogID:   blogID,
		AuthorID: identity.ID,
		Content:  strings.TrimSpace(input.Content),
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment, owner only
func (uc *CommentUseCase) DeleteComment(
	ctx context.Context,
	identity *identityDomain.Identity,
	id uuid.UUID,
) error {
	if err := authz.RequireAuthenticated(identity); err != nil {
		return err
	}

	comment, err := uc.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Ownership only. Capability grants and the ADMIN role do not extend to
	// deleting other people's comments.
	if err := authz.RequireOwner(identity, comment.AuthorID); err != nil {
		return err
	}

	return uc.commentRepo.Delete(ctx, id)
}

// ListComments returns a blog's comments, newest first
func (uc *CommentUseCase) ListComments(
	ctx context.Context,
	blogID uuid.UUID,
	offset, limit int,
) ([]*domain.Comment, error) {
	return uc.commentRepo.ListByBlogID(ctx, blogID, offset, limit)
}
