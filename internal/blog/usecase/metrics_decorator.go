package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/blog/domain"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	"github.com/allisson/blogs/internal/metrics"
)

// blogUseCaseWithMetrics decorates UseCase with metrics instrumentation.
// Authorization denials are recorded with their own status label so guard
// decisions are visible in dashboards.
type blogUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewBlogUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewBlogUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &blogUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (b *blogUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFromError(err)
	b.metrics.RecordOperation(ctx, "blog", operation, status)
	b.metrics.RecordDuration(ctx, "blog", operation, time.Since(start), status)
}

// CreateBlog records metrics for blog creation operations.
func (b *blogUseCaseWithMetrics) CreateBlog(
	ctx context.Context,
	identity *identityDomain.Identity,
	input CreateBlogInput,
) (*domain.Blog, error) {
	start := time.Now()
	blog, err := b.next.CreateBlog(ctx, identity, input)
	b.record(ctx, "blog_create", start, err)
	return blog, err
}

// UpdateBlog records metrics for blog update operations.
func (b *blogUseCaseWithMetrics) UpdateBlog(
	ctx context.Context,
	identity *identityDomain.Identity,
	id uuid.UUID,
	input UpdateBlogInput,
) (*domain.Blog, error) {
	start := time.Now()
	blog, err := b.next.UpdateBlog(ctx, identity, id, input)
	b.record(ctx, "blog_update", start, err)
	return blog, err
}

// DeleteBlog records metrics for blog deletion operations.
func (b *blogUseCaseWithMetrics) DeleteBlog(
	ctx context.Context,
	identity *identityDomain.Identity,
	id uuid.UUID,
) error {
	start := time.Now()
	err := b.next.DeleteBlog(ctx, identity, id)
	b.record(ctx, "blog_delete", start, err)
	return err
}

// GetBlog records metrics for single blog fetches.
func (b *blogUseCaseWithMetrics) GetBlog(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	start := time.Now()
	blog, err := b.next.GetBlog(ctx, id)
	b.record(ctx, "blog_get", start, err)
	return blog, err
}

// ListBlogs records metrics for blog listing operations.
func (b *blogUseCaseWithMetrics) ListBlogs(
	ctx context.Context,
	filter domain.SearchFilter,
) ([]*domain.Blog, error) {
	start := time.Now()
	blogs, err := b.next.ListBlogs(ctx, filter)
	b.record(ctx, "blog_list", start, err)
	return blogs, err
}

// UploadImage records metrics for cover image uploads.
func (b *blogUseCaseWithMetrics) UploadImage(
	ctx context.Context,
	identity *identityDomain.Identity,
	id uuid.UUID,
	filename string,
	contentType string,
	content io.Reader,
) (*domain.Blog, error) {
	start := time.Now()
	blog, err := b.next.UploadImage(ctx, identity, id, filename, contentType, content)
	b.record(ctx, "blog_image_upload", start, err)
	return blog, err
}
