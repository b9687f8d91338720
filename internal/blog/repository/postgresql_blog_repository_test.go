package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/blogs/internal/blog/domain"
	apperrors "github.com/allisson/blogs/internal/errors"
	"github.com/allisson/blogs/internal/testutil"
)

func newTestBlog(authorID uuid.UUID, title, category string) *domain.Blog {
	return &domain.Blog{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       title,
		Description: "A long enough description",
		Category:    category,
		Tags:        []string{"go", "testing"},
		AuthorID:    authorID,
		Published:   true,
	}
}

func TestPostgreSQLBlogRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBlogRepository(db)
	ctx := context.Background()

	authorID := testutil.CreateTestUser(t, db, "postgres", "author@example.com")
	blog := newTestBlog(authorID, "Intro to Go", "tech")

	err := repo.Create(ctx, blog)
	assert.NoError(t, err)

	created, err := repo.GetByID(ctx, blog.ID)
	assert.NoError(t, err)
	assert.Equal(t, blog.ID, created.ID)
	assert.Equal(t, blog.Title, created.Title)
	assert.Equal(t, blog.Category, created.Category)
	assert.Equal(t, blog.Tags, created.Tags)
	assert.Equal(t, authorID, created.AuthorID)
	assert.True(t, created.Published)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestPostgreSQLBlogRepository_GetByID_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBlogRepository(db)
	ctx := context.Background()

	blog, err := repo.GetByID(ctx, uuid.Must(uuid.NewV7()))
	assert.Error(t, err)
	assert.Nil(t, blog)
	assert.True(t, apperrors.Is(err, domain.ErrBlogNotFound))
}

func TestPostgreSQLBlogRepository_Update(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBlogRepository(db)
	ctx := context.Background()

	authorID := testutil.CreateTestUser(t, db, "postgres", "author@example.com")
	blog := newTestBlog(authorID, "Intro to Go", "tech")

	err := repo.Create(ctx, blog)
	require.NoError(t, err)

	blog.Title = "Advanced Go"
	blog.Tags = []string{"go"}

	err = repo.Update(ctx, blog)
	assert.NoError(t, err)

	updated, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Go", updated.Title)
	assert.Equal(t, []string{"go"}, updated.Tags)
}

func TestPostgreSQLBlogRepository_Delete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBlogRepository(db)
	ctx := context.Background()

	authorID := testutil.CreateTestUser(t, db, "postgres", "author@example.com")
	blog := newTestBlog(authorID, "Intro to Go", "tech")

	err := repo.Create(ctx, blog)
	require.NoError(t, err)

	err = repo.Delete(ctx, blog.ID)
	assert.NoError(t, err)

	_, err = repo.GetByID(ctx, blog.ID)
	assert.True(t, apperrors.Is(err, domain.ErrBlogNotFound))
}

func TestPostgreSQLBlogRepository_Delete_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBlogRepository(db)
	ctx := context.Background()

	err := repo.Delete(ctx, uuid.Must(uuid.NewV7()))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, domain.ErrBlogNotFound))
}

func TestPostgreSQLBlogRepository_List_SearchMatchesTitleAndCategory(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBlogRepository(db)
	ctx := context.Background()

	authorID := testutil.CreateTestUser(t, db, "postgres", "author@example.com")

	require.NoError(t, repo.Create(ctx, newTestBlog(authorID, "Cooking pasta", "food")))
	require.NoError(t, repo.Create(ctx, newTestBlog(authorID, "Intro to Go", "tech")))
	require.NoError(t, repo.Create(ctx, newTestBlog(authorID, "Gardening", "TECH hobby")))

	// Case-insensitive match against title or category
	blogs, err := repo.List(ctx, domain.SearchFilter{Query: "tech", Offset: 0, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, blogs, 2)

	// No query returns everything
	blogs, err = repo.List(ctx, domain.SearchFilter{Offset: 0, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, blogs, 3)

	// Pagination applies
	blogs, err = repo.List(ctx, domain.SearchFilter{Offset: 2, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, blogs, 1)
}

func TestPostgreSQLBlogRepository_IncrementViews(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLBlogRepository(db)
	ctx := context.Background()

	authorID := testutil.CreateTestUser(t, db, "postgres", "author@example.com")
	blog := newTestBlog(authorID, "Intro to Go", "tech")

	err := repo.Create(ctx, blog)
	require.NoError(t, err)

	err = repo.IncrementViews(ctx, blog.ID)
	assert.NoError(t, err)

	updated, err := repo.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Views)
}
