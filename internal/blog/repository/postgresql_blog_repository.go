// Package repository provides data persistence implementations for blog entities.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/blog/domain"
	"github.com/allisson/blogs/internal/database"
	apperrors "github.com/allisson/blogs/internal/errors"
)

// PostgreSQLBlogRepository handles blog persistence for PostgreSQL
type PostgreSQLBlogRepository struct {
	db *sql.DB
}

// NewPostgreSQLBlogRepository creates a new PostgreSQLBlogRepository
func NewPostgreSQLBlogRepository(db *sql.DB) *PostgreSQLBlogRepository {
	return &PostgreSQLBlogRepository{
		db: db,
	}
}

const postgresBlogColumns = `id, title, description, category, tags, author_id, image_url,
	published, views, likes, created_at, updated_at`

// Create inserts a new blog
func (r *PostgreSQLBlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	querier := database.GetTx(ctx, r.db)

	tags, err := marshalTags(blog.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO blogs (id, title, description, category, tags, author_id, image_url,
			  published, views, likes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		blog.ID, blog.Title, blog.Description, blog.Category, tags, blog.AuthorID,
		blog.ImageURL, blog.Published, blog.Views, blog.Likes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create blog")
	}
	return nil
}

// GetByID retrieves a blog by ID
func (r *PostgreSQLBlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresBlogColumns + ` FROM blogs WHERE id = $1`

	blog, err := scanBlog(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get blog by id")
	}

	return blog, nil
}

// Update rewrites the blog's mutable fields
func (r *PostgreSQLBlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	querier := database.GetTx(ctx, r.db)

	tags, err := marshalTags(blog.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE blogs SET title = $1, description = $2, category = $3, tags = $4,
			  image_url = $5, published = $6, updated_at = NOW() WHERE id = $7`

	result, err := querier.ExecContext(ctx, query,
		blog.Title, blog.Description, blog.Category, tags, blog.ImageURL, blog.Published, blog.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update blog")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrBlogNotFound
	}

	return nil
}

// Delete removes a blog
func (r *PostgreSQLBlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM blogs WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete blog")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrBlogNotFound
	}

	return nil
}

// List retrieves blogs newest first, optionally narrowed by a search query
// matched case-insensitively against title or category.
func (r *PostgreSQLBlogRepository) List(ctx context.Context, filter domain.SearchFilter) ([]*domain.Blog, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresBlogColumns + ` FROM blogs`
	var args []any

	if filter.Query != "" {
		query += ` WHERE LOWER(title) LIKE LOWER($1) OR LOWER(category) LIKE LOWER($1)
			ORDER BY created_at DESC OFFSET $2 LIMIT $3`
		args = []any{"%" + filter.Query + "%", filter.Offset, filter.Limit}
	} else {
		query += ` ORDER BY created_at DESC OFFSET $1 LIMIT $2`
		args = []any{filter.Offset, filter.Limit}
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list blogs")
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan blog")
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate blogs")
	}

	return blogs, nil
}

// IncrementViews bumps the view counter without rewriting the row
func (r *PostgreSQLBlogRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE blogs SET views = views + 1 WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to increment blog views")
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBlog scans a blog row, decoding the JSON tags column.
func scanBlog(row rowScanner) (*domain.Blog, error) {
	var blog domain.Blog
	var tags []byte

	err := row.Scan(
		&blog.ID, &blog.Title, &blog.Description, &blog.Category, &tags, &blog.AuthorID,
		&blog.ImageURL, &blog.Published, &blog.Views, &blog.Likes,
		&blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	blog.Tags, err = unmarshalTags(tags)
	if err != nil {
		return nil, err
	}

	return &blog, nil
}

// marshalTags encodes tags as a JSON array for storage.
func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal tags")
	}
	return encoded, nil
}

// unmarshalTags decodes the JSON tags column.
func unmarshalTags(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal tags")
	}
	return tags, nil
}
