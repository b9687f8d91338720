package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/blog/domain"
	"github.com/allisson/blogs/internal/database"
	apperrors "github.com/allisson/blogs/internal/errors"
)

// MySQLBlogRepository handles blog persistence for MySQL
type MySQLBlogRepository struct {
	db *sql.DB
}

// NewMySQLBlogRepository creates a new MySQLBlogRepository
func NewMySQLBlogRepository(db *sql.DB) *MySQLBlogRepository {
	return &MySQLBlogRepository{
		db: db,
	}
}

const mysqlBlogColumns = `id, title, description, category, tags, author_id, image_url,
	published, views, likes, created_at, updated_at`

// Create inserts a new blog
func (r *MySQLBlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	querier := database.GetTx(ctx, r.db)

	tags, err := marshalTags(blog.Tags)
	if err != nil {
		return err
	}

	idBytes, err := blog.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	authorBytes, err := blog.AuthorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal author UUID")
	}

	query := `INSERT INTO blogs (id, title, description, category, tags, author_id, image_url,
			  published, views, likes, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		idBytes, blog.Title, blog.Description, blog.Category, tags, authorBytes,
		blog.ImageURL, blog.Published, blog.Views, blog.Likes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create blog")
	}
	return nil
}

// GetByID retrieves a blog by ID
func (r *MySQLBlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT ` + mysqlBlogColumns + ` FROM blogs WHERE id = ?`

	blog, err := scanMySQLBlog(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get blog by id")
	}

	return blog, nil
}

// Update rewrites the blog's mutable fields
func (r *MySQLBlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	querier := database.GetTx(ctx, r.db)

	tags, err := marshalTags(blog.Tags)
	if err != nil {
		return err
	}

	idBytes, err := blog.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE blogs SET title = ?, description = ?, category = ?, tags = ?,
			  image_url = ?, published = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query,
		blog.Title, blog.Description, blog.Category, tags, blog.ImageURL, blog.Published, idBytes,
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
func (r *MySQLBlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `DELETE FROM blogs WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, idBytes)
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
func (r *MySQLBlogRepository) List(ctx context.Context, filter domain.SearchFilter) ([]*domain.Blog, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlBlogColumns + ` FROM blogs`
	var args []any

	if filter.Query != "" {
		query += ` WHERE LOWER(title) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)
			ORDER BY created_at DESC LIMIT ? OFFSET ?`
		pattern := "%" + filter.Query + "%"
		args = []any{pattern, pattern, filter.Limit, filter.Offset}
	} else {
		query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
		args = []any{filter.Limit, filter.Offset}
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list blogs")
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		blog, err := scanMySQLBlog(rows)
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
func (r *MySQLBlogRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE blogs SET views = views + 1 WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to increment blog views")
	}
	return nil
}

// scanMySQLBlog scans a blog row, decoding BINARY(16) ids and the JSON tags column.
func scanMySQLBlog(row rowScanner) (*domain.Blog, error) {
	var blog domain.Blog
	var idBytes, authorBytes []byte
	var tags []byte

	err := row.Scan(
		&idBytes, &blog.Title, &blog.Description, &blog.Category, &tags, &authorBytes,
		&blog.ImageURL, &blog.Published, &blog.Views, &blog.Likes,
		&blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	blog.ID, err = uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse UUID")
	}
	blog.AuthorID, err = uuid.FromBytes(authorBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse author UUID")
	}

	blog.Tags, err = unmarshalTags(tags)
	if err != nil {
		return nil, err
	}

	return &blog, nil
}
