package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/comment/domain"
	"github.com/allisson/blogs/internal/database"
	apperrors "github.com/allisson/blogs/internal/errors"
)

// MySQLCommentRepository handles comment persistence for MySQL
type MySQLCommentRepository struct {
	db *sql.DB
}

// NewMySQLCommentRepository creates a new MySQLCommentRepository
func NewMySQLCommentRepository(db *sql.DB) *MySQLCommentRepository {
	return &MySQLCommentRepository{
		db: db,
	}
}

// Create inserts a new comment
func (r *MySQLCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := comment.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	blogBytes, err := comment.BlogID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal blog UUID")
	}
	authorBytes, err := comment.AuthorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal author UUID")
	}

	query := `INSERT INTO comments (id, blog_id, author_id, content, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query, idBytes, blogBytes, authorBytes, comment.Content)
	if err != nil {
		return apperrors.Wrap(err, "failed to create comment")
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *MySQLCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, blog_id, author_id, content, created_at, updated_at
			  FROM comments WHERE id = ?`

	comment, err := scanMySQLComment(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get comment by id")
	}

	return comment, nil
}

// ListByBlogID retrieves a blog's comments, newest first
func (r *MySQLCommentRepository) ListByBlogID(
	ctx context.Context,
	blogID uuid.UUID,
	offset, limit int,
) ([]*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	blogBytes, err := blogID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal blog UUID")
	}

	query := `SELECT id, blog_id, author_id, content, created_at, updated_at
			  FROM comments WHERE blog_id = ?
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, blogBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list comments")
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanMySQLComment(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan comment")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate comments")
	}

	return comments, nil
}

// Delete removes a comment
func (r *MySQLCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `DELETE FROM comments WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete comment")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrCommentNotFound
	}

	return nil
}

// DeleteByBlogID removes all of a blog's comments. Used by the blog cascade
// delete; removing zero comments is not an error.
func (r *MySQLCommentRepository) DeleteByBlogID(ctx context.Context, blogID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	blogBytes, err := blogID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal blog UUID")
	}

	query := `DELETE FROM comments WHERE blog_id = ?`

	if _, err := querier.ExecContext(ctx, query, blogBytes); err != nil {
		return apperrors.Wrap(err, "failed to delete comments by blog id")
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLComment scans a comment row, decoding the BINARY(16) ids.
func scanMySQLComment(row rowScanner) (*domain.Comment, error) {
	var comment domain.Comment
	var idBytes, blogBytes, authorBytes []byte

	err := row.Scan(
		&idBytes, &blogBytes, &authorBytes, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	comment.ID, err = uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse UUID")
	}
	comment.BlogID, err = uuid.FromBytes(blogBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse blog UUID")
	}
	comment.AuthorID, err = uuid.FromBytes(authorBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse author UUID")
	}

	return &comment, nil
}
