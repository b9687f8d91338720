// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/database"
	apperrors "github.com/allisson/blogs/internal/errors"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	"github.com/allisson/blogs/internal/user/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	permissions, err := marshalPermissions(user.Permissions)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, email, password, role, permissions, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Password, string(user.Role), permissions,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, role, permissions, created_at, updated_at
			  FROM users WHERE id = $1`

	user, err := scanUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, role, permissions, created_at, updated_at
			  FROM users WHERE email = $1`

	user, err := scanUser(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return user, nil
}

// List retrieves users ordered by creation time, newest first
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, role, permissions, created_at, updated_at
			  FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// UpdatePermissions replaces the user's capability grants
func (r *PostgreSQLUserRepository) UpdatePermissions(
	ctx context.Context,
	id uuid.UUID,
	permissions []identityDomain.Capability,
) error {
	querier := database.GetTx(ctx, r.db)

	encoded, err := marshalPermissions(permissions)
	if err != nil {
		return err
	}

	query := `UPDATE users SET permissions = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, encoded, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user permissions")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// UpdateRole changes the user's role
func (r *PostgreSQLUserRepository) UpdateRole(
	ctx context.Context,
	id uuid.UUID,
	role identityDomain.Role,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, string(role), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user role")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans a user row, decoding the role and the JSON permissions column.
func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	var permissions []byte

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &role, &permissions,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role, _ = identityDomain.ParseRole(role)
	user.Permissions, err = unmarshalPermissions(permissions)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// marshalPermissions encodes capability grants as a JSON array for storage.
func marshalPermissions(permissions []identityDomain.Capability) ([]byte, error) {
	if permissions == nil {
		permissions = []identityDomain.Capability{}
	}
	encoded, err := json.Marshal(permissions)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal permissions")
	}
	return encoded, nil
}

// unmarshalPermissions decodes the JSON permissions column.
func unmarshalPermissions(data []byte) ([]identityDomain.Capability, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var permissions []identityDomain.Capability
	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal permissions")
	}
	return permissions, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
