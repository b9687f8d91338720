package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/database"
	apperrors "github.com/allisson/blogs/internal/errors"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	"github.com/allisson/blogs/internal/user/domain"
)

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	permissions, err := marshalPermissions(user.Permissions)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, email, password, role, permissions, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		uuidBytes, user.Name, user.Email, user.Password, string(user.Role), permissions,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, role, permissions, created_at, updated_at
			  FROM users WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, uuidBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, role, permissions, created_at, updated_at
			  FROM users WHERE email = ?`

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return user, nil
}

// List retrieves users ordered by creation time, newest first
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, role, permissions, created_at, updated_at
			  FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanMySQLUser(rows)
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
func (r *MySQLUserRepository) UpdatePermissions(
	ctx context.Context,
	id uuid.UUID,
	permissions []identityDomain.Capability,
) error {
	querier := database.GetTx(ctx, r.db)

	encoded, err := marshalPermissions(permissions)
	if err != nil {
		return err
	}

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE users SET permissions = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, encoded, uuidBytes)
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
func (r *MySQLUserRepository) UpdateRole(
	ctx context.Context,
	id uuid.UUID,
	role identityDomain.Role,
) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE users SET role = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, string(role), uuidBytes)
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

// scanMySQLUser scans a user row, decoding the BINARY(16) id, role and JSON
// permissions column.
func scanMySQLUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	var role string
	var permissions []byte

	err := row.Scan(
		&idBytes, &user.Name, &user.Email, &user.Password, &role, &permissions,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse UUID")
	}

	user.Role, _ = identityDomain.ParseRole(role)
	user.Permissions, err = unmarshalPermissions(permissions)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
