// Package domain defines the core comment domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/errors"
)

// Comment represents a reader's comment on a blog. AuthorID records who wrote
// it; only that identity may delete it, the ADMIN role included has no bypass
// here.
type Comment struct {
	ID        uuid.UUID
	BlogID    uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for comment operations.
var (
	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.Wrap(errors.ErrNotFound, "comment not found")
)
