// Package domain defines the core blog domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/errors"
)

// Blog represents a published or draft post. AuthorID always records the
// identity that created the post, never a value supplied by the client.
type Blog struct {
	ID          uuid.UUID
	Title       string
	Description string
	Category    string
	Tags        []string
	AuthorID    uuid.UUID
	ImageURL    string
	Published   bool
	Views       int64
	Likes       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchFilter narrows a blog listing. Query matches case-insensitively
// against the title or the category; an empty Query lists everything.
type SearchFilter struct {
	Query  string
	Offset int
	Limit  int
}

// Domain-specific errors for blog operations.
var (
	// ErrBlogNotFound indicates the requested blog does not exist.
	ErrBlogNotFound = errors.Wrap(errors.ErrNotFound, "blog not found")
)
