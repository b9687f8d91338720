// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/blogs/internal/blog/domain"
)

// BlogResponse is the wire representation of a blog.
type BlogResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	AuthorID    string    `json:"author_id"`
	ImageURL    string    `json:"image_url,omitempty"`
	Published   bool      `json:"published"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapBlogToResponse converts a domain blog to its wire representation.
func MapBlogToResponse(blog *domain.Blog) BlogResponse {
	tags := blog.Tags
	if tags == nil {
		tags = []string{}
	}
	return BlogResponse{
		ID:          blog.ID.String(),
		Title:       blog.Title,
		Description: blog.Description,
		Category:    blog.Category,
		Tags:        tags,
		AuthorID:    blog.AuthorID.String(),
		ImageURL:    blog.ImageURL,
		Published:   blog.Published,
		Views:       blog.Views,
		Likes:       blog.Likes,
		CreatedAt:   blog.CreatedAt,
		UpdatedAt:   blog.UpdatedAt,
	}
}

// MapBlogsToResponse converts a list of domain blogs.
func MapBlogsToResponse(blogs []*domain.Blog) []BlogResponse {
	responses := make([]BlogResponse, 0, len(blogs))
	for _, blog := range blogs {
		responses = append(responses, MapBlogToResponse(blog))
	}
	return responses
}
