// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/blogs/internal/comment/domain"
)

// CommentResponse is the wire representation of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blog_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapCommentToResponse converts a domain comment to its wire representation.
func MapCommentToResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		BlogID:    comment.BlogID.String(),
		AuthorID:  comment.AuthorID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// MapCommentsToResponse converts a list of domain comments.
func MapCommentsToResponse(comments []*domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, MapCommentToResponse(comment))
	}
	return responses
}
