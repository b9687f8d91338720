// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/blogs/internal/user/domain"
)

// UserResponse is the wire representation of a user. The password hash never
// leaves the server.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapUserToResponse converts a domain user to its wire representation.
func MapUserToResponse(user *domain.User) UserResponse {
	permissions := make([]string, 0, len(user.Permissions))
	for _, capability := range user.Permissions {
		permissions = append(permissions, string(capability))
	}
	return UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Role:        string(user.Role),
		Permissions: permissions,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// MapUsersToResponse converts a list of domain users.
func MapUsersToResponse(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, MapUserToResponse(user))
	}
	return responses
}
