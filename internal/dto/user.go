package dto

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// CreateViewerRequest lets an editor add a read-only login bound to its data.
type CreateViewerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"max=120"`
}

type UserResponse struct {
	UserID   string          `json:"userID"`
	Email    string          `json:"email"`
	FullName string          `json:"fullName"`
	Role     domain.UserRole `json:"role"`
	OwnerID  string          `json:"ownerID"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		OwnerID:  user.OwnerID(),
	}
}

// ListUsersResponse wraps a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
