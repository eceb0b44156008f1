package http

import (
	"time"

	"github.com/workleaf/resource-booking-backend/internal/pkg/request"
	"github.com/workleaf/resource-booking-backend/internal/user"
)

type ListUsersRequest struct {
	request.ListParams
}

// CreateUserRequest is the payload for provisioning an account.
type CreateUserRequest struct {
	Username             string   `json:"username" binding:"required,min=3,max=64"`
	Email                string   `json:"email" binding:"required,email"`
	FullName             string   `json:"full_name" binding:"required,min=1,max=200"`
	Role                 string   `json:"role" binding:"required,oneof=employee manager admin"`
	Department           string   `json:"department" binding:"omitempty,max=120"`
	MainSite             string   `json:"main_site" binding:"omitempty,max=120"`
	AllowedResourceTypes []string `json:"allowed_resource_types"`
	Priority             string   `json:"priority" binding:"omitempty,oneof=standard priority"`
	IsActive             *bool    `json:"is_active"`
}

// UpdateProfileRequest patches self-service profile fields.
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Department *string `json:"department" binding:"omitempty,max=120"`
	MainSite   *string `json:"main_site" binding:"omitempty,max=120"`
}

// UpdatePermissionsRequest patches authorization-relevant fields.
type UpdatePermissionsRequest struct {
	Role                 *string   `json:"role" binding:"omitempty,oneof=employee manager admin"`
	AllowedResourceTypes *[]string `json:"allowed_resource_types"`
	Priority             *string   `json:"priority" binding:"omitempty,oneof=standard priority"`
	IsActive             *bool     `json:"is_active"`
}

// PermissionsResponse is the authorization-relevant view of an account.
type PermissionsResponse struct {
	ID                   string   `json:"id"`
	Role                 string   `json:"role"`
	AllowedResourceTypes []string `json:"allowed_resource_types"`
	Priority             string   `json:"priority"`
	IsActive             bool     `json:"is_active"`
}

func NewPermissionsResponse(u *user.User) PermissionsResponse {
	types := u.AllowedResourceTypes
	if types == nil {
		types = make([]string, 0)
	}
	return PermissionsResponse{
		ID:                   u.ID,
		Role:                 string(u.Role),
		AllowedResourceTypes: types,
		Priority:             string(u.Priority),
		IsActive:             u.IsActive,
	}
}

type UserResponse struct {
	ID                   string    `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	FullName             string    `json:"full_name"`
	Role                 string    `json:"role"`
	Department           string    `json:"department"`
	MainSite             string    `json:"main_site"`
	AllowedResourceTypes []string  `json:"allowed_resource_types"`
	Priority             string    `json:"priority"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	types := u.AllowedResourceTypes
	if types == nil {
		types = make([]string, 0)
	}
	return UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		FullName:             u.FullName,
		Role:                 string(u.Role),
		Department:           u.Department,
		MainSite:             u.MainSite,
		AllowedResourceTypes: types,
		Priority:             string(u.Priority),
		IsActive:             u.IsActive,
		CreatedAt:            u.CreatedAt,
	}
}
