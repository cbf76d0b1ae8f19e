package dto

import "workhub/internal/api/models"

// UserResponse is the public shape of a user record.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
	Role     string `json:"role"`
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Role:     user.Role,
	}
}

// UpdateProfileRequest: PATCH /users/me payload. Role is absent on
// purpose: the profile endpoint never changes roles.
type UpdateProfileRequest struct {
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Bio   *string `json:"bio,omitempty"`
}

// AdminCreateUserRequest: admin-provisioned account. No confirmation code
// is involved; the user still goes through the signup flow to obtain one.
type AdminCreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Bio      *string `json:"bio,omitempty"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
}

// AdminUpdateUserRequest: admin-only user mutation, including the role.
type AdminUpdateUserRequest struct {
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Bio   *string `json:"bio,omitempty"`
	Role  *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
}

// PaginatedUserResponse for the admin listing
type PaginatedUserResponse struct {
	Data       []UserResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func NewPaginatedUserResponse(data []UserResponse, total, page, pageSize int) *PaginatedUserResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedUserResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
