package dto

import "github.com/fbangoura/bakery_ledger_app/internal/core/domain"

// CreateUserRequest registers a back-office operator.
type CreateUserRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Role         string  `json:"role" binding:"required"`
	RestaurantID *string `json:"restaurantID"`
}

// LoginRequest authenticates an operator.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID       string  `json:"userID"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	RestaurantID *string `json:"restaurantID,omitempty"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		RestaurantID: u.RestaurantID,
	}
}
