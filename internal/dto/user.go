package dto

import (
	"time"

	"github.com/rentspot/rentspot-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Role         models.UserRole `json:"role"`
	AvatarURL    string          `json:"avatarUrl,omitempty"`
	DateOfBirth  *time.Time      `json:"dateOfBirth,omitempty"`
	RegisteredAt time.Time       `json:"registeredAt"`
}

// OwnerDTO is the landlord contact block attached to property and booking
// responses.
type OwnerDTO struct {
	Name   string `json:"owner_name"`
	Email  string `json:"owner_email"`
	Phone  string `json:"owner_phone"`
	Avatar string `json:"owner_avatar,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
		AvatarURL:    user.AvatarURL,
		DateOfBirth:  user.DateOfBirth,
		RegisteredAt: user.RegisteredAt,
	}
}
