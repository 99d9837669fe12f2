package dto

import (
	"time"

	"github.com/ryoptimus/DevStorm-backend/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                uint64            `json:"id"`
	Email             string            `json:"email"`
	Username          string            `json:"username"`
	Membership        models.Membership `json:"membership"`
	Confirmed         bool              `json:"confirmed"`
	ConfirmedOn       *time.Time        `json:"confirmed_on"`
	Projects          int               `json:"projects"`
	ProjectsCompleted int               `json:"projects_completed"`
	DateJoined        time.Time         `json:"date_joined"`
	Bio               *string           `json:"bio"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                user.ID,
		Email:             user.Email,
		Username:          user.Username,
		Membership:        user.Membership,
		Confirmed:         user.Confirmed,
		ConfirmedOn:       user.ConfirmedOn,
		Projects:          user.Projects,
		ProjectsCompleted: user.ProjectsCompleted,
		DateJoined:        user.DateJoined,
		Bio:               user.Bio,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
