package dto

import "github.com/google/uuid"

type UserDTO struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

type MeResponse struct {
	User    UserDTO `json:"user"`
	IsAdmin bool    `json:"is_admin"`
}
