package response

import (
	"resto-client/internal/data/entity"
)

type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *entity.User `json:"user,omitempty"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *entity.User `json:"user,omitempty"`
}
