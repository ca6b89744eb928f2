package api

import "time"

// UserProfile is the public view of a user record.
// swagger:model api.UserProfile
type UserProfile struct {
	ID    int    `json:"id" example:"1"`
	Email string `json:"email" example:"alice@example.com"`
	Role  string `json:"role" example:"USER"`
	Name  string `json:"name" example:"Alice"`
}

// swagger:model api.MeResponse
type MeResponse struct {
	Success bool        `json:"success" example:"true"`
	User    UserProfile `json:"user"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      string    `json:"name" example:"Alice"`
	Role      string    `json:"role" example:"USER"`
	CreatedAt time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
}
