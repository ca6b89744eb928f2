package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Name     string `json:"name" validate:"required" example:"Alice"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
	Role     string `json:"role" validate:"required,oneof=USER ADMIN" example:"USER"`
}
